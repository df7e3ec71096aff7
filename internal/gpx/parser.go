// Package gpx extracts track points from GPX documents downloaded from
// Garmin Connect. Matching is done on local tag names so that varying
// namespace declarations across exporters do not break parsing.
package gpx

import (
	"strconv"
	"time"

	"github.com/beevik/etree"
)

// Point is one sample on a recorded track, in document order.
type Point struct {
	Timestamp time.Time
	Latitude  float64
	Longitude float64
	Elevation *float64 // meters, nil when the point carries no usable ele element
}

// Parse decodes a GPX document into an ordered sequence of points.
//
// Points missing either coordinate attribute are skipped. A point
// without a parseable time element gets the wall clock at parse time;
// this is a known approximation, stored sample timestamps may reflect
// ingestion time rather than recording time. A malformed document
// yields an empty sequence and the decode error, callers are expected
// to log it as a warning and carry on with zero samples.
func Parse(data []byte) ([]Point, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}

	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	var points []Point
	collectTrackpoints(root, &points)
	return points, nil
}

// collectTrackpoints walks the element tree in document order and
// appends every well-formed trkpt element to points.
func collectTrackpoints(el *etree.Element, points *[]Point) {
	// etree keeps the namespace prefix in Space, so Tag is always the
	// local name.
	if el.Tag == "trkpt" {
		if p, ok := pointFromElement(el); ok {
			*points = append(*points, p)
		}
		return
	}
	for _, child := range el.ChildElements() {
		collectTrackpoints(child, points)
	}
}

func pointFromElement(el *etree.Element) (Point, bool) {
	latAttr := el.SelectAttrValue("lat", "")
	lonAttr := el.SelectAttrValue("lon", "")
	if latAttr == "" || lonAttr == "" {
		return Point{}, false
	}

	lat, latErr := strconv.ParseFloat(latAttr, 64)
	lon, lonErr := strconv.ParseFloat(lonAttr, 64)
	if latErr != nil || lonErr != nil {
		return Point{}, false
	}

	p := Point{
		Latitude:  lat,
		Longitude: lon,
		Timestamp: time.Now(),
	}

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "ele":
			if v, err := strconv.ParseFloat(child.Text(), 64); err == nil {
				p.Elevation = &v
			}
		case "time":
			if t, err := time.Parse(time.RFC3339, child.Text()); err == nil {
				p.Timestamp = t
			}
		}
	}

	return p, true
}

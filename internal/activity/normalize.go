// Package activity maps raw Garmin Connect records into the canonical
// Activity entity persisted by the datastore. The summary record wins
// over the detailed record for every field both provide, the detail
// only fills gaps.
package activity

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/mkettu/runsync/internal/datastore"
	"github.com/mkettu/runsync/internal/garmin"
	"github.com/mkettu/runsync/internal/gpx"
)

// ErrMissingActivityID indicates a structurally unusable summary
// record. Callers skip the activity, a batch run must not abort on it.
var ErrMissingActivityID = errors.New("activity: summary record has no activity id")

// startTimeLayout matches Garmin's startTimeLocal strings once a
// trailing UTC marker has been stripped.
const startTimeLayout = "2006-01-02T15:04:05"

// Normalize builds the canonical activity and its track samples from
// the raw summary and detail records plus the parsed track points.
func Normalize(summary *garmin.ActivitySummary, detail *garmin.ActivityDetail, points []gpx.Point) (datastore.Activity, []datastore.GeoSample, error) {
	if summary == nil || summary.ActivityID == nil {
		return datastore.Activity{}, nil, ErrMissingActivityID
	}

	var detailSummary garmin.SummaryDTO
	if detail != nil {
		detailSummary = detail.Summary
	}

	startRaw := summary.StartTimeLocal
	if startRaw == "" {
		startRaw = detailSummary.StartTimeLocal
	}
	startTime := parseStartTime(startRaw)

	duration := 0
	if d := pickFloat(summary.Duration, detailSummary.Duration); d != nil {
		duration = int(*d)
	}

	distance := 0.0
	if d := pickFloat(summary.Distance, detailSummary.Distance); d != nil {
		distance = *d
	}

	var endTime *time.Time
	if duration > 0 {
		end := startTime.Add(time.Duration(duration) * time.Second)
		endTime = &end
	}

	act := datastore.Activity{
		ExternalID:          strconv.FormatInt(*summary.ActivityID, 10),
		StartTime:           startTime,
		EndTime:             endTime,
		DistanceMeters:      distance,
		DurationSeconds:     duration,
		AvgPaceSecondsPerKm: Pace(distance, duration),
		Calories:            toInt(pickFloat(summary.Calories, detailSummary.Calories)),
		AvgHeartRate:        toInt(pickFloat(summary.AverageHR, detailSummary.AverageHR)),
		MaxHeartRate:        toInt(pickFloat(summary.MaxHR, detailSummary.MaxHR)),
	}

	samples := make([]datastore.GeoSample, 0, len(points))
	for _, p := range points {
		samples = append(samples, datastore.GeoSample{
			Timestamp:       p.Timestamp,
			Latitude:        p.Latitude,
			Longitude:       p.Longitude,
			ElevationMeters: p.Elevation,
		})
	}

	return act, samples, nil
}

// Pace derives the average pace in seconds per kilometer, rounded to
// two decimals. It is defined only when both distance and duration are
// known and positive, otherwise nil, never zero or infinite.
func Pace(distanceMeters float64, durationSeconds int) *float64 {
	if distanceMeters <= 0 || durationSeconds <= 0 {
		return nil
	}
	pace := float64(durationSeconds) / (distanceMeters / 1000)
	pace = math.Round(pace*100) / 100
	return &pace
}

// parseStartTime wraps ParseLocalTime with the normalizer's fallback:
// missing or unparseable input yields the current time.
func parseStartTime(s string) time.Time {
	t, err := ParseLocalTime(s)
	if err != nil {
		return time.Now()
	}
	return t
}

// ParseLocalTime parses Garmin's local start time string. A trailing
// "Z" is stripped rather than converted, the zone marker is discarded
// as a known approximation.
func ParseLocalTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("activity: empty start time")
	}
	if last := len(s) - 1; s[last] == 'Z' {
		s = s[:last]
	}
	return time.ParseInLocation(startTimeLayout, s, time.Local)
}

func pickFloat(primary, fallback *float64) *float64 {
	if primary != nil {
		return primary
	}
	return fallback
}

func toInt(f *float64) *int {
	if f == nil {
		return nil
	}
	v := int(math.Round(*f))
	return &v
}

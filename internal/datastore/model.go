// model.go this code defines the data model for the application
package datastore

import "time"

// Activity represents one completed running session pulled from the
// source system. ExternalID is the identifier assigned by the source
// and is the deduplication key, re-ingesting the same ExternalID is a
// no-op. Optional metrics are pointers so a value the source omitted
// stays NULL instead of collapsing to zero.
type Activity struct {
	ID                  uint       `gorm:"primaryKey"`
	ExternalID          string     `gorm:"uniqueIndex;not null"`
	StartTime           time.Time  `gorm:"index:idx_activities_start_time"`
	EndTime             *time.Time // nil when the source reported no duration
	DistanceMeters      float64
	DurationSeconds     int
	AvgPaceSecondsPerKm *float64 // derived, nil unless distance and duration are known
	Calories            *int
	AvgHeartRate        *int
	MaxHeartRate        *int
	SyncTimestamp       time.Time   `gorm:"autoCreateTime"`
	Samples             []GeoSample `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE"`
}

// GeoSample is one point on an activity's recorded track. Samples are
// created in a batch alongside their parent activity and have no
// independent lifecycle, deleting the activity cascades to them.
type GeoSample struct {
	ID              uint `gorm:"primaryKey"`
	ActivityID      uint `gorm:"index;not null"`
	Timestamp       time.Time
	Latitude        float64
	Longitude       float64
	ElevationMeters *float64
	SpeedMps        *float64 // not derivable from GPX input, stays nil
}

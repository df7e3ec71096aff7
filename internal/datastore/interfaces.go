// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"errors"
	"fmt"

	"github.com/mkettu/runsync/internal/conf"
	"gorm.io/gorm"
)

// Interface abstracts the underlying database implementation and
// defines the operations the ingestion pipeline needs.
type Interface interface {
	Open() error
	Close() error
	ActivityExists(externalID string) (bool, error)
	GetActivity(externalID string) (Activity, error)
	SaveActivity(activity *Activity, samples []GeoSample) error
	LatestActivities(limit int) ([]Activity, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a store instance based on the provided settings.
func New(settings *conf.Settings) (Interface, error) {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{Settings: settings}, nil
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{Settings: settings}, nil
	default:
		return nil, errors.New("no database backend enabled in settings")
	}
}

// ActivityExists reports whether an activity with the given external
// identifier has already been persisted. This is the dedup gate and is
// always checked before any write for an activity.
func (ds *DataStore) ActivityExists(externalID string) (bool, error) {
	var count int64
	if err := ds.DB.Model(&Activity{}).Where("external_id = ?", externalID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking for existing activity %s: %w", externalID, err)
	}
	return count > 0, nil
}

// GetActivity retrieves a persisted activity by its external identifier.
func (ds *DataStore) GetActivity(externalID string) (Activity, error) {
	var activity Activity
	if err := ds.DB.Where("external_id = ?", externalID).First(&activity).Error; err != nil {
		return Activity{}, fmt.Errorf("getting activity %s: %w", externalID, err)
	}
	return activity, nil
}

// SaveActivity stores an activity and its track samples in a single
// transaction. The unique index on external_id is the backstop for
// concurrent sync runs racing past the dedup check, one insert
// succeeds and the other fails.
func (ds *DataStore) SaveActivity(activity *Activity, samples []GeoSample) error {
	tx := ds.DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("starting transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(activity).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("saving activity %s: %w", activity.ExternalID, err)
	}

	if len(samples) > 0 {
		for i := range samples {
			samples[i].ActivityID = activity.ID
		}
		if err := tx.Create(&samples).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("saving %d samples for activity %s: %w", len(samples), activity.ExternalID, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// LatestActivities returns up to limit persisted activities, most
// recent start time first.
func (ds *DataStore) LatestActivities(limit int) ([]Activity, error) {
	var activities []Activity
	if err := ds.DB.Order("start_time desc").Limit(limit).Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return activities, nil
}

// Close closes the underlying database connection.
func (ds *DataStore) Close() error {
	if ds.DB == nil {
		return nil
	}
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return fmt.Errorf("getting database handle: %w", err)
	}
	return sqlDB.Close()
}

// conf/validate.go

package conf

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials indicates that the Garmin Connect credentials
// were not configured. This is a fatal precondition, checked before
// any network or database work begins.
var ErrMissingCredentials = errors.New("garmin connect credentials not configured")

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateGarminSettings(&settings.Garmin); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateOutputSettings(&settings.Output); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateSyncSettings(&settings.Sync); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateGarminSettings(garmin *GarminSettings) error {
	if garmin.Email == "" || garmin.Password == "" {
		return ErrMissingCredentials
	}
	if garmin.APIHost == "" {
		return errors.New("garmin api host must not be empty")
	}
	return nil
}

func validateOutputSettings(output *OutputSettings) error {
	if !output.SQLite.Enabled && !output.MySQL.Enabled {
		return errors.New("no output store enabled, enable sqlite or mysql")
	}
	if output.SQLite.Enabled && output.MySQL.Enabled {
		return errors.New("only one output store may be enabled at a time")
	}
	if output.SQLite.Enabled && output.SQLite.Path == "" {
		return errors.New("sqlite output requires a database path")
	}
	return nil
}

func validateSyncSettings(sync *SyncSettings) error {
	if sync.ListLimit <= 0 {
		return fmt.Errorf("sync list limit must be positive, got %d", sync.ListLimit)
	}
	if sync.DaysBack <= 0 {
		return fmt.Errorf("sync lookback days must be positive, got %d", sync.DaysBack)
	}
	return nil
}

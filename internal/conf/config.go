// config.go: settings struct and loading for the runsync application.
package conf

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// GarminSettings holds credentials and host for the Garmin Connect API.
type GarminSettings struct {
	Email    string // Garmin Connect account email
	Password string // Garmin Connect account password
	APIHost  string // API base URL, overridable for testing
}

// SQLiteSettings contains settings for the SQLite output store.
type SQLiteSettings struct {
	Enabled bool   // true to enable SQLite output
	Path    string // path to the database file
}

// MySQLSettings contains settings for the MySQL output store.
type MySQLSettings struct {
	Enabled  bool   // true to enable MySQL output
	Username string // MySQL username
	Password string // MySQL password
	Host     string // MySQL host
	Port     string // MySQL port
	Database string // MySQL database name
}

// OutputSettings selects and configures the persistence store.
type OutputSettings struct {
	SQLite SQLiteSettings
	MySQL  MySQLSettings
}

// SyncSettings controls the ingestion window.
type SyncSettings struct {
	ListLimit int // how many recent activities to request per listing
	DaysBack  int // lookback window in days for batch listing
}

// LogSettings controls the persistent log file.
type LogSettings struct {
	Enabled    bool   // true to write a log file in addition to stdout
	Path       string // log file path
	MaxSize    int    // max size in MB before rotation
	MaxAge     int    // max age in days of rotated files
	MaxBackups int    // number of rotated files to keep
}

// Settings is the root configuration for the application.
type Settings struct {
	Debug  bool // true to enable debug logging
	Garmin GarminSettings
	Output OutputSettings
	Sync   SyncSettings
	Log    LogSettings
}

// Load reads the configuration from defaults, an optional config file
// and environment variables, in increasing order of precedence, and
// validates the result.
func Load() (*Settings, error) {
	setDefaultConfig()

	if err := bindEnvVars(); err != nil {
		return nil, fmt.Errorf("binding environment variables: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/runsync")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, everything can come from
		// defaults and the environment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// env.go - environment variable bindings for runsync configuration
package conf

import (
	"fmt"

	"github.com/spf13/viper"
)

// envBinding maps a viper config key to its environment variable.
type envBinding struct {
	ConfigKey string // viper config key
	EnvVar    string // environment variable name
}

// getEnvBindings returns all environment variable bindings. The names
// match what the sync job has historically been configured with.
func getEnvBindings() []envBinding {
	return []envBinding{
		// Garmin Connect credentials
		{"garmin.email", "GARMIN_EMAIL"},
		{"garmin.password", "GARMIN_PASSWORD"},
		{"garmin.apihost", "GARMIN_API_HOST"},

		// Database configuration
		{"output.mysql.host", "DB_HOST"},
		{"output.mysql.port", "DB_PORT"},
		{"output.mysql.database", "DB_NAME"},
		{"output.mysql.username", "DB_USER"},
		{"output.mysql.password", "DB_PASSWORD"},
		{"output.sqlite.path", "DB_SQLITE_PATH"},

		{"debug", "RUNSYNC_DEBUG"},
	}
}

// bindEnvVars sets up environment variable bindings.
func bindEnvVars() error {
	for _, binding := range getEnvBindings() {
		if err := viper.BindEnv(binding.ConfigKey, binding.EnvVar); err != nil {
			return fmt.Errorf("failed to bind %s: %w", binding.EnvVar, err)
		}
	}
	return nil
}

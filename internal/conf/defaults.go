// conf/defaults.go default values for settings
package conf

import "github.com/spf13/viper"

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("garmin.email", "")
	viper.SetDefault("garmin.password", "")
	viper.SetDefault("garmin.apihost", "https://connectapi.garmin.com")

	viper.SetDefault("sync.listlimit", 100)
	viper.SetDefault("sync.daysback", 7)

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "runsync.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "runsync")
	viper.SetDefault("output.mysql.password", "")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")
	viper.SetDefault("output.mysql.database", "runsync")

	viper.SetDefault("log.enabled", true)
	viper.SetDefault("log.path", "runsync.log")
	viper.SetDefault("log.maxsize", 10)
	viper.SetDefault("log.maxage", 30)
	viper.SetDefault("log.maxbackups", 3)
}

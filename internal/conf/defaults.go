// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "challenge500")

	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.port", "8080")
	viper.SetDefault("webserver.debug", false)

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "challenge500.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "challenge500")
	viper.SetDefault("output.mysql.password", "")
	viper.SetDefault("output.mysql.database", "challenge500")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")

	viper.SetDefault("challenge.maxbytes", 1250)
	viper.SetDefault("challenge.minbytes", 1)
	viper.SetDefault("challenge.dailylimit", true)
	viper.SetDefault("challenge.timezone", "Asia/Seoul")
	viper.SetDefault("challenge.candidatecount", 3)

	viper.SetDefault("oracle.enabled", false)
	viper.SetDefault("oracle.apikey", "")
	viper.SetDefault("oracle.baseurl", "https://api.openai.com/v1")
	viper.SetDefault("oracle.model", "gpt-4.1-mini")
	viper.SetDefault("oracle.timeout", 20*time.Second)
	viper.SetDefault("oracle.cachettl", time.Hour)
}

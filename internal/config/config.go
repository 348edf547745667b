package config

import "github.com/spf13/viper"

type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	PostgresConn  string `mapstructure:"POSTGRES_CONN"`
	MigrationURL  string `mapstructure:"MIGRATION_URL"`
	MongoURI      string `mapstructure:"MONGO_URI"`
	MediaDir      string `mapstructure:"MEDIA_DIR"`
}

// LoadConfig reads app.env from path and the process environment.
// The file is optional; environment variables win.
func LoadConfig(path string) (cfg Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("MIGRATION_URL", "file://migrations")
	viper.SetDefault("MEDIA_DIR", "media")

	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&cfg)
	return
}

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the server configuration, read from the environment.
type Config struct {
	Port   string `mapstructure:"port"`
	DBURL  string `mapstructure:"db_url"`
	DBName string `mapstructure:"db_name"`
	Dev    bool   `mapstructure:"dev"`
}

// Load reads the server configuration from the environment. DB_URL is
// required; everything else has a default.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("db_name", "smartcollege")
	v.SetDefault("dev", false)
	v.AutomaticEnv()

	for _, key := range []string{"port", "db_url", "db_name", "dev"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("v.BindEnv error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal error: %w", err)
	}

	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL environment variable is not set")
	}

	if cfg.Dev {
		cfg.DBName = "dev_" + cfg.DBName
	}

	return &cfg, nil
}

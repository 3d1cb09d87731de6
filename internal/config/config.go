package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// League
	LeagueID   int `mapstructure:"LEAGUE_ID"`
	SeasonYear int `mapstructure:"SEASON_YEAR"`

	// ESPN auth cookies (private leagues)
	ESPNs2 string `mapstructure:"ESPN_S2"`
	SWID   string `mapstructure:"SWID"`

	// Data fetching
	FreeAgentPoolSize int    `mapstructure:"FREE_AGENT_POOL_SIZE"`
	CacheTTLSeconds   int    `mapstructure:"CACHE_TTL_SECONDS"`
	FetchTimeout      int    `mapstructure:"FETCH_TIMEOUT_SECONDS"`
	ESPNRateLimit     int    `mapstructure:"ESPN_RATE_LIMIT"`
	RefreshInterval   string `mapstructure:"SNAPSHOT_REFRESH_INTERVAL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("LEAGUE_ID", 682068465)
	viper.SetDefault("SEASON_YEAR", 2026)
	viper.SetDefault("ESPN_S2", "")
	viper.SetDefault("SWID", "")
	viper.SetDefault("FREE_AGENT_POOL_SIZE", 60)
	viper.SetDefault("CACHE_TTL_SECONDS", 900)
	viper.SetDefault("FETCH_TIMEOUT_SECONDS", 30)
	viper.SetDefault("ESPN_RATE_LIMIT", 10)
	viper.SetDefault("SNAPSHOT_REFRESH_INTERVAL", "30m")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

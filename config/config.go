package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAnalyticsDB int    `mapstructure:"REDIS_ANALYTICS_DB"`

	// Discovery feed tuning. The expansion ceiling and sparsity threshold are
	// deployment-tunable, not hard invariants.
	FeedPageSize          int     `mapstructure:"FEED_PAGE_SIZE"`
	ExpansionCeilingMiles float64 `mapstructure:"EXPANSION_CEILING_MILES"`
	ExpansionThreshold    int     `mapstructure:"EXPANSION_THRESHOLD"`
	DefaultRadiusMiles    float64 `mapstructure:"DEFAULT_RADIUS_MILES"`
	SearchDebounceMS      int     `mapstructure:"SEARCH_DEBOUNCE_MS"`
	SearchMinQueryLen     int     `mapstructure:"SEARCH_MIN_QUERY_LEN"`
	SuggestionLimit       int     `mapstructure:"SUGGESTION_LIMIT"`
	SessionTTLMinutes     int     `mapstructure:"SESSION_TTL_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_ANALYTICS_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")

	viper.SetDefault("FEED_PAGE_SIZE", 20)
	viper.SetDefault("EXPANSION_CEILING_MILES", 100.0)
	viper.SetDefault("EXPANSION_THRESHOLD", 30)
	viper.SetDefault("DEFAULT_RADIUS_MILES", 25.0)
	viper.SetDefault("SEARCH_DEBOUNCE_MS", 300)
	viper.SetDefault("SEARCH_MIN_QUERY_LEN", 2)
	viper.SetDefault("SUGGESTION_LIMIT", 8)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

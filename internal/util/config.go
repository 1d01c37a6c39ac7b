package util

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	AllowedOrigins      []string      `mapstructure:"ALLOWED_ORIGINS"`
	HTTPServerAddress   string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	StoreDriver         string        `mapstructure:"STORE_DRIVER"`
	DatabaseURL         string        `mapstructure:"DATABASE_URL"`
	RedisServerAddress  string        `mapstructure:"REDIS_SERVER_ADDRESS"`
	TokenSecretKey      string        `mapstructure:"TOKEN_SECRET_KEY"`
	SweepInterval       time.Duration `mapstructure:"SWEEP_INTERVAL"`
	SubscriberQueueSize int           `mapstructure:"SUBSCRIBER_QUEUE_SIZE"`
	MinBidIncrement     string        `mapstructure:"MIN_BID_INCREMENT"`
	SMTPUsername        string        `mapstructure:"SMTP_USERNAME"`
	SMTPPassword        string        `mapstructure:"SMTP_PASSWORD"`
	DiscordBotToken     string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordChannelID    string        `mapstructure:"DISCORD_CHANNEL_ID"`

	// BidIncrement is MinBidIncrement parsed by LoadConfig.
	BidIncrement decimal.Decimal `mapstructure:"-"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()

	// Set defaults for non-sensitive config
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_SERVER_ADDRESS", "")
	v.SetDefault("SWEEP_INTERVAL", "1s")
	v.SetDefault("SUBSCRIBER_QUEUE_SIZE", 64)
	v.SetDefault("MIN_BID_INCREMENT", "0")
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("DISCORD_BOT_TOKEN", "")
	v.SetDefault("DISCORD_CHANNEL_ID", "")

	// Prefer environment variables over config file
	v.AutomaticEnv()

	// Load config file
	v.SetConfigFile(path)
	if err = v.ReadInConfig(); err != nil {
		return
	}

	// Unmarshal config into struct
	err = v.UnmarshalExact(&config)
	if err != nil {
		return
	}

	// Validate required configuration
	err = validateConfig(&config)
	return
}

func validateConfig(config *Config) error {
	switch config.StoreDriver {
	case StoreDriverPostgres:
		if config.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMemory, config.StoreDriver)
	}
	if config.TokenSecretKey == "" {
		return fmt.Errorf("TOKEN_SECRET_KEY is required")
	}
	if config.RedisServerAddress == "" {
		return fmt.Errorf("REDIS_SERVER_ADDRESS is required")
	}
	if config.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", config.SweepInterval)
	}
	if config.SubscriberQueueSize <= 0 {
		return fmt.Errorf("SUBSCRIBER_QUEUE_SIZE must be positive, got %d", config.SubscriberQueueSize)
	}

	increment, err := decimal.NewFromString(config.MinBidIncrement)
	if err != nil {
		return fmt.Errorf("MIN_BID_INCREMENT is not a valid amount: %w", err)
	}
	if increment.IsNegative() {
		return fmt.Errorf("MIN_BID_INCREMENT must not be negative, got %s", increment)
	}
	config.BidIncrement = increment

	return nil
}

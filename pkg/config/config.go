package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and an optional .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // .env file is optional

	return env.Parse(cfg)
}

// Config holds the configuration for the application.
type Config struct {
	HTTPAddr    string               `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel    string               `env:"LOG_LEVEL" envDefault:"info"`
	KafkaConfig `envPrefix:"KAFKA_"` // Trade feed configuration
}

// KafkaConfig holds the configuration for the trade feed producer.
// Publishing is disabled when no brokers are configured.
type KafkaConfig struct {
	Brokers []string `env:"BROKER"`
	Topic   string   `env:"TOPIC" envDefault:"clob.trades"`
}

// FeedEnabled reports whether a trade feed producer should be wired.
func (c KafkaConfig) FeedEnabled() bool {
	return len(c.Brokers) > 0
}

package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR" env-default:":8080"`
	NATSURL       string        `env:"NATS_URL" env-default:"nats://localhost:4222"`
	RedisAddr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	PostgresDSN   string        `env:"POSTGRES_DSN" env-required:"true"`
	OTLPEndpoint  string        `env:"OTLP_ENDPOINT" env-default:""`
	PresenceTTL   time.Duration `env:"PRESENCE_TTL" env-default:"300s"`
	FilterWorkers int           `env:"FILTER_WORKERS" env-default:"16"`

	Pushd PushdConfig
}

// PushdConfig addresses the push exchange and the routing key per event kind.
type PushdConfig struct {
	Exchange              string `env:"PUSHD_EXCHANGE" env-default:"notifications"`
	MessageRoutingKey     string `env:"PUSHD_MESSAGE_ROUTING_KEY" env-default:"message_sent"`
	MassMentionRoutingKey string `env:"PUSHD_MASS_MENTION_ROUTING_KEY" env-default:"mass_mention"`
	FRAcceptedRoutingKey  string `env:"PUSHD_FR_ACCEPTED_ROUTING_KEY" env-default:"fr_accepted"`
	FRReceivedRoutingKey  string `env:"PUSHD_FR_RECEIVED_ROUTING_KEY" env-default:"fr_received"`
	GenericRoutingKey     string `env:"PUSHD_GENERIC_ROUTING_KEY" env-default:"generic"`
	AckQueue              string `env:"PUSHD_ACK_QUEUE" env-default:"ack"`
}

func Load() (*Config, error) {
	var cfg Config

	// ReadEnv only: configuration comes strictly from environment variables.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return &cfg, nil
}

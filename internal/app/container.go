package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	natspkg "github.com/nats-io/nats.go"
	redispkg "github.com/redis/go-redis/v9"

	natsadapter "github.com/strogmv/pushd/internal/adapter/events/nats"
	presenceredis "github.com/strogmv/pushd/internal/adapter/presence/redis"
	subscriptionpg "github.com/strogmv/pushd/internal/adapter/subscription/postgres"
	"github.com/strogmv/pushd/internal/config"
	"github.com/strogmv/pushd/internal/port"
	"github.com/strogmv/pushd/internal/service"
)

// Container wires the shared clients and the services built on them.
// Everything here is created once at startup and shared by all calls.
type Container struct {
	Config  *config.Config
	Routing *config.RoutingProvider

	Redis *redispkg.Client
	DB    *pgxpool.Pool
	NATS  *natspkg.Conn

	Presence      port.PresenceStore
	Subscriptions port.SubscriptionStore
	Publisher     port.Publisher

	Filter   *service.PresenceFilter
	Notifier *service.Notifier
}

func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config:  cfg,
		Routing: config.NewRoutingProvider(cfg.Pushd),
	}

	c.Redis = presenceredis.NewClient(cfg.RedisAddr)

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	c.DB = pool

	nc, js, err := natsadapter.Connect(cfg.NATSURL)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.NATS = nc

	c.Presence = presenceredis.NewStore(c.Redis, cfg.PresenceTTL, logger)
	c.Subscriptions = subscriptionpg.NewSubscriptionStore(pool)
	c.Publisher = natsadapter.NewPublisher(js, c.Routing, logger)

	c.Filter = service.NewPresenceFilter(c.Presence, cfg.FilterWorkers)
	c.Notifier = service.NewNotifier(c.Publisher, c.Filter, logger)

	return c, nil
}

// Close releases the shared clients. Safe on a partially built container.
func (c *Container) Close() {
	if c.NATS != nil {
		c.NATS.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}

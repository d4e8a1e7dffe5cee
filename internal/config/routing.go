package config

import (
	"fmt"
	"sync/atomic"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/strogmv/pushd/internal/domain"
)

// RoutingProvider exposes the exchange and routing-key table to publishers.
// The table is swapped atomically on Reload, so every publish observes a
// consistent snapshot without locking.
type RoutingProvider struct {
	current atomic.Pointer[routingTable]
}

type routingTable struct {
	exchange string
	keys     map[domain.EventKind]string
}

func NewRoutingProvider(cfg PushdConfig) *RoutingProvider {
	p := &RoutingProvider{}
	p.current.Store(tableFrom(cfg))
	return p
}

// Reload re-reads the routing environment and swaps the table in place.
// Wired to SIGHUP in the process entry point.
func (p *RoutingProvider) Reload() error {
	var cfg PushdConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return fmt.Errorf("reload routing config: %w", err)
	}
	p.current.Store(tableFrom(cfg))
	return nil
}

func (p *RoutingProvider) Exchange() string {
	return p.current.Load().exchange
}

func (p *RoutingProvider) RoutingKey(kind domain.EventKind) string {
	return p.current.Load().keys[kind]
}

func tableFrom(cfg PushdConfig) *routingTable {
	return &routingTable{
		exchange: cfg.Exchange,
		keys: map[domain.EventKind]string{
			domain.EventMessageSent:           cfg.MessageRoutingKey,
			domain.EventMassMention:           cfg.MassMentionRoutingKey,
			domain.EventFriendRequestAccepted: cfg.FRAcceptedRoutingKey,
			domain.EventFriendRequestReceived: cfg.FRReceivedRoutingKey,
			domain.EventGeneric:               cfg.GenericRoutingKey,
			domain.EventAck:                   cfg.AckQueue,
		},
	}
}

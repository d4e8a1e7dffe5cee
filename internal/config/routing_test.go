package config

import (
	"testing"

	"github.com/strogmv/pushd/internal/domain"
)

func TestRoutingProvider_ResolvesPerEventKind(t *testing.T) {
	p := NewRoutingProvider(PushdConfig{
		Exchange:              "notifications",
		MessageRoutingKey:     "message_sent",
		MassMentionRoutingKey: "mass_mention",
		FRAcceptedRoutingKey:  "fr_accepted",
		FRReceivedRoutingKey:  "fr_received",
		GenericRoutingKey:     "generic",
		AckQueue:              "ack",
	})

	if got := p.Exchange(); got != "notifications" {
		t.Fatalf("Exchange() = %q", got)
	}
	want := map[domain.EventKind]string{
		domain.EventMessageSent:           "message_sent",
		domain.EventMassMention:           "mass_mention",
		domain.EventFriendRequestAccepted: "fr_accepted",
		domain.EventFriendRequestReceived: "fr_received",
		domain.EventGeneric:               "generic",
		domain.EventAck:                   "ack",
	}
	for kind, key := range want {
		if got := p.RoutingKey(kind); got != key {
			t.Fatalf("RoutingKey(%s) = %q, want %q", kind, got, key)
		}
	}
}

func TestRoutingProvider_ReloadPicksUpEnvironment(t *testing.T) {
	p := NewRoutingProvider(PushdConfig{Exchange: "old", AckQueue: "ack"})

	t.Setenv("PUSHD_EXCHANGE", "fresh")
	t.Setenv("PUSHD_ACK_QUEUE", "ack.v2")
	if err := p.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if got := p.Exchange(); got != "fresh" {
		t.Fatalf("Exchange() after reload = %q", got)
	}
	if got := p.RoutingKey(domain.EventAck); got != "ack.v2" {
		t.Fatalf("RoutingKey(ack) after reload = %q", got)
	}
}

// Package nats publishes notification payloads to JetStream.
//
// The configured exchange becomes the subject prefix and the per-event
// routing key the suffix, so downstream push workers bind by subject the
// same way AMQP consumers would bind by routing key. Stream retention
// provides the durable, restart-surviving delivery the pipeline requires.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	natspkg "github.com/nats-io/nats.go"

	"github.com/strogmv/pushd/internal/domain"
	"github.com/strogmv/pushd/internal/port"
)

// DeduplicationHeader is the wire-stable header consumers key duplicate
// suppression on. JetStream's own Nats-Msg-Id carries the same value so
// the broker collapses duplicates before consumers ever see them.
const DeduplicationHeader = "x-deduplication-header"

const contentTypeHeader = "Content-Type"

type jetStream interface {
	PublishMsg(m *natspkg.Msg, opts ...natspkg.PubOpt) (*natspkg.PubAck, error)
}

type Publisher struct {
	js      jetStream
	routing port.RoutingConfig
	logger  *slog.Logger
}

func Connect(url string) (*natspkg.Conn, natspkg.JetStreamContext, error) {
	nc, err := natspkg.Connect(url)
	if err != nil {
		return nil, nil, fmt.Errorf("connect nats: %w", err)
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("open jetstream context: %w", err)
	}
	return nc, js, nil
}

func NewPublisher(js natspkg.JetStreamContext, routing port.RoutingConfig, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{js: js, routing: routing, logger: logger}
}

func (p *Publisher) PublishFriendRequestAccepted(ctx context.Context, payload domain.FRAcceptedPayload) error {
	return p.publish(ctx, domain.EventFriendRequestAccepted, payload, uuid.NewString(), nil)
}

func (p *Publisher) PublishFriendRequestReceived(ctx context.Context, payload domain.FRReceivedPayload) error {
	return p.publish(ctx, domain.EventFriendRequestReceived, payload, uuid.NewString(), nil)
}

func (p *Publisher) PublishGeneric(ctx context.Context, payload domain.GenericPayload) error {
	return p.publish(ctx, domain.EventGeneric, payload, uuid.NewString(), nil)
}

func (p *Publisher) PublishMessageSent(ctx context.Context, payload domain.MessageSentPayload) error {
	return p.publish(ctx, domain.EventMessageSent, payload, uuid.NewString(), nil)
}

func (p *Publisher) PublishMassMention(ctx context.Context, payload domain.MassMessageSentPayload) error {
	return p.publish(ctx, domain.EventMassMention, payload, uuid.NewString(), nil)
}

// PublishAck carries a deduplication key so repeated acks for the same
// user and channel collapse into one delivery.
func (p *Publisher) PublishAck(ctx context.Context, payload domain.AckPayload) error {
	key := payload.DeduplicationKey()
	headers := natspkg.Header{}
	headers.Set(DeduplicationHeader, key)
	return p.publish(ctx, domain.EventAck, payload, key, headers)
}

func (p *Publisher) publish(ctx context.Context, kind domain.EventKind, payload any, msgID string, extra natspkg.Header) error {
	msg, err := p.buildMsg(kind, payload, msgID, extra)
	if err != nil {
		return err
	}

	// Acks are logged at info, everything else at debug: ack volume is low
	// and the read-state trail is worth keeping in production logs.
	level := slog.LevelDebug
	if kind == domain.EventAck {
		level = slog.LevelInfo
	}
	p.logger.Log(ctx, level, "publishing notification payload",
		"event", string(kind),
		"subject", msg.Subject,
		"bytes", len(msg.Data),
	)

	if _, err := p.js.PublishMsg(msg, natspkg.Context(ctx)); err != nil {
		return fmt.Errorf("publish %s: %w", kind, err)
	}
	return nil
}

func (p *Publisher) buildMsg(kind domain.EventKind, payload any, msgID string, extra natspkg.Header) (*natspkg.Msg, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", kind, err)
	}

	msg := &natspkg.Msg{
		Subject: p.routing.Exchange() + "." + p.routing.RoutingKey(kind),
		Data:    body,
		Header:  natspkg.Header{},
	}
	msg.Header.Set(contentTypeHeader, "application/json")
	msg.Header.Set(natspkg.MsgIdHdr, msgID)
	for name, values := range extra {
		for _, v := range values {
			msg.Header.Add(name, v)
		}
	}
	return msg, nil
}

var _ port.Publisher = (*Publisher)(nil)

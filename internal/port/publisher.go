package port

import (
	"context"

	"github.com/strogmv/pushd/internal/domain"
)

// Publisher hands fully built payloads to the broker, one method per event
// kind. Implementations resolve the routing key per call, attach delivery
// metadata and surface transport errors verbatim; retry policy belongs to
// the caller.
type Publisher interface {
	PublishFriendRequestAccepted(ctx context.Context, payload domain.FRAcceptedPayload) error
	PublishFriendRequestReceived(ctx context.Context, payload domain.FRReceivedPayload) error
	PublishGeneric(ctx context.Context, payload domain.GenericPayload) error
	PublishMessageSent(ctx context.Context, payload domain.MessageSentPayload) error
	PublishMassMention(ctx context.Context, payload domain.MassMessageSentPayload) error
	PublishAck(ctx context.Context, payload domain.AckPayload) error
}

package service

import (
	"context"
	"log/slog"

	"github.com/strogmv/pushd/internal/domain"
	"github.com/strogmv/pushd/internal/pkg/redact"
	"github.com/strogmv/pushd/internal/port"
)

// Notifier is the entry point of the fanout pipeline: one method per
// application event. It decides who hears about the event, builds the
// event-specific payload and hands it to the publisher. Stateless between
// calls; safe for concurrent use.
type Notifier struct {
	publisher port.Publisher
	filter    *PresenceFilter
	logger    *slog.Logger
}

func NewNotifier(publisher port.Publisher, filter *PresenceFilter, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{publisher: publisher, filter: filter, logger: logger}
}

// FriendRequestAccepted notifies the user whose outgoing request was accepted.
func (n *Notifier) FriendRequestAccepted(ctx context.Context, acceptedUser domain.User, requestingUser domain.User) error {
	payload := domain.FRAcceptedPayload{
		AcceptedUser: acceptedUser,
		User:         requestingUser.ID,
	}
	if err := n.publisher.PublishFriendRequestAccepted(ctx, payload); err != nil {
		return err
	}
	notificationsPublished.WithLabelValues(string(domain.EventFriendRequestAccepted)).Inc()
	return nil
}

// FriendRequestReceived notifies the target of an incoming friend request.
func (n *Notifier) FriendRequestReceived(ctx context.Context, receivedUser domain.User, sendingUser domain.User) error {
	payload := domain.FRReceivedPayload{
		FromUser: sendingUser,
		User:     receivedUser.ID,
	}
	if err := n.publisher.PublishFriendRequestReceived(ctx, payload); err != nil {
		return err
	}
	notificationsPublished.WithLabelValues(string(domain.EventFriendRequestReceived)).Inc()
	return nil
}

// Generic sends a free-form notification to a single user.
func (n *Notifier) Generic(ctx context.Context, user domain.User, title, body string, icon *string) error {
	payload := domain.GenericPayload{
		Title: title,
		Body:  body,
		Icon:  icon,
		User:  user,
	}
	if err := n.publisher.PublishGeneric(ctx, payload); err != nil {
		return err
	}
	notificationsPublished.WithLabelValues(string(domain.EventGeneric)).Inc()
	return nil
}

// MessageSent fans a message notification out to the channel's recipients,
// scrubbing spoilers and suppressing users who are viewing the channel
// right now. An empty audience, before or after filtering, is a valid
// "nothing to send" outcome, not an error.
func (n *Notifier) MessageSent(ctx context.Context, recipients []string, notification domain.PushNotification) error {
	if len(recipients) == 0 {
		notificationsSuppressed.WithLabelValues("empty").Inc()
		return nil
	}
	recipients = dedupe(recipients)

	notification.Body = redact.Spoiler(notification.Body)
	if notification.Message.Content != nil {
		content := redact.Spoiler(*notification.Message.Content)
		notification.Message.Content = &content
	}

	channelID := notification.Channel.ID
	remaining := n.filter.Filter(ctx, recipients, channelID)
	if len(remaining) == 0 {
		n.logger.Debug("everyone is viewing the channel, skipping notification",
			"channel_id", channelID,
			"recipients", len(recipients),
		)
		notificationsSuppressed.WithLabelValues("all_viewing").Inc()
		return nil
	}

	payload := domain.MessageSentPayload{
		Notification: notification,
		Users:        remaining,
	}
	if err := n.publisher.PublishMessageSent(ctx, payload); err != nil {
		return err
	}
	notificationsPublished.WithLabelValues(string(domain.EventMessageSent)).Inc()
	return nil
}

// MassMention publishes a batch of per-user notifications for a mass
// mention. The caller already resolved mention targets; no presence
// filtering applies here.
func (n *Notifier) MassMention(ctx context.Context, serverID string, notifications []domain.PushNotification) error {
	payload := domain.MassMessageSentPayload{
		Notifications: notifications,
		ServerID:      serverID,
	}
	if err := n.publisher.PublishMassMention(ctx, payload); err != nil {
		return err
	}
	notificationsPublished.WithLabelValues(string(domain.EventMassMention)).Inc()
	return nil
}

// Ack records that a user read a channel up to a message.
func (n *Notifier) Ack(ctx context.Context, userID, channelID, messageID string) error {
	payload := domain.AckPayload{
		UserID:    userID,
		ChannelID: channelID,
		MessageID: messageID,
	}
	if err := n.publisher.PublishAck(ctx, payload); err != nil {
		return err
	}
	notificationsPublished.WithLabelValues(string(domain.EventAck)).Inc()
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

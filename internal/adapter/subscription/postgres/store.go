package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/strogmv/pushd/internal/port"
)

// execer is the slice of pgxpool.Pool the store needs; tests substitute a fake.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SubscriptionStore persists web-push subscriptions keyed by (user, session).
type SubscriptionStore struct {
	DB execer
}

func NewSubscriptionStore(pool *pgxpool.Pool) *SubscriptionStore {
	return &SubscriptionStore{DB: pool}
}

// Save upserts the session's subscription: a session re-subscribing
// replaces whatever it registered before.
func (s *SubscriptionStore) Save(ctx context.Context, userID, sessionID string, sub port.WebPushSubscription) error {
	_, err := s.DB.Exec(ctx,
		`INSERT INTO push_subscriptions (user_id, session_id, endpoint, p256dh, auth)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, session_id)
		 DO UPDATE SET endpoint = $3, p256dh = $4, auth = $5`,
		userID, sessionID, sub.Endpoint, sub.P256DH, sub.Auth)
	if err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	return nil
}

// Delete removes the session's subscription.
func (s *SubscriptionStore) Delete(ctx context.Context, userID, sessionID string) error {
	_, err := s.DB.Exec(ctx,
		"DELETE FROM push_subscriptions WHERE user_id = $1 AND session_id = $2",
		userID, sessionID)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// RemoveDuplicateFCM drops FCM rows holding the same token under the
// user's other sessions, so one device is never registered twice.
func (s *SubscriptionStore) RemoveDuplicateFCM(ctx context.Context, userID, sessionID, token string) error {
	_, err := s.DB.Exec(ctx,
		`DELETE FROM push_subscriptions
		 WHERE user_id = $1 AND endpoint = 'fcm' AND auth = $2 AND session_id <> $3`,
		userID, token, sessionID)
	if err != nil {
		return fmt.Errorf("remove duplicate fcm subscriptions: %w", err)
	}
	return nil
}

// Compile-time interface check.
var _ port.SubscriptionStore = (*SubscriptionStore)(nil)

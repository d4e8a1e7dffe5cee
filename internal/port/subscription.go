package port

import "context"

// WebPushSubscription is the per-session push endpoint registration a
// client submits after obtaining browser or FCM credentials.
type WebPushSubscription struct {
	Endpoint string `json:"endpoint"`
	P256DH   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

// SubscriptionStore persists web-push subscriptions keyed by session.
type SubscriptionStore interface {
	// Save upserts the subscription for the session.
	Save(ctx context.Context, userID, sessionID string, sub WebPushSubscription) error

	// Delete removes the session's subscription, if any.
	Delete(ctx context.Context, userID, sessionID string) error

	// RemoveDuplicateFCM drops FCM subscriptions holding the same token
	// under the user's other sessions, so one device never receives the
	// same push twice.
	RemoveDuplicateFCM(ctx context.Context, userID, sessionID, token string) error
}

package port

import "context"

// PresenceStore tracks which channels each active session has open.
// Records expire on their own; a missing record means "not viewing".
type PresenceStore interface {
	// IsViewing reports whether any of the user's sessions currently has
	// the channel open. Store failures degrade to false, never an error:
	// an unreachable store must not hold back the publish path.
	IsViewing(ctx context.Context, userID, channelID string) bool

	// MarkOpen adds the channel to the session's open set and resets the
	// record TTL.
	MarkOpen(ctx context.Context, userID, sessionID, channelID string) error

	// MarkClose removes the channel from the session's open set without
	// touching the TTL.
	MarkClose(ctx context.Context, userID, sessionID, channelID string) error
}

package domain

// EventKind selects the routing key a payload is published under.
type EventKind string

const (
	EventFriendRequestAccepted EventKind = "fr_accepted"
	EventFriendRequestReceived EventKind = "fr_received"
	EventGeneric               EventKind = "generic"
	EventMessageSent           EventKind = "message_sent"
	EventMassMention           EventKind = "mass_mention"
	EventAck                   EventKind = "ack"
)

type FRAcceptedPayload struct {
	AcceptedUser User   `json:"accepted_user"`
	User         string `json:"user"`
}

type FRReceivedPayload struct {
	FromUser User   `json:"from_user"`
	User     string `json:"user"`
}

type GenericPayload struct {
	Title string  `json:"title"`
	Body  string  `json:"body"`
	Icon  *string `json:"icon,omitempty"`
	User  User    `json:"user"`
}

type MessageSentPayload struct {
	Notification PushNotification `json:"notification"`
	Users        []string         `json:"users"`
}

type MassMessageSentPayload struct {
	Notifications []PushNotification `json:"notifications"`
	ServerID      string             `json:"server_id"`
}

type AckPayload struct {
	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

// DeduplicationKey collapses repeated acks for the same user and channel
// into one logical delivery on the broker side.
func (p AckPayload) DeduplicationKey() string {
	return p.UserID + "-" + p.ChannelID
}

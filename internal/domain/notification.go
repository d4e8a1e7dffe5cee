package domain

// User is a snapshot of a user record as the database layer hands it over.
// Field names are part of the wire contract consumed by the push workers.
type User struct {
	ID            string  `json:"_id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	DisplayName   *string `json:"display_name,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
	Online        bool    `json:"online"`
}

// Channel is a minimal reference to the channel a message landed in.
type Channel struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

// Message carries the raw message fields a push gateway may want to render.
type Message struct {
	ID      string  `json:"_id"`
	Channel string  `json:"channel"`
	Author  string  `json:"author"`
	Content *string `json:"content,omitempty"`
}

// PushNotification is the pre-rendered notification content for one message.
type PushNotification struct {
	Author    string  `json:"author"`
	Icon      string  `json:"icon"`
	Image     *string `json:"image,omitempty"`
	Body      string  `json:"body"`
	Tag       string  `json:"tag"`
	Timestamp uint64  `json:"timestamp"`
	MessageID string  `json:"message_id"`
	Channel   Channel `json:"channel"`
	URL       string  `json:"url"`
	Message   Message `json:"message"`
}

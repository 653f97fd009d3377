package notification

import (
	"fmt"
	"strings"

	"eduplatform/models"

	"github.com/goccy/go-json"
)

// PushMessage is the websocket payload for one notification.
type PushMessage struct {
	Event        string              `json:"event"`
	Notification models.Notification `json:"notification"`
}

// MessageBuilder renders a notification for the out-of-app channels.
type MessageBuilder struct {
	user models.User
	n    models.Notification
}

func NewMessageBuilder(user models.User, n models.Notification) *MessageBuilder {
	return &MessageBuilder{user: user, n: n}
}

func (b *MessageBuilder) Subject() string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(string(b.n.Type)), b.n.Title)
}

func (b *MessageBuilder) Body() string {
	name := b.user.Name
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Hi %s,\n\n%s\n\nSent %s", name, b.n.Message, b.n.SentAt.UTC().Format("02/01/2006 15:04 MST"))
}

func (b *MessageBuilder) Push() ([]byte, error) {
	return json.Marshal(PushMessage{Event: "notification", Notification: b.n})
}

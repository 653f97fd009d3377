package builders

import (
	"time"

	"eduplatform/models"

	"github.com/google/uuid"
)

// NotificationBuilder assembles a new unread notification step by step.
type NotificationBuilder struct {
	n *models.Notification
}

func NewNotificationBuilder(userID uint) *NotificationBuilder {
	return &NotificationBuilder{
		n: &models.Notification{
			NotificationID: uuid.NewString(),
			UserID:         userID,
		},
	}
}

func (b *NotificationBuilder) WithContent(title, message string) *NotificationBuilder {
	b.n.Title = title
	b.n.Message = message
	return b
}

func (b *NotificationBuilder) WithType(t models.NotificationType) *NotificationBuilder {
	b.n.Type = t
	return b
}

// WithReference links the notification to its origin entity. Both halves are
// kept as given, nil included.
func (b *NotificationBuilder) WithReference(id *uint, kind *string) *NotificationBuilder {
	b.n.ReferenceID = id
	b.n.ReferenceType = kind
	return b
}

func (b *NotificationBuilder) SentAt(t time.Time) *NotificationBuilder {
	b.n.SentAt = t
	return b
}

// Build returns the notification, unread and with no read timestamp.
func (b *NotificationBuilder) Build() *models.Notification {
	b.n.IsRead = false
	b.n.ReadAt = nil
	return b.n
}

package models

import "time"

type NotificationType string

const (
	NotificationAssignment  NotificationType = "assignment"
	NotificationGrade       NotificationType = "grade"
	NotificationAchievement NotificationType = "achievement"
	NotificationReminder    NotificationType = "reminder"
	NotificationSystem      NotificationType = "system"
)

// NotificationTypes lists the closed set of kinds in a stable order.
var NotificationTypes = []NotificationType{
	NotificationAssignment,
	NotificationGrade,
	NotificationAchievement,
	NotificationReminder,
	NotificationSystem,
}

func (t NotificationType) Valid() bool {
	for _, v := range NotificationTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Notification is a message delivered to exactly one user. ReadAt is set
// exactly when IsRead is true.
type Notification struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	NotificationID string           `gorm:"type:varchar(36);uniqueIndex;not null" json:"notificationId"`
	UserID         uint             `gorm:"not null;index" json:"userId"`
	Title          string           `gorm:"type:varchar(255);not null" json:"title"`
	Message        string           `gorm:"type:varchar(1000);not null" json:"message"`
	Type           NotificationType `gorm:"type:varchar(20);not null;index" json:"type"`
	ReferenceID    *uint            `json:"referenceId,omitempty"`
	ReferenceType  *string          `gorm:"type:varchar(50)" json:"referenceType,omitempty"`
	IsRead         bool             `gorm:"not null;index" json:"isRead"`
	SentAt         time.Time        `gorm:"not null;index" json:"sentAt"`
	ReadAt         *time.Time       `json:"readAt"`
	User           *User            `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

package models

import "time"

// NotificationPreference holds the per-user channel toggles. Users without a
// stored row get DefaultNotificationPreference.
type NotificationPreference struct {
	UserID                   uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	EmailNotifications       bool      `gorm:"not null" json:"emailNotifications"`
	PushNotifications        bool      `gorm:"not null" json:"pushNotifications"`
	AssignmentReminders      bool      `gorm:"not null" json:"assignmentReminders"`
	GradeNotifications       bool      `gorm:"not null" json:"gradeNotifications"`
	AchievementNotifications bool      `gorm:"not null" json:"achievementNotifications"`
	SystemNotifications      bool      `gorm:"not null" json:"systemNotifications"`
	UpdatedAt                time.Time `json:"updatedAt"`
	User                     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func DefaultNotificationPreference(userID uint) NotificationPreference {
	return NotificationPreference{
		UserID:                   userID,
		EmailNotifications:       true,
		PushNotifications:        true,
		AssignmentReminders:      true,
		GradeNotifications:       true,
		AchievementNotifications: true,
		SystemNotifications:      true,
	}
}

// AllowsType reports the kind-specific toggle. Reminders have no toggle of
// their own and are always allowed.
func (p NotificationPreference) AllowsType(t NotificationType) bool {
	switch t {
	case NotificationAssignment:
		return p.AssignmentReminders
	case NotificationGrade:
		return p.GradeNotifications
	case NotificationAchievement:
		return p.AchievementNotifications
	case NotificationSystem:
		return p.SystemNotifications
	default:
		return true
	}
}

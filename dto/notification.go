package dto

import (
	"time"

	"eduplatform/models"
)

type SendNotificationRequest struct {
	UserID        uint                    `json:"userId" binding:"required" validate:"required"`
	Title         string                  `json:"title" binding:"required,max=255" validate:"required,max=255"`
	Message       string                  `json:"message" binding:"required,max=1000" validate:"required,max=1000"`
	Type          models.NotificationType `json:"type" binding:"required,oneof=assignment grade achievement reminder system" validate:"required,oneof=assignment grade achievement reminder system"`
	ReferenceID   *uint                   `json:"referenceId"`
	ReferenceType *string                 `json:"referenceType" validate:"omitempty,max=50"`
}

type BulkNotificationRequest struct {
	Notifications []SendNotificationRequest `json:"notifications" binding:"required,min=1,dive"`
}

// NotificationFilters drives GetUserNotifications. Nil pointers mean "any".
// DateFrom and DateTo are both inclusive.
type NotificationFilters struct {
	UserID   *uint
	Type     *models.NotificationType
	IsRead   *bool
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	Limit    int
}

type NotificationList struct {
	Notifications []models.Notification `json:"notifications"`
	PageMeta
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type CleanupResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// UpdatePreferencesRequest is a partial update: only non-nil toggles change.
type UpdatePreferencesRequest struct {
	EmailNotifications       *bool `json:"emailNotifications"`
	PushNotifications        *bool `json:"pushNotifications"`
	AssignmentReminders      *bool `json:"assignmentReminders"`
	GradeNotifications       *bool `json:"gradeNotifications"`
	AchievementNotifications *bool `json:"achievementNotifications"`
	SystemNotifications      *bool `json:"systemNotifications"`
}

// Apply copies the supplied toggles onto p.
func (r UpdatePreferencesRequest) Apply(p *models.NotificationPreference) {
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.EmailNotifications, r.EmailNotifications)
	set(&p.PushNotifications, r.PushNotifications)
	set(&p.AssignmentReminders, r.AssignmentReminders)
	set(&p.GradeNotifications, r.GradeNotifications)
	set(&p.AchievementNotifications, r.AchievementNotifications)
	set(&p.SystemNotifications, r.SystemNotifications)
}

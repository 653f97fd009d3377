package controllers

import (
	"eduplatform/constants"
	"eduplatform/dto"
	"eduplatform/models"
	"eduplatform/response"
	"eduplatform/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notifications services.NotificationServiceInterface
}

func NewNotificationController(notifications services.NotificationServiceInterface) *NotificationController {
	return &NotificationController{notifications: notifications}
}

func parseNotificationFilters(c *gin.Context, userID uint) (dto.NotificationFilters, error) {
	f := dto.NotificationFilters{UserID: &userID}

	if raw := c.Query("type"); raw != "" {
		t := models.NotificationType(raw)
		if !t.Valid() {
			return f, invalidQuery("type")
		}
		f.Type = &t
	}

	var err error
	if f.IsRead, err = queryBool(c, "isRead"); err != nil {
		return f, err
	}
	if f.DateFrom, err = queryTime(c, "dateFrom", false); err != nil {
		return f, err
	}
	if f.DateTo, err = queryTime(c, "dateTo", true); err != nil {
		return f, err
	}
	if f.Page, f.Limit, err = pageParams(c); err != nil {
		return f, err
	}
	return f, nil
}

// GetNotifications godoc
// @Summary  List the caller's notifications
// @Tags     notifications
// @Produce  json
// @Param    type     query string false "assignment|grade|achievement|reminder|system"
// @Param    isRead   query bool   false "read state"
// @Param    dateFrom query string false "RFC 3339 or YYYY-MM-DD"
// @Param    dateTo   query string false "RFC 3339 or YYYY-MM-DD"
// @Param    page     query int    false "page"
// @Param    limit    query int    false "limit"
// @Success  200 {object} response.Response{data=dto.NotificationList}
// @Security BearerAuth
// @Router   /notifications [get]
func (ctrl *NotificationController) GetNotifications(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	filters, err := parseNotificationFilters(c, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := ctrl.notifications.GetUserNotifications(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetUnreadCount godoc
// @Summary  Count the caller's unread notifications
// @Tags     notifications
// @Success  200 {object} response.Response{data=dto.UnreadCountResponse}
// @Security BearerAuth
// @Router   /notifications/unread-count [get]
func (ctrl *NotificationController) GetUnreadCount(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	count, err := ctrl.notifications.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.UnreadCountResponse{Count: count})
}

// MarkAsRead godoc
// @Summary  Mark one of the caller's notifications as read
// @Tags     notifications
// @Param    id path int true "notification id"
// @Success  200 {object} response.Response{data=models.Notification}
// @Failure  404 {object} response.Response
// @Security BearerAuth
// @Router   /notifications/{id}/read [put]
func (ctrl *NotificationController) MarkAsRead(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	n, err := ctrl.notifications.MarkAsRead(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Notification marked as read", n)
}

// SendNotification godoc
// @Summary  Send a notification to a user
// @Tags     notifications
// @Accept   json
// @Param    body body dto.SendNotificationRequest true "notification"
// @Success  201 {object} response.Response{data=models.Notification}
// @Failure  403 {object} response.Response
// @Security BearerAuth
// @Router   /notifications [post]
func (ctrl *NotificationController) SendNotification(c *gin.Context) {
	var req dto.SendNotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := ctrl.notifications.SendNotification(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Notification sent", n)
}

// SendBulkNotifications godoc
// @Summary  Send many notifications; results follow request order
// @Tags     notifications
// @Accept   json
// @Param    body body dto.BulkNotificationRequest true "notifications"
// @Success  201 {object} response.Response{data=[]models.Notification}
// @Security BearerAuth
// @Router   /notifications/bulk [post]
func (ctrl *NotificationController) SendBulkNotifications(c *gin.Context) {
	var req dto.BulkNotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	sent, err := ctrl.notifications.SendBulkNotifications(c.Request.Context(), req.Notifications)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Notifications sent", sent)
}

func (ctrl *NotificationController) GetPreferences(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	prefs, err := ctrl.notifications.GetUserNotificationPreferences(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, prefs)
}

// UpdatePreferences godoc
// @Summary  Update the caller's notification preferences; omitted toggles are kept
// @Tags     notifications
// @Accept   json
// @Param    body body dto.UpdatePreferencesRequest true "toggles"
// @Success  200 {object} response.Response{data=models.NotificationPreference}
// @Security BearerAuth
// @Router   /notifications/preferences [put]
func (ctrl *NotificationController) UpdatePreferences(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdatePreferencesRequest
	if !bindJSON(c, &req) {
		return
	}
	prefs, err := ctrl.notifications.UpdateNotificationPreferences(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Preferences updated", prefs)
}

// CleanupOldNotifications godoc
// @Summary  Delete read notifications older than daysOld days
// @Tags     notifications
// @Param    daysOld query int false "default 30"
// @Success  200 {object} response.Response{data=dto.CleanupResponse}
// @Security BearerAuth
// @Router   /notifications/cleanup [delete]
func (ctrl *NotificationController) CleanupOldNotifications(c *gin.Context) {
	daysOld, err := queryInt(c, "daysOld")
	if err != nil {
		response.Error(c, err)
		return
	}
	days := constants.DefaultCleanupDaysOld
	if daysOld != nil {
		days = *daysOld
	}

	deleted, err := ctrl.notifications.CleanupOldNotifications(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.CleanupResponse{DeletedCount: deleted})
}

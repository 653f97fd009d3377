package services

import (
	"context"
	"errors"
	"time"

	"eduplatform/builders"
	"eduplatform/constants"
	"eduplatform/dto"
	apperrors "eduplatform/errors"
	"eduplatform/metrics"
	"eduplatform/models"
	"eduplatform/services/logger"
	"eduplatform/services/notification"
	"eduplatform/validator"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgNotificationNotFound = "Notification not found or access denied"

type NotificationServiceInterface interface {
	SendNotification(ctx context.Context, req dto.SendNotificationRequest) (*models.Notification, error)
	SendBulkNotifications(ctx context.Context, reqs []dto.SendNotificationRequest) ([]*models.Notification, error)
	MarkAsRead(ctx context.Context, id, userID uint) (*models.Notification, error)
	GetUserNotifications(ctx context.Context, filters dto.NotificationFilters) (*dto.NotificationList, error)
	GetUnreadCount(ctx context.Context, userID uint) (int64, error)
	CleanupOldNotifications(ctx context.Context, daysOld int) (int64, error)
	GetUserNotificationPreferences(ctx context.Context, userID uint) (*models.NotificationPreference, error)
	UpdateNotificationPreferences(ctx context.Context, userID uint, req dto.UpdatePreferencesRequest) (*models.NotificationPreference, error)
}

type NotificationService struct {
	db         *gorm.DB
	logger     logger.Logger
	cache      *Cache
	dispatcher *notification.Dispatcher
	now        func() time.Time
}

type NotificationServiceOptions struct {
	DB         *gorm.DB
	Logger     logger.Logger
	Cache      *Cache
	Dispatcher *notification.Dispatcher
	Now        func() time.Time
}

func NewNotificationService(opts NotificationServiceOptions) *NotificationService {
	s := &NotificationService{
		db:         opts.DB,
		logger:     opts.Logger,
		cache:      opts.Cache,
		dispatcher: opts.Dispatcher,
		now:        opts.Now,
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	if s.now == nil {
		s.now = utcNow
	}
	return s
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// SendNotification persists an unread notification and then attempts the
// channels the recipient's preferences allow. Only the insert can fail the
// call; channel outcomes are logged and counted.
func (s *NotificationService) SendNotification(ctx context.Context, req dto.SendNotificationRequest) (*models.Notification, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	n := builders.NewNotificationBuilder(req.UserID).
		WithContent(req.Title, req.Message).
		WithType(req.Type).
		WithReference(req.ReferenceID, req.ReferenceType).
		SentAt(s.now()).
		Build()

	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeNotificationFailed, "Failed to create notification", err)
	}
	s.invalidateUnread(ctx, n.UserID)
	metrics.IncrementNotificationSent(string(n.Type))

	results := s.deliver(ctx, *n)
	for _, r := range results {
		metrics.IncrementChannelDelivery(r.Channel, r.Success)
		if !r.Success {
			s.logger.Warn("notification %s: %s delivery failed: %s", n.NotificationID, r.Channel, r.Error)
		}
	}
	s.logger.Info("sent notification %d (%s) to user %d via %d channel(s)", n.ID, n.Type, n.UserID, len(results))
	return n, nil
}

func (s *NotificationService) deliver(ctx context.Context, n models.Notification) []notification.ChannelResult {
	if s.dispatcher == nil {
		return []notification.ChannelResult{{Channel: notification.ChannelInApp, Success: true}}
	}

	prefs, err := s.GetUserNotificationPreferences(ctx, n.UserID)
	if err != nil {
		s.logger.Error("load preferences for user %d: %v", n.UserID, err)
		def := models.DefaultNotificationPreference(n.UserID)
		prefs = &def
	}

	user := models.User{ID: n.UserID}
	if err := s.db.WithContext(ctx).Select("id", "name", "email").First(&user, n.UserID).Error; err != nil {
		s.logger.Error("load recipient %d: %v", n.UserID, err)
	}

	return s.dispatcher.Deliver(ctx, *prefs, user, n)
}

// SendBulkNotifications sends every payload, at most
// constants.BulkSendConcurrency at a time, so a large batch cannot drain the
// database pool. Every payload is still sent; only parallelism is bounded.
// Results are positional. Payloads are validated up front; after that the
// batch is not atomic and rows inserted before a failure stay committed.
func (s *NotificationService) SendBulkNotifications(ctx context.Context, reqs []dto.SendNotificationRequest) ([]*models.Notification, error) {
	for _, req := range reqs {
		if err := validator.Struct(req); err != nil {
			return nil, err
		}
	}

	results := make([]*models.Notification, len(reqs))
	var g errgroup.Group
	g.SetLimit(constants.BulkSendConcurrency)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			n, err := s.SendNotification(ctx, req)
			if err != nil {
				return err
			}
			results[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MarkAsRead flags the caller's notification as read. Repeated calls
// re-stamp readAt. readAt never precedes sentAt.
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uint) (*models.Notification, error) {
	var n models.Notification
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound(apperrors.ErrCodeNotificationNotFound, msgNotificationNotFound)
	}
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load notification", err)
	}

	readAt := s.now()
	if readAt.Before(n.SentAt) {
		readAt = n.SentAt
	}
	if err := s.db.WithContext(ctx).Model(&n).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": readAt,
	}).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to mark notification as read", err)
	}
	n.IsRead = true
	n.ReadAt = &readAt

	s.invalidateUnread(ctx, userID)
	return &n, nil
}

// GetUserNotifications returns one page of matching notifications, most
// recent first.
func (s *NotificationService) GetUserNotifications(ctx context.Context, f dto.NotificationFilters) (*dto.NotificationList, error) {
	page, limit := dto.NormalizePage(f.Page, f.Limit)

	q := s.db.WithContext(ctx).Model(&models.Notification{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.IsRead != nil {
		q = q.Where("is_read = ?", *f.IsRead)
	}
	if f.DateFrom != nil {
		q = q.Where("sent_at >= ?", f.DateFrom.UTC())
	}
	if f.DateTo != nil {
		q = q.Where("sent_at <= ?", f.DateTo.UTC())
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to count notifications", err)
	}

	items := make([]models.Notification, 0, limit)
	if err := q.Order("sent_at DESC").Order("id DESC").
		Offset(dto.Offset(page, limit)).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to list notifications", err)
	}

	return &dto.NotificationList{
		Notifications: items,
		PageMeta:      dto.NewPageMeta(total, page, limit),
	}, nil
}

// GetUnreadCount serves the cached count when present. A miss counts from
// the database and caches the result unless a send or read on the same user
// landed in the meantime.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uint) (int64, error) {
	key := unreadCountKey(userID)
	var count int64
	hit, err := s.cache.Get(ctx, key, &count)
	if err != nil {
		s.logger.Warn("unread count cache read for user %d: %v", userID, err)
	}
	if hit {
		return count, nil
	}

	var countErr error
	err = s.cache.Fill(ctx, unreadGenerationKey(userID), key, constants.UnreadCountTTL, func() (interface{}, error) {
		countErr = s.db.WithContext(ctx).Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Count(&count).Error
		return count, countErr
	})
	if countErr != nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to count unread notifications", countErr)
	}
	if err != nil {
		s.logger.Warn("unread count cache write for user %d: %v", userID, err)
	}
	return count, nil
}

// CleanupOldNotifications deletes read notifications sent more than daysOld
// days ago. Unread rows are never touched.
func (s *NotificationService) CleanupOldNotifications(ctx context.Context, daysOld int) (int64, error) {
	if daysOld < 0 {
		return 0, apperrors.Validation("daysOld must not be negative", nil)
	}
	cutoff := s.now().AddDate(0, 0, -daysOld)

	res := s.db.WithContext(ctx).
		Where("is_read = ? AND sent_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if res.Error != nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to clean up notifications", res.Error)
	}

	metrics.AddNotificationsCleaned(res.RowsAffected)
	s.logger.Info("cleaned up %d read notification(s) older than %d day(s)", res.RowsAffected, daysOld)
	return res.RowsAffected, nil
}

// GetUserNotificationPreferences returns the stored preferences or the
// all-enabled default.
func (s *NotificationService) GetUserNotificationPreferences(ctx context.Context, userID uint) (*models.NotificationPreference, error) {
	var p models.NotificationPreference
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := models.DefaultNotificationPreference(userID)
		return &def, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load notification preferences", err)
	}
	return &p, nil
}

// UpdateNotificationPreferences merges the supplied toggles into the current
// preferences and stores the result.
func (s *NotificationService) UpdateNotificationPreferences(ctx context.Context, userID uint, req dto.UpdatePreferencesRequest) (*models.NotificationPreference, error) {
	p, err := s.GetUserNotificationPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	req.Apply(p)
	p.UserID = userID
	p.UpdatedAt = s.now()

	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(p).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to save notification preferences", err)
	}
	s.logger.Info("updated notification preferences for user %d", userID)
	return p, nil
}

func (s *NotificationService) invalidateUnread(ctx context.Context, userID uint) {
	if err := s.cache.Bump(ctx, unreadGenerationKey(userID), constants.UnreadCountTTL, unreadCountKey(userID)); err != nil {
		s.logger.Warn("unread count cache invalidation for user %d: %v", userID, err)
	}
}

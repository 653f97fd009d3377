package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"eduplatform/constants"
	"eduplatform/dto"
	apperrors "eduplatform/errors"
	"eduplatform/metrics"
	"eduplatform/models"
	"eduplatform/services/logger"
	"eduplatform/validator"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	msgContentNotFound       = "Content not found"
	msgUnauthorizedToUpdate  = "Unauthorized to update this content"
	msgUnauthorizedToDelete  = "Unauthorized to delete this content"
	defaultContentSortColumn = "created_at"
)

// contentSortColumns whitelists the sortBy values a caller may use.
var contentSortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"publishedAt": "published_at",
	"title":       "title",
	"viewCount":   "view_count",
	"likeCount":   "like_count",
	"gradeLevel":  "grade_level",
}

type ContentServiceInterface interface {
	CreateContent(ctx context.Context, in dto.CreateContentRequest, creatorID uint) (*models.Content, error)
	UpdateContent(ctx context.Context, id uint, in dto.UpdateContentRequest, userID uint) (*models.Content, error)
	DeleteContent(ctx context.Context, id, userID uint) error
	GetContent(ctx context.Context, id uint) (*models.Content, error)
	GetContentByUUID(ctx context.Context, uuid string) (*models.Content, error)
	GetContentList(ctx context.Context, f dto.ContentFilters) (*dto.ContentList, error)
	IncrementViewCount(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, id, userID uint) (int64, error)
	GetContentStats(ctx context.Context) (*dto.ContentStats, error)
	AuthorizeContentWrite(ctx context.Context, id, userID uint, deny string) error
	SetMediaURLs(ctx context.Context, id uint, fileURL, thumbnailURL *string) (*models.Content, error)
}

type ContentService struct {
	db     *gorm.DB
	logger logger.Logger
	cache  *Cache
	now    func() time.Time
}

type ContentServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Cache  *Cache
	Now    func() time.Time
}

func NewContentService(opts ContentServiceOptions) *ContentService {
	s := &ContentService{db: opts.DB, logger: opts.Logger, cache: opts.Cache, now: opts.Now}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	if s.now == nil {
		s.now = utcNow
	}
	return s
}

func (s *ContentService) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Subject").Preload("Creator", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "role")
	})
}

// CreateContent inserts content owned by creatorID. Omitted tags become an
// empty set. Published content is stamped with publishedAt.
func (s *ContentService) CreateContent(ctx context.Context, in dto.CreateContentRequest, creatorID uint) (*models.Content, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}

	now := s.now()
	content := models.Content{
		UUID:         uuid.NewString(),
		Title:        in.Title,
		Description:  in.Description,
		ContentType:  in.ContentType,
		SubjectID:    in.SubjectID,
		GradeLevel:   in.GradeLevel,
		Difficulty:   in.Difficulty,
		Tags:         pq.StringArray{},
		FileURL:      in.FileURL,
		ThumbnailURL: in.ThumbnailURL,
		Duration:     in.Duration,
		IsPublished:  in.IsPublished,
		CreatedBy:    creatorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Tags != nil {
		content.Tags = pq.StringArray(in.Tags)
	}
	if in.IsPublished {
		content.PublishedAt = &now
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&content).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to create content", err)
	}
	s.invalidateStats(ctx)
	s.logger.Info("user %d created content %d (%s)", creatorID, content.ID, content.ContentType)

	created, err := s.GetContent(ctx, content.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return &content, nil
	}
	return created, nil
}

// AuthorizeContentWrite allows the creator or an admin and fails with deny
// for anyone else.
func (s *ContentService) AuthorizeContentWrite(ctx context.Context, id, userID uint, deny string) error {
	_, err := s.authorize(ctx, id, userID, deny)
	return err
}

func (s *ContentService) authorize(ctx context.Context, id, userID uint, deny string) (*models.Content, error) {
	var existing models.Content
	err := s.db.WithContext(ctx).
		Select("id", "created_by", "is_published", "published_at", "updated_at").
		First(&existing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound(apperrors.ErrCodeContentNotFound, msgContentNotFound)
	}
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load content", err)
	}
	if existing.CreatedBy == userID {
		return &existing, nil
	}

	var actor models.User
	err = s.db.WithContext(ctx).Select("id", "role").First(&actor, userID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load user", err)
	}
	if err != nil || actor.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden(apperrors.ErrCodeForbidden, deny)
	}
	return &existing, nil
}

// UpdateContent applies a partial update. Tags replace the stored set.
// publishedAt is stamped when content moves from draft to published.
func (s *ContentService) UpdateContent(ctx context.Context, id uint, in dto.UpdateContentRequest, userID uint) (*models.Content, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	existing, err := s.authorize(ctx, id, userID, msgUnauthorizedToUpdate)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": s.nextUpdatedAt(existing.UpdatedAt)}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.ContentType != nil {
		updates["content_type"] = *in.ContentType
	}
	if in.SubjectID != nil {
		updates["subject_id"] = *in.SubjectID
	}
	if in.GradeLevel != nil {
		updates["grade_level"] = *in.GradeLevel
	}
	if in.Difficulty != nil {
		updates["difficulty"] = *in.Difficulty
	}
	if in.Tags != nil {
		tags := pq.StringArray(*in.Tags)
		if tags == nil {
			tags = pq.StringArray{}
		}
		updates["tags"] = tags
	}
	if in.FileURL != nil {
		updates["file_url"] = *in.FileURL
	}
	if in.ThumbnailURL != nil {
		updates["thumbnail_url"] = *in.ThumbnailURL
	}
	if in.Duration != nil {
		updates["duration"] = *in.Duration
	}
	if in.IsPublished != nil {
		updates["is_published"] = *in.IsPublished
		if *in.IsPublished && !existing.IsPublished {
			updates["published_at"] = s.now()
		}
	}

	if err := s.db.WithContext(ctx).Model(&models.Content{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to update content", err)
	}
	s.invalidateStats(ctx)

	updated, err := s.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NotFound(apperrors.ErrCodeContentNotFound, msgContentNotFound)
	}
	return updated, nil
}

func (s *ContentService) DeleteContent(ctx context.Context, id, userID uint) error {
	if _, err := s.authorize(ctx, id, userID, msgUnauthorizedToDelete); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Content{}, id).Error; err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to delete content", err)
	}
	s.invalidateStats(ctx)
	s.logger.Info("user %d deleted content %d", userID, id)
	return nil
}

// GetContent returns nil, nil when the content does not exist.
func (s *ContentService) GetContent(ctx context.Context, id uint) (*models.Content, error) {
	return s.findOne(ctx, "id = ?", id)
}

// GetContentByUUID returns nil, nil when the content does not exist.
func (s *ContentService) GetContentByUUID(ctx context.Context, id string) (*models.Content, error) {
	return s.findOne(ctx, "uuid = ?", id)
}

func (s *ContentService) findOne(ctx context.Context, cond string, arg interface{}) (*models.Content, error) {
	var content models.Content
	err := s.withRelations(s.db.WithContext(ctx)).Where(cond, arg).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load content", err)
	}
	return &content, nil
}

func contentOrder(sortBy, sortOrder string) (clause.OrderByColumn, error) {
	column := defaultContentSortColumn
	if sortBy != "" {
		c, ok := contentSortColumns[sortBy]
		if !ok {
			return clause.OrderByColumn{}, apperrors.Validation("Invalid sortBy: "+sortBy, nil)
		}
		column = c
	}

	desc := true
	switch strings.ToLower(sortOrder) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return clause.OrderByColumn{}, apperrors.Validation("Invalid sortOrder: "+sortOrder, nil)
	}
	return clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}, nil
}

// GetContentList filters, sorts and paginates content. Every requested tag
// must be present. Search is a case-sensitive substring match on title or
// description.
func (s *ContentService) GetContentList(ctx context.Context, f dto.ContentFilters) (*dto.ContentList, error) {
	order, err := contentOrder(f.SortBy, f.SortOrder)
	if err != nil {
		return nil, err
	}
	page, limit := dto.NormalizePage(f.Page, f.Limit)

	db := s.db.WithContext(ctx)
	q := db.Model(&models.Content{})
	if f.SubjectID != nil {
		q = q.Where("subject_id = ?", *f.SubjectID)
	}
	if f.GradeLevel != nil {
		q = q.Where("grade_level = ?", *f.GradeLevel)
	}
	if f.ContentType != nil {
		q = q.Where("content_type = ?", *f.ContentType)
	}
	if f.Difficulty != nil {
		q = q.Where("difficulty = ?", *f.Difficulty)
	}
	if f.IsPublished != nil {
		q = q.Where("is_published = ?", *f.IsPublished)
	}
	for _, tag := range f.Tags {
		q = arrayContainsClause(q, "tags", tag)
	}
	if f.Search != "" {
		q = q.Where("("+containsExpr(db, "title")+" OR "+containsExpr(db, "description")+")", f.Search, f.Search)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to count content", err)
	}

	items := make([]models.Content, 0, limit)
	tiebreak := clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: order.Desc}
	if err := s.withRelations(q).Order(order).Order(tiebreak).
		Offset(dto.Offset(page, limit)).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to list content", err)
	}

	return &dto.ContentList{Content: items, PageMeta: dto.NewPageMeta(total, page, limit)}, nil
}

func (s *ContentService) incrementCounter(ctx context.Context, id uint, column string) error {
	res := s.db.WithContext(ctx).Model(&models.Content{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if res.Error != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to update "+column, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(apperrors.ErrCodeContentNotFound, msgContentNotFound)
	}
	return nil
}

func (s *ContentService) IncrementViewCount(ctx context.Context, id uint) error {
	if err := s.incrementCounter(ctx, id, "view_count"); err != nil {
		return err
	}
	metrics.IncrementContentViews()
	return nil
}

// ToggleLike adds one like and returns the new like count. Likes are not
// tracked per user, so repeated calls keep counting.
func (s *ContentService) ToggleLike(ctx context.Context, id, userID uint) (int64, error) {
	if err := s.incrementCounter(ctx, id, "like_count"); err != nil {
		return 0, err
	}
	var likes int64
	if err := s.db.WithContext(ctx).Model(&models.Content{}).Where("id = ?", id).
		Select("like_count").Scan(&likes).Error; err != nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to read like count", err)
	}
	s.logger.Debug("user %d liked content %d (%d likes)", userID, id, likes)
	return likes, nil
}

// SetMediaURLs stores uploaded media locations. Nil leaves a URL unchanged.
func (s *ContentService) SetMediaURLs(ctx context.Context, id uint, fileURL, thumbnailURL *string) (*models.Content, error) {
	var existing models.Content
	err := s.db.WithContext(ctx).Select("id", "updated_at").First(&existing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound(apperrors.ErrCodeContentNotFound, msgContentNotFound)
	}
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load content", err)
	}

	updates := map[string]interface{}{"updated_at": s.nextUpdatedAt(existing.UpdatedAt)}
	if fileURL != nil {
		updates["file_url"] = *fileURL
	}
	if thumbnailURL != nil {
		updates["thumbnail_url"] = *thumbnailURL
	}
	res := s.db.WithContext(ctx).Model(&models.Content{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to store media", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound(apperrors.ErrCodeContentNotFound, msgContentNotFound)
	}
	return s.GetContent(ctx, id)
}

// nextUpdatedAt keeps updatedAt strictly increasing when the clock has not
// moved past the stored value.
func (s *ContentService) nextUpdatedAt(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

type contentTotals struct {
	TotalViews int64
	TotalLikes int64
}

// GetContentStats aggregates counts and breakdowns. Results are cached;
// view and like totals may lag by up to the cache lifetime.
func (s *ContentService) GetContentStats(ctx context.Context) (*dto.ContentStats, error) {
	var cached dto.ContentStats
	hit, err := s.cache.Get(ctx, constants.ContentStatsKey, &cached)
	if err != nil {
		s.logger.Warn("content stats cache read: %v", err)
	}
	if hit {
		return &cached, nil
	}

	db := s.db.WithContext(ctx)
	stats := dto.ContentStats{
		ContentByType:    make([]dto.TypeCount, 0),
		ContentByGrade:   make([]dto.GradeCount, 0),
		ContentBySubject: make([]dto.SubjectCount, 0),
	}
	dbErr := func(err error) error {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to compute content stats", err)
	}

	if err := db.Model(&models.Content{}).Count(&stats.TotalContent).Error; err != nil {
		return nil, dbErr(err)
	}
	if err := db.Model(&models.Content{}).Where("is_published = ?", true).Count(&stats.PublishedContent).Error; err != nil {
		return nil, dbErr(err)
	}
	stats.DraftContent = stats.TotalContent - stats.PublishedContent

	var totals contentTotals
	if err := db.Model(&models.Content{}).
		Select("COALESCE(SUM(view_count), 0) AS total_views, COALESCE(SUM(like_count), 0) AS total_likes").
		Scan(&totals).Error; err != nil {
		return nil, dbErr(err)
	}
	stats.TotalViews = totals.TotalViews
	stats.TotalLikes = totals.TotalLikes

	if err := db.Model(&models.Content{}).
		Select("content_type, COUNT(*) AS count").
		Group("content_type").Order("content_type").
		Scan(&stats.ContentByType).Error; err != nil {
		return nil, dbErr(err)
	}
	if err := db.Model(&models.Content{}).
		Select("grade_level, COUNT(*) AS count").
		Group("grade_level").Order("grade_level").
		Scan(&stats.ContentByGrade).Error; err != nil {
		return nil, dbErr(err)
	}
	if err := db.Table("subjects").
		Select("subjects.id AS subject_id, subjects.name AS subject_name, COUNT(contents.id) AS count").
		Joins("LEFT JOIN contents ON contents.subject_id = subjects.id").
		Group("subjects.id, subjects.name").Order("subjects.id").
		Scan(&stats.ContentBySubject).Error; err != nil {
		return nil, dbErr(err)
	}

	if err := s.cache.Set(ctx, constants.ContentStatsKey, stats, constants.ContentStatsTTL); err != nil {
		s.logger.Warn("content stats cache write: %v", err)
	}
	return &stats, nil
}

func (s *ContentService) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, constants.ContentStatsKey); err != nil {
		s.logger.Warn("content stats cache invalidation: %v", err)
	}
}

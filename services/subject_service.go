package services

import (
	"context"
	"errors"
	"time"

	"eduplatform/constants"
	"eduplatform/dto"
	apperrors "eduplatform/errors"
	"eduplatform/models"
	"eduplatform/services/logger"
	"eduplatform/validator"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	msgSubjectNotFound = "Subject not found"
	msgSubjectInUse    = "Cannot delete subject with associated content"
)

type SubjectServiceInterface interface {
	CreateSubject(ctx context.Context, in dto.CreateSubjectRequest) (*models.Subject, error)
	UpdateSubject(ctx context.Context, id uint, in dto.UpdateSubjectRequest) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id uint) error
	GetSubject(ctx context.Context, id uint) (*models.Subject, error)
	GetSubjects(ctx context.Context, f dto.SubjectFilters) ([]models.Subject, error)
	SearchSubjects(ctx context.Context, query string) ([]models.Subject, error)
}

type SubjectService struct {
	db     *gorm.DB
	logger logger.Logger
	cache  *Cache
	now    func() time.Time
}

type SubjectServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Cache  *Cache
	Now    func() time.Time
}

func NewSubjectService(opts SubjectServiceOptions) *SubjectService {
	s := &SubjectService{db: opts.DB, logger: opts.Logger, cache: opts.Cache, now: opts.Now}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	if s.now == nil {
		s.now = utcNow
	}
	return s
}

func (s *SubjectService) CreateSubject(ctx context.Context, in dto.CreateSubjectRequest) (*models.Subject, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	subject := models.Subject{
		Name:        in.Name,
		NameAr:      in.NameAr,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
		GradeLevels: pq.Int64Array(in.GradeLevels),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if subject.GradeLevels == nil {
		subject.GradeLevels = pq.Int64Array{}
	}
	if in.IsActive != nil {
		subject.IsActive = *in.IsActive
	}

	if err := s.db.WithContext(ctx).Create(&subject).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to create subject", err)
	}
	s.invalidateStats(ctx)
	return &subject, nil
}

func (s *SubjectService) UpdateSubject(ctx context.Context, id uint, in dto.UpdateSubjectRequest) (*models.Subject, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	subject, err := s.GetSubject(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": s.now()}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.NameAr != nil {
		updates["name_ar"] = *in.NameAr
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Icon != nil {
		updates["icon"] = *in.Icon
	}
	if in.Color != nil {
		updates["color"] = *in.Color
	}
	if in.GradeLevels != nil {
		updates["grade_levels"] = pq.Int64Array(*in.GradeLevels)
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}

	if err := s.db.WithContext(ctx).Model(subject).Updates(updates).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to update subject", err)
	}
	s.invalidateStats(ctx)
	return s.GetSubject(ctx, id)
}

// DeleteSubject removes a subject that no content references.
func (s *SubjectService) DeleteSubject(ctx context.Context, id uint) error {
	if _, err := s.GetSubject(ctx, id); err != nil {
		return err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Content{}).Where("subject_id = ?", id).Count(&count).Error; err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to count subject content", err)
	}
	if count > 0 {
		return apperrors.Conflict(apperrors.ErrCodeSubjectInUse, msgSubjectInUse)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Subject{}, id).Error; err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to delete subject", err)
	}
	s.invalidateStats(ctx)
	s.logger.Info("deleted subject %d", id)
	return nil
}

func (s *SubjectService) GetSubject(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject
	err := s.db.WithContext(ctx).First(&subject, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound(apperrors.ErrCodeSubjectNotFound, msgSubjectNotFound)
	}
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to load subject", err)
	}
	return &subject, nil
}

func (s *SubjectService) GetSubjects(ctx context.Context, f dto.SubjectFilters) ([]models.Subject, error) {
	q := s.db.WithContext(ctx).Model(&models.Subject{})
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.GradeLevel != nil {
		q = arrayContainsClause(q, "grade_levels", *f.GradeLevel)
	}

	subjects := make([]models.Subject, 0)
	if err := q.Order("name ASC").Order("id ASC").Find(&subjects).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Failed to list subjects", err)
	}
	return subjects, nil
}

// SearchSubjects ranks active subjects by fuzzy name match.
func (s *SubjectService) SearchSubjects(ctx context.Context, query string) ([]models.Subject, error) {
	if normalizeInput(query) == "" {
		return nil, apperrors.Validation("q is required", nil)
	}
	subjects, err := s.GetSubjects(ctx, dto.SubjectFilters{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	return RankSubjects(query, subjects, subjectSearchLimit), nil
}

func (s *SubjectService) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, constants.ContentStatsKey); err != nil {
		s.logger.Warn("content stats cache invalidation: %v", err)
	}
}

package dto

import "eduplatform/models"

type CreateContentRequest struct {
	Title        string             `json:"title" binding:"required,max=255" validate:"required,max=255"`
	Description  *string            `json:"description"`
	ContentType  models.ContentType `json:"contentType" binding:"required" validate:"required,oneof=lesson video audio document quiz exercise game"`
	SubjectID    uint               `json:"subjectId" binding:"required" validate:"required"`
	GradeLevel   int                `json:"gradeLevel" binding:"required" validate:"required,min=1,max=12"`
	Difficulty   models.Difficulty  `json:"difficulty" binding:"required" validate:"required,oneof=easy medium hard"`
	Tags         []string           `json:"tags" validate:"omitempty,dive,required,max=50"`
	FileURL      *string            `json:"fileUrl" validate:"omitempty,url"`
	ThumbnailURL *string            `json:"thumbnailUrl" validate:"omitempty,url"`
	Duration     *int               `json:"duration" validate:"omitempty,min=0"`
	IsPublished  bool               `json:"isPublished"`
}

// UpdateContentRequest is a partial update. Tags, when present, replace the
// stored set.
type UpdateContentRequest struct {
	Title        *string             `json:"title" validate:"omitempty,min=1,max=255"`
	Description  *string             `json:"description"`
	ContentType  *models.ContentType `json:"contentType" validate:"omitempty,oneof=lesson video audio document quiz exercise game"`
	SubjectID    *uint               `json:"subjectId" validate:"omitempty,min=1"`
	GradeLevel   *int                `json:"gradeLevel" validate:"omitempty,min=1,max=12"`
	Difficulty   *models.Difficulty  `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Tags         *[]string           `json:"tags" validate:"omitempty,dive,required,max=50"`
	FileURL      *string             `json:"fileUrl" validate:"omitempty,url"`
	ThumbnailURL *string             `json:"thumbnailUrl" validate:"omitempty,url"`
	Duration     *int                `json:"duration" validate:"omitempty,min=0"`
	IsPublished  *bool               `json:"isPublished"`
}

type ContentFilters struct {
	SubjectID   *uint
	GradeLevel  *int
	ContentType *models.ContentType
	Difficulty  *models.Difficulty
	IsPublished *bool
	Tags        []string
	Search      string
	SortBy      string
	SortOrder   string
	Page        int
	Limit       int
}

type ContentList struct {
	Content []models.Content `json:"content"`
	PageMeta
}

type TypeCount struct {
	ContentType models.ContentType `json:"contentType"`
	Count       int64              `json:"count"`
}

type GradeCount struct {
	GradeLevel int   `json:"gradeLevel"`
	Count      int64 `json:"count"`
}

type SubjectCount struct {
	SubjectID   uint   `json:"subjectId"`
	SubjectName string `json:"subjectName"`
	Count       int64  `json:"count"`
}

type ContentStats struct {
	TotalContent     int64          `json:"totalContent"`
	PublishedContent int64          `json:"publishedContent"`
	DraftContent     int64          `json:"draftContent"`
	TotalViews       int64          `json:"totalViews"`
	TotalLikes       int64          `json:"totalLikes"`
	ContentByType    []TypeCount    `json:"contentByType"`
	ContentByGrade   []GradeCount   `json:"contentByGrade"`
	ContentBySubject []SubjectCount `json:"contentBySubject"`
}

type MediaUploadResponse struct {
	FileURL      *string `json:"fileUrl,omitempty"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
}

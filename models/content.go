package models

import (
	"time"

	"github.com/lib/pq"
)

type ContentType string

const (
	ContentLesson   ContentType = "lesson"
	ContentVideo    ContentType = "video"
	ContentAudio    ContentType = "audio"
	ContentDocument ContentType = "document"
	ContentQuiz     ContentType = "quiz"
	ContentExercise ContentType = "exercise"
	ContentGame     ContentType = "game"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Content is a piece of educational material. CreatedBy never changes after
// insert; ViewCount and LikeCount only grow.
type Content struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UUID         string         `gorm:"column:uuid;type:varchar(36);uniqueIndex;not null" json:"uuid"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  *string        `gorm:"type:text" json:"description,omitempty"`
	ContentType  ContentType    `gorm:"type:varchar(20);not null;index" json:"contentType"`
	SubjectID    uint           `gorm:"not null;index" json:"subjectId"`
	Subject      *Subject       `gorm:"foreignKey:SubjectID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"subject,omitempty"`
	GradeLevel   int            `gorm:"not null;index" json:"gradeLevel"`
	Difficulty   Difficulty     `gorm:"type:varchar(10);not null" json:"difficulty"`
	Tags         pq.StringArray `gorm:"type:text[]" json:"tags"`
	FileURL      *string        `gorm:"type:varchar(500)" json:"fileUrl,omitempty"`
	ThumbnailURL *string        `gorm:"type:varchar(500)" json:"thumbnailUrl,omitempty"`
	Duration     *int           `json:"duration,omitempty"`
	ViewCount    int64          `gorm:"not null" json:"viewCount"`
	LikeCount    int64          `gorm:"not null" json:"likeCount"`
	IsPublished  bool           `gorm:"not null;index" json:"isPublished"`
	PublishedAt  *time.Time     `json:"publishedAt,omitempty"`
	CreatedBy    uint           `gorm:"not null;index" json:"createdBy"`
	Creator      *User          `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"creator,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

// AllModels is the migration set, ordered so referenced tables come first.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Subject{},
		&Content{},
		&Notification{},
		&NotificationPreference{},
	}
}

package models

import (
	"time"

	"github.com/lib/pq"
)

type Subject struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"type:varchar(100);not null" json:"name"`
	NameAr      string        `gorm:"type:varchar(100);not null" json:"nameAr"`
	Description *string       `gorm:"type:text" json:"description,omitempty"`
	Icon        *string       `gorm:"type:varchar(100)" json:"icon,omitempty"`
	Color       *string       `gorm:"type:varchar(20)" json:"color,omitempty"`
	GradeLevels pq.Int64Array `gorm:"type:integer[]" json:"gradeLevels"`
	IsActive    bool          `gorm:"not null" json:"isActive"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

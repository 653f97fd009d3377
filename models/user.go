package models

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name         string    `gorm:"type:varchar(150);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email,omitempty"`
	PasswordHash string    `gorm:"type:varchar(255)" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	Avatar       *string   `gorm:"type:varchar(500)" json:"avatar,omitempty"`
	GoogleID     *string   `gorm:"type:varchar(100);uniqueIndex" json:"-"`
}

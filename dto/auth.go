package dto

import "eduplatform/models"

type RegisterInput struct {
	Name     string      `json:"name" binding:"required" validate:"required,max=150"`
	Email    string      `json:"email" binding:"required,email" validate:"required,email"`
	Password string      `json:"password" binding:"required,min=8" validate:"required,min=8"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=student teacher"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

type UserSummary struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type AuthResponse struct {
	AccessToken string      `json:"accessToken"`
	ExpiresIn   int64       `json:"expiresIn"`
	User        UserSummary `json:"user"`
}

func NewUserSummary(u models.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

package dto

type CreateSubjectRequest struct {
	Name        string  `json:"name" binding:"required" validate:"required,max=100"`
	NameAr      string  `json:"nameAr" binding:"required" validate:"required,max=100"`
	Description *string `json:"description"`
	Icon        *string `json:"icon" validate:"omitempty,max=100"`
	Color       *string `json:"color" validate:"omitempty,max=20"`
	GradeLevels []int64 `json:"gradeLevels" validate:"omitempty,dive,min=1,max=12"`
	IsActive    *bool   `json:"isActive"`
}

type UpdateSubjectRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	NameAr      *string  `json:"nameAr" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description"`
	Icon        *string  `json:"icon" validate:"omitempty,max=100"`
	Color       *string  `json:"color" validate:"omitempty,max=20"`
	GradeLevels *[]int64 `json:"gradeLevels" validate:"omitempty,dive,min=1,max=12"`
	IsActive    *bool    `json:"isActive"`
}

type SubjectFilters struct {
	ActiveOnly bool
	GradeLevel *int
}

package models

import "gorm.io/gorm"

// ProgressUpdate is a short learning-progress note a user posts, optionally
// composed from one of the client's preset templates.
type ProgressUpdate struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"index"`
	Content      string `json:"content" gorm:"type:text"`
	TemplateType string `json:"template_type,omitempty" gorm:"size:50"`
}

// CreateProgressUpdateRequest defines the request body for posting a progress update
type CreateProgressUpdateRequest struct {
	Content      string `json:"content" validate:"required,min=1,max=2000"`
	TemplateType string `json:"template_type,omitempty" validate:"omitempty,max=50"`
}

// UpdateProgressUpdateRequest defines the request body for editing a progress update
type UpdateProgressUpdateRequest struct {
	Content      string `json:"content" validate:"required,min=1,max=2000"`
	TemplateType string `json:"template_type,omitempty" validate:"omitempty,max=50"`
}

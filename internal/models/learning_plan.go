package models

import "gorm.io/gorm"

// LearningPlan is a user's structured plan for picking up a skill: what to
// cover, with which resources, on what timeline.
type LearningPlan struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index"`
	Title     string `json:"title"`
	Topics    string `json:"topics,omitempty" gorm:"type:text"`
	Resources string `json:"resources,omitempty" gorm:"type:text"`
	Timeline  string `json:"timeline,omitempty"`
}

// CreateLearningPlanRequest defines the request body for creating a learning plan
type CreateLearningPlanRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=120"`
	Topics    string `json:"topics,omitempty" validate:"omitempty,max=2000"`
	Resources string `json:"resources,omitempty" validate:"omitempty,max=2000"`
	Timeline  string `json:"timeline,omitempty" validate:"omitempty,max=200"`
}

// UpdateLearningPlanRequest defines the request body for updating a learning plan
type UpdateLearningPlanRequest struct {
	Title     string `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Topics    string `json:"topics,omitempty" validate:"omitempty,max=2000"`
	Resources string `json:"resources,omitempty" validate:"omitempty,max=2000"`
	Timeline  string `json:"timeline,omitempty" validate:"omitempty,max=200"`
}

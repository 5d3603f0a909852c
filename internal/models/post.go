package models

import (
	"time"
)

// Post is a skill-sharing post stored in PostgreSQL. Media attachments live
// in MongoDB and are referenced by the numeric post ID.
type Post struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index"`
	Title         string    `json:"title"`
	Content       string    `json:"content" gorm:"type:text"`
	SkillCategory string    `json:"skill_category" gorm:"size:50;index"`
	SkillLevel    string    `json:"skill_level,omitempty" gorm:"size:20"`
	IsEdited      bool      `json:"is_edited" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Denormalized interaction counters. Re-derived from relation cardinality
	// by the counter maintainer; never written directly by handlers.
	LikeCount     int64 `json:"like_count" gorm:"default:0"`
	FavoriteCount int64 `json:"favorite_count" gorm:"default:0"`
	ShareCount    int64 `json:"share_count" gorm:"default:0"`
	CommentCount  int64 `json:"comment_count" gorm:"default:0"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title         string `json:"title" validate:"required,min=1,max=120"`
	Content       string `json:"content" validate:"required,min=1,max=5000"`
	SkillCategory string `json:"skill_category" validate:"required,min=1,max=50"`
	SkillLevel    string `json:"skill_level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title         string `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Content       string `json:"content,omitempty" validate:"omitempty,min=1,max=5000"`
	SkillCategory string `json:"skill_category,omitempty" validate:"omitempty,min=1,max=50"`
	SkillLevel    string `json:"skill_level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

package models

import "gorm.io/gorm"

// Comment represents a comment on a post. The owner (UserID) is fixed at
// creation and never reassigned.
type Comment struct {
	gorm.Model
	PostID  uint   `json:"post_id" gorm:"index"`
	UserID  uint   `json:"user_id" gorm:"index"`
	Content string `json:"content"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

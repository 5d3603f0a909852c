package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password    string `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Bio         string `json:"bio,omitempty"`
	// Nullable so local signups without a Firebase identity don't collide on
	// the unique index: Postgres allows many NULLs but only one ''.
	FirebaseUID *string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`

	// Denormalized follow counters. Re-derived from relation cardinality by
	// the counter maintainer; never written directly by handlers.
	FollowerCount  int64 `json:"follower_count" gorm:"default:0"`
	FollowingCount int64 `json:"following_count" gorm:"default:0"`
}

// UserCompact is the trimmed user shape embedded in notifications and lists.
type UserCompact struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ToCompact returns the compact representation of the user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name}
}

type CreateLocalUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

type UpdateUserRequest struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Bio   string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

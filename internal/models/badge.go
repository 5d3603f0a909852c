package models

import "time"

// Badge is a named achievement awarded to a user. The composite unique index
// means a user holds each badge name at most once, so repeated award
// attempts are harmless.
type Badge struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_user_badge"`
	BadgeName string    `json:"badge_name" gorm:"size:100;uniqueIndex:idx_user_badge"`
	AwardedAt time.Time `json:"awarded_at"`
}

package models

import "time"

// NotificationKind tags what state transition produced a notification.
type NotificationKind string

const (
	NotifyLike     NotificationKind = "LIKE"
	NotifyFavorite NotificationKind = "FAVORITE"
	NotifyComment  NotificationKind = "COMMENT"
	NotifyFollow   NotificationKind = "FOLLOW"
)

// Notification records a fan-out fact for a recipient. Created only on
// relation-creation transitions and comment creation, never on removal,
// and never with RecipientID == ActorID.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Kind        NotificationKind `json:"kind" gorm:"size:20;index"`
	ActorID     uint             `json:"actor_id" gorm:"index"`
	RecipientID uint             `json:"recipient_id" gorm:"index"`
	TargetID    uint             `json:"target_id"` // post ID for LIKE/FAVORITE/COMMENT, user ID for FOLLOW
	Message     string           `json:"message"`
	IsRead      bool             `json:"is_read" gorm:"default:false;index"` // transitions false -> true only
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}

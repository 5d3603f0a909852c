package models

import (
	"time"

	"github.com/tanvir-rahman/skillshare-backend/internal/apperrors"
)

// RelationKind tags an interaction fact. LIKE, FAVORITE and SHARE target
// posts; FOLLOW targets users.
type RelationKind string

const (
	KindLike     RelationKind = "LIKE"
	KindFavorite RelationKind = "FAVORITE"
	KindShare    RelationKind = "SHARE"
	KindFollow   RelationKind = "FOLLOW"
)

// ParseRelationKind maps a URL segment or payload value onto a RelationKind.
func ParseRelationKind(s string) (RelationKind, error) {
	switch s {
	case "like", "likes", string(KindLike):
		return KindLike, nil
	case "favorite", "favorites", string(KindFavorite):
		return KindFavorite, nil
	case "share", "shares", string(KindShare):
		return KindShare, nil
	case "follow", "followers", string(KindFollow):
		return KindFollow, nil
	}
	return "", apperrors.Validationf("unknown relation kind %q", s)
}

// TargetsPost reports whether the kind acts on a post rather than a user.
func (k RelationKind) TargetsPost() bool { return k != KindFollow }

// Relation is a single interaction fact between an actor and a target.
// The composite unique index makes concurrent duplicate creates collapse
// to one row at the store level.
type Relation struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	ActorID   uint         `json:"actor_id" gorm:"index;uniqueIndex:idx_actor_target_kind"`
	TargetID  uint         `json:"target_id" gorm:"index;uniqueIndex:idx_actor_target_kind"`
	Kind      RelationKind `json:"kind" gorm:"size:20;index;uniqueIndex:idx_actor_target_kind"`
	CreatedAt time.Time    `json:"created_at"`
}

// RelationSummary is the page item returned when listing a target's relations.
type RelationSummary struct {
	ActorID   uint      `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	CreatedAt time.Time `json:"created_at"`
}

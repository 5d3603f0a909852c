package repositories

import (
	"context"
	"fmt"

	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"gorm.io/gorm"
)

// CounterRepository keeps the denormalized counter columns consistent with
// relation cardinality. Every method re-derives the stored value from the
// relations table, so the persisted field can never drift from the truth
// and repeated calls for the same transition are harmless. Counts can never
// go negative because the value is a COUNT(*), not an adjustment.
type CounterRepository interface {
	Reconcile(ctx context.Context, actorID, targetID uint, kind models.RelationKind) (int64, error)
}

// PostgresCounterRepository implements CounterRepository for PostgreSQL
type PostgresCounterRepository struct {
	db *gorm.DB
}

// NewPostgresCounterRepository creates a new PostgresCounterRepository
func NewPostgresCounterRepository(db *gorm.DB) *PostgresCounterRepository {
	return &PostgresCounterRepository{db: db}
}

// postCounterColumn maps a relation kind onto the post counter column it feeds.
func postCounterColumn(kind models.RelationKind) (string, error) {
	switch kind {
	case models.KindLike:
		return "like_count", nil
	case models.KindFavorite:
		return "favorite_count", nil
	case models.KindShare:
		return "share_count", nil
	}
	return "", fmt.Errorf("no post counter column for kind %s", kind)
}

// refreshTx re-derives the counters touched by a toggle inside the caller's
// transaction. FOLLOW updates both the target's follower count and the
// actor's following count.
func (r *PostgresCounterRepository) refreshTx(tx *gorm.DB, actorID, targetID uint, kind models.RelationKind) error {
	if kind == models.KindFollow {
		followerCount := tx.Model(&models.Relation{}).Select("count(*)").
			Where("target_id = ? AND kind = ?", targetID, models.KindFollow)
		if err := tx.Model(&models.User{}).Where("id = ?", targetID).
			Update("follower_count", followerCount).Error; err != nil {
			return err
		}
		followingCount := tx.Model(&models.Relation{}).Select("count(*)").
			Where("actor_id = ? AND kind = ?", actorID, models.KindFollow)
		return tx.Model(&models.User{}).Where("id = ?", actorID).
			Update("following_count", followingCount).Error
	}

	column, err := postCounterColumn(kind)
	if err != nil {
		return err
	}
	cardinality := tx.Model(&models.Relation{}).Select("count(*)").
		Where("target_id = ? AND kind = ?", targetID, kind)
	return tx.Model(&models.Post{}).Where("id = ?", targetID).
		Update(column, cardinality).Error
}

// Reconcile recomputes the counter from relation cardinality, writes it back
// and returns the derived value.
func (r *PostgresCounterRepository) Reconcile(ctx context.Context, actorID, targetID uint, kind models.RelationKind) (int64, error) {
	db := r.db.WithContext(ctx)
	if err := r.refreshTx(db, actorID, targetID, kind); err != nil {
		return 0, err
	}
	var count int64
	query := db.Model(&models.Relation{})
	if kind == models.KindFollow {
		query = query.Where("target_id = ? AND kind = ?", targetID, models.KindFollow)
	} else {
		query = query.Where("target_id = ? AND kind = ?", targetID, kind)
	}
	err := query.Count(&count).Error
	return count, err
}


package repositories

import (
	"context"

	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RelationRepository defines the interface for interaction fact operations.
// Toggle is the only mutation: it flips the relation and refreshes the
// target's derived counter in one transaction.
type RelationRepository interface {
	Toggle(ctx context.Context, actorID, targetID uint, kind models.RelationKind) (created bool, err error)
	Exists(ctx context.Context, actorID, targetID uint, kind models.RelationKind) (bool, error)
	CountForTarget(ctx context.Context, targetID uint, kind models.RelationKind) (int64, error)
	CountFollowing(ctx context.Context, actorID uint) (int64, error)
	ListForTarget(ctx context.Context, targetID uint, kind models.RelationKind, page, limit int) ([]models.RelationSummary, int64, error)
	ListFollowing(ctx context.Context, actorID uint, page, limit int) ([]models.RelationSummary, int64, error)
}

// PostgresRelationRepository implements RelationRepository for PostgreSQL
type PostgresRelationRepository struct {
	db       *gorm.DB
	counters *PostgresCounterRepository
}

// NewPostgresRelationRepository creates a new PostgresRelationRepository
func NewPostgresRelationRepository(db *gorm.DB, counters *PostgresCounterRepository) *PostgresRelationRepository {
	return &PostgresRelationRepository{db: db, counters: counters}
}

// Toggle creates the relation if absent or removes it if present, and
// re-derives the affected counters inside the same transaction so a timeout
// or cancellation leaves either no trace or the full transition.
func (r *PostgresRelationRepository) Toggle(ctx context.Context, actorID, targetID uint, kind models.RelationKind) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("actor_id = ? AND target_id = ? AND kind = ?", actorID, targetID, kind).
			Delete(&models.Relation{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			rel := &models.Relation{ActorID: actorID, TargetID: targetID, Kind: kind}
			ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rel)
			if ins.Error != nil {
				return ins.Error
			}
			// ins.RowsAffected == 0 means a concurrent create won the race on
			// the (actor_id, target_id, kind) unique index. Converge on the
			// winner's outcome instead of surfacing an error.
			created = true
		}
		return r.counters.refreshTx(tx, actorID, targetID, kind)
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// Exists checks whether the relation fact is currently present.
func (r *PostgresRelationRepository) Exists(ctx context.Context, actorID, targetID uint, kind models.RelationKind) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Relation{}).
		Where("actor_id = ? AND target_id = ? AND kind = ?", actorID, targetID, kind).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountForTarget returns the true cardinality of the target's relation set.
func (r *PostgresRelationRepository) CountForTarget(ctx context.Context, targetID uint, kind models.RelationKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Relation{}).
		Where("target_id = ? AND kind = ?", targetID, kind).
		Count(&count).Error
	return count, err
}

// CountFollowing returns how many users the actor follows.
func (r *PostgresRelationRepository) CountFollowing(ctx context.Context, actorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Relation{}).
		Where("actor_id = ? AND kind = ?", actorID, models.KindFollow).
		Count(&count).Error
	return count, err
}

// ListForTarget returns a page of actors holding the relation on the target,
// newest first, with actor names resolved.
func (r *PostgresRelationRepository) ListForTarget(ctx context.Context, targetID uint, kind models.RelationKind, page, limit int) ([]models.RelationSummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Relation{}).
		Where("target_id = ? AND kind = ?", targetID, kind).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var summaries []models.RelationSummary
	err := r.db.WithContext(ctx).Model(&models.Relation{}).
		Select("relations.actor_id, users.name AS actor_name, relations.created_at").
		Joins("JOIN users ON users.id = relations.actor_id").
		Where("relations.target_id = ? AND relations.kind = ?", targetID, kind).
		Order("relations.created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Scan(&summaries).Error
	return summaries, total, err
}

// ListFollowing returns a page of users the actor follows, newest first.
// ActorID in the summaries refers to the followed user.
func (r *PostgresRelationRepository) ListFollowing(ctx context.Context, actorID uint, page, limit int) ([]models.RelationSummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Relation{}).
		Where("actor_id = ? AND kind = ?", actorID, models.KindFollow).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var summaries []models.RelationSummary
	err := r.db.WithContext(ctx).Model(&models.Relation{}).
		Select("relations.target_id AS actor_id, users.name AS actor_name, relations.created_at").
		Joins("JOIN users ON users.id = relations.target_id").
		Where("relations.actor_id = ? AND relations.kind = ?", actorID, models.KindFollow).
		Order("relations.created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Scan(&summaries).Error
	return summaries, total, err
}

package repositories

import (
	"context"
	"time"

	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BadgeRepository defines the interface for badge data operations
type BadgeRepository interface {
	Award(ctx context.Context, userID uint, badgeName string) (awarded bool, err error)
	GetByUserID(ctx context.Context, userID uint) ([]models.Badge, error)
}

// PostgresBadgeRepository implements BadgeRepository for PostgreSQL
type PostgresBadgeRepository struct {
	db *gorm.DB
}

// NewPostgresBadgeRepository creates a new PostgresBadgeRepository
func NewPostgresBadgeRepository(db *gorm.DB) *PostgresBadgeRepository {
	return &PostgresBadgeRepository{db: db}
}

// Award grants the badge to the user. Returns false when the user already
// holds it; the (user_id, badge_name) unique index makes the insert a no-op.
func (r *PostgresBadgeRepository) Award(ctx context.Context, userID uint, badgeName string) (bool, error) {
	badge := &models.Badge{UserID: userID, BadgeName: badgeName, AwardedAt: time.Now()}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(badge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetByUserID retrieves a user's badges, most recent first.
func (r *PostgresBadgeRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Badge, error) {
	var badges []models.Badge
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Find(&badges).Error
	return badges, err
}

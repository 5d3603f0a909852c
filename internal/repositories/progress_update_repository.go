package repositories

import (
	"context"

	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"gorm.io/gorm"
)

// ProgressUpdateRepository defines the interface for progress update data operations
type ProgressUpdateRepository interface {
	Create(ctx context.Context, update *models.ProgressUpdate) error
	GetByID(ctx context.Context, id uint) (*models.ProgressUpdate, error)
	GetAll(ctx context.Context, page, limit int) ([]models.ProgressUpdate, int64, error)
	GetByUserID(ctx context.Context, userID uint, page, limit int) ([]models.ProgressUpdate, int64, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
	Update(ctx context.Context, update *models.ProgressUpdate) error
	Delete(ctx context.Context, id uint) error
}

// PostgresProgressUpdateRepository implements ProgressUpdateRepository for PostgreSQL
type PostgresProgressUpdateRepository struct {
	db *gorm.DB
}

// NewPostgresProgressUpdateRepository creates a new PostgresProgressUpdateRepository
func NewPostgresProgressUpdateRepository(db *gorm.DB) *PostgresProgressUpdateRepository {
	return &PostgresProgressUpdateRepository{db: db}
}

// Create stores a new progress update in PostgreSQL
func (r *PostgresProgressUpdateRepository) Create(ctx context.Context, update *models.ProgressUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

// GetByID retrieves a progress update by ID from PostgreSQL
func (r *PostgresProgressUpdateRepository) GetByID(ctx context.Context, id uint) (*models.ProgressUpdate, error) {
	var update models.ProgressUpdate
	if err := r.db.WithContext(ctx).First(&update, id).Error; err != nil {
		return nil, err
	}
	return &update, nil
}

// GetAll retrieves a page of all progress updates, newest first.
func (r *PostgresProgressUpdateRepository) GetAll(ctx context.Context, page, limit int) ([]models.ProgressUpdate, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ProgressUpdate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var updates []models.ProgressUpdate
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&updates).Error
	return updates, total, err
}

// GetByUserID retrieves a page of one user's progress updates, newest first.
func (r *PostgresProgressUpdateRepository) GetByUserID(ctx context.Context, userID uint, page, limit int) ([]models.ProgressUpdate, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ProgressUpdate{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var updates []models.ProgressUpdate
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&updates).Error
	return updates, total, err
}

// CountByUserID returns how many progress updates the user has posted.
func (r *PostgresProgressUpdateRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProgressUpdate{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Update updates an existing progress update in PostgreSQL
func (r *PostgresProgressUpdateRepository) Update(ctx context.Context, update *models.ProgressUpdate) error {
	return r.db.WithContext(ctx).Save(update).Error
}

// Delete deletes a progress update by ID from PostgreSQL
func (r *PostgresProgressUpdateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ProgressUpdate{}, id).Error
}

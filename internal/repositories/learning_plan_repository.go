package repositories

import (
	"context"

	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"gorm.io/gorm"
)

// LearningPlanRepository defines the interface for learning plan data operations
type LearningPlanRepository interface {
	CreatePlan(ctx context.Context, plan *models.LearningPlan) error
	GetPlanByID(ctx context.Context, id uint) (*models.LearningPlan, error)
	GetAllPlans(ctx context.Context, page, limit int) ([]models.LearningPlan, int64, error)
	GetPlansByUserID(ctx context.Context, userID uint, page, limit int) ([]models.LearningPlan, int64, error)
	UpdatePlan(ctx context.Context, plan *models.LearningPlan) error
	DeletePlan(ctx context.Context, id uint) error
}

// PostgresLearningPlanRepository implements LearningPlanRepository for PostgreSQL
type PostgresLearningPlanRepository struct {
	db *gorm.DB
}

// NewPostgresLearningPlanRepository creates a new PostgresLearningPlanRepository
func NewPostgresLearningPlanRepository(db *gorm.DB) *PostgresLearningPlanRepository {
	return &PostgresLearningPlanRepository{db: db}
}

// CreatePlan creates a new learning plan in PostgreSQL
func (r *PostgresLearningPlanRepository) CreatePlan(ctx context.Context, plan *models.LearningPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// GetPlanByID retrieves a learning plan by ID from PostgreSQL
func (r *PostgresLearningPlanRepository) GetPlanByID(ctx context.Context, id uint) (*models.LearningPlan, error) {
	var plan models.LearningPlan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetAllPlans retrieves a page of all learning plans, newest first.
func (r *PostgresLearningPlanRepository) GetAllPlans(ctx context.Context, page, limit int) ([]models.LearningPlan, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.LearningPlan{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var plans []models.LearningPlan
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&plans).Error
	return plans, total, err
}

// GetPlansByUserID retrieves a page of one user's learning plans, newest first.
func (r *PostgresLearningPlanRepository) GetPlansByUserID(ctx context.Context, userID uint, page, limit int) ([]models.LearningPlan, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.LearningPlan{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var plans []models.LearningPlan
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&plans).Error
	return plans, total, err
}

// UpdatePlan updates an existing learning plan in PostgreSQL
func (r *PostgresLearningPlanRepository) UpdatePlan(ctx context.Context, plan *models.LearningPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// DeletePlan deletes a learning plan by ID from PostgreSQL
func (r *PostgresLearningPlanRepository) DeletePlan(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.LearningPlan{}, id).Error
}

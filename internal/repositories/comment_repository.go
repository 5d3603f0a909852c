package repositories

import (
	"context"

	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID uint, page, limit int) ([]models.Comment, int64, error)
	UpdateContent(ctx context.Context, id uint, content string) error
	DeleteComment(ctx context.Context, id uint) error
	DeleteByPostID(ctx context.Context, postID uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// refreshCommentCount re-derives the post's comment counter inside tx.
func refreshCommentCount(tx *gorm.DB, postID uint) error {
	cardinality := tx.Model(&models.Comment{}).Select("count(*)").Where("post_id = ?", postID)
	return tx.Model(&models.Post{}).Where("id = ?", postID).
		Update("comment_count", cardinality).Error
}

// CreateComment inserts the comment and refreshes the post's comment counter
// in one transaction.
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return refreshCommentCount(tx, comment.PostID)
	})
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves a page of comments for a post, newest first.
func (r *PostgresCommentRepository) GetCommentsByPostID(ctx context.Context, postID uint, page, limit int) ([]models.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ?", postID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&comments).Error
	return comments, total, err
}

// UpdateContent replaces the comment text. Ownership never changes, so only
// the content column is written.
func (r *PostgresCommentRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	return r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).Update("content", content).Error
}

// DeleteComment removes the comment and refreshes the post's comment counter
// in one transaction.
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Comment{}, id).Error; err != nil {
			return err
		}
		return refreshCommentCount(tx, comment.PostID)
	})
}

// DeleteByPostID removes all comments of a post. Used on post deletion, where
// the post row goes away in the same transaction scope.
func (r *PostgresCommentRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).
		Delete(&models.Comment{}).Error
}

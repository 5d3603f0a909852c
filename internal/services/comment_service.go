package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tanvir-rahman/skillshare-backend/internal/apperrors"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"github.com/tanvir-rahman/skillshare-backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxCommentLength = 1000

// CommentService owns the comment lifecycle: creation with fan-out to the
// post owner, and update/delete gated by the ownership guard.
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
	users    repositories.UserRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		comments: commentRepo,
		posts:    postRepo,
		users:    userRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// validateContent enforces 1..1000 characters, non-blank.
func validateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", apperrors.Validationf("comment content must not be blank")
	}
	if utf8.RuneCountInString(trimmed) > maxCommentLength {
		return "", apperrors.Validationf("comment content must be at most %d characters", maxCommentLength)
	}
	return trimmed, nil
}

// AddComment creates a comment on a post and notifies the post owner. The
// comment's owner is fixed at creation.
func (s *CommentService) AddComment(ctx context.Context, postID, actorID uint, content string) (*models.Comment, error) {
	trimmed, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("post %d", postID)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	if _, err := s.users.GetUserByID(ctx, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user %d", actorID)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  actorID,
		Content: trimmed,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}

	s.notifier.Notify(ctx, post.UserID, actorID, models.NotifyComment, postID)

	return comment, nil
}

// UpdateComment replaces the comment text. Allowed for the comment owner or
// the owning post's owner.
func (s *CommentService) UpdateComment(ctx context.Context, commentID, actorID uint, content string) (*models.Comment, error) {
	trimmed, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	comment, post, err := s.loadCommentWithPost(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := RequireAnyOwner(actorID, comment.UserID, post.UserID); err != nil {
		return nil, err
	}

	if err := s.comments.UpdateContent(ctx, commentID, trimmed); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	comment.Content = trimmed
	return comment, nil
}

// DeleteComment removes the comment. Allowed for the comment owner or the
// owning post's owner.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, actorID uint) error {
	comment, post, err := s.loadCommentWithPost(ctx, commentID)
	if err != nil {
		return err
	}
	if err := RequireAnyOwner(actorID, comment.UserID, post.UserID); err != nil {
		return err
	}

	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return nil
}

// ListComments returns a bounded page of a post's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint, page, limit int) ([]models.Comment, int64, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFoundf("post %d", postID)
		}
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	comments, total, err := s.comments.GetCommentsByPostID(ctx, postID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return comments, total, nil
}

func (s *CommentService) loadCommentWithPost(ctx context.Context, commentID uint) (*models.Comment, *models.Post, error) {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFoundf("comment %d", commentID)
		}
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	post, err := s.posts.GetPostByID(ctx, comment.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFoundf("post %d", comment.PostID)
		}
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return comment, post, nil
}

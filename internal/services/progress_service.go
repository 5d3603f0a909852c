package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tanvir-rahman/skillshare-backend/internal/apperrors"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"github.com/tanvir-rahman/skillshare-backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// progressMilestones maps the total update count a user reaches onto the
// badge it earns.
var progressMilestones = map[int64]string{
	1:  "First Steps",
	10: "Consistent Learner",
	25: "Skill Builder",
}

// ProgressService owns the progress update lifecycle and the milestone
// badges it feeds. Update/delete are gated by the ownership guard.
type ProgressService struct {
	updates repositories.ProgressUpdateRepository
	badges  repositories.BadgeRepository
	users   repositories.UserRepository
	logger  *zap.Logger
}

// NewProgressService creates a new ProgressService
func NewProgressService(
	updateRepo repositories.ProgressUpdateRepository,
	badgeRepo repositories.BadgeRepository,
	userRepo repositories.UserRepository,
	logger *zap.Logger,
) *ProgressService {
	return &ProgressService{
		updates: updateRepo,
		badges:  badgeRepo,
		users:   userRepo,
		logger:  logger,
	}
}

// CreateUpdate posts a progress update for the user and awards any milestone
// badge the update count reaches. A badge failure never fails the update.
func (s *ProgressService) CreateUpdate(ctx context.Context, userID uint, content, templateType string) (*models.ProgressUpdate, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user %d", userID)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}

	update := &models.ProgressUpdate{
		UserID:       userID,
		Content:      content,
		TemplateType: templateType,
	}
	if err := s.updates.Create(ctx, update); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}

	s.awardMilestoneBadge(ctx, userID)
	return update, nil
}

// awardMilestoneBadge grants the badge for the user's current update count,
// if that count is a milestone. Best effort: badges are derived recognition,
// never worth failing the update over.
func (s *ProgressService) awardMilestoneBadge(ctx context.Context, userID uint) {
	count, err := s.updates.CountByUserID(ctx, userID)
	if err != nil {
		s.logger.Warn("progress count for badge check failed",
			zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	name, ok := progressMilestones[count]
	if !ok {
		return
	}
	awarded, err := s.badges.Award(ctx, userID, name)
	if err != nil {
		s.logger.Warn("badge award failed",
			zap.Uint("user_id", userID), zap.String("badge", name), zap.Error(err))
		return
	}
	if awarded {
		s.logger.Info("badge awarded",
			zap.Uint("user_id", userID), zap.String("badge", name))
	}
}

// UpdateUpdate edits a progress update. Owner only.
func (s *ProgressService) UpdateUpdate(ctx context.Context, id, actorID uint, content, templateType string) (*models.ProgressUpdate, error) {
	update, err := s.loadUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(update.UserID, actorID); err != nil {
		return nil, err
	}

	update.Content = content
	update.TemplateType = templateType
	if err := s.updates.Update(ctx, update); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return update, nil
}

// DeleteUpdate removes a progress update. Owner only.
func (s *ProgressService) DeleteUpdate(ctx context.Context, id, actorID uint) error {
	update, err := s.loadUpdate(ctx, id)
	if err != nil {
		return err
	}
	if err := RequireOwner(update.UserID, actorID); err != nil {
		return err
	}

	if err := s.updates.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return nil
}

// ListUpdates returns a bounded page of progress updates, newest first,
// scoped to one user when userID is non-zero.
func (s *ProgressService) ListUpdates(ctx context.Context, userID uint, page, limit int) ([]models.ProgressUpdate, int64, error) {
	var (
		updates []models.ProgressUpdate
		total   int64
		err     error
	)
	if userID != 0 {
		updates, total, err = s.updates.GetByUserID(ctx, userID, page, limit)
	} else {
		updates, total, err = s.updates.GetAll(ctx, page, limit)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return updates, total, nil
}

// ListBadges returns the user's badges, most recent first.
func (s *ProgressService) ListBadges(ctx context.Context, userID uint) ([]models.Badge, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user %d", userID)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	badges, err := s.badges.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return badges, nil
}

func (s *ProgressService) loadUpdate(ctx context.Context, id uint) (*models.ProgressUpdate, error) {
	update, err := s.updates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("progress update %d", id)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return update, nil
}

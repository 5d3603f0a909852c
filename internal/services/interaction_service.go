package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tanvir-rahman/skillshare-backend/internal/apperrors"
	"github.com/tanvir-rahman/skillshare-backend/internal/cache"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"github.com/tanvir-rahman/skillshare-backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ToggleState names the transition a toggle performed.
type ToggleState string

const (
	StateCreated ToggleState = "created"
	StateRemoved ToggleState = "removed"
)

// ToggleResult is the outcome of a toggle call. Count is omitted when the
// post-toggle count read fails: the transition itself committed, and a
// fabricated value would misreport the counter.
type ToggleResult struct {
	State ToggleState `json:"state"`
	Count *int64      `json:"count,omitempty"`
}

// InteractionService is the toggle engine. It validates the request, flips
// the relation atomically through the relation store (which refreshes the
// derived counters in the same transaction) and fans out a notification on
// creation transitions only.
type InteractionService struct {
	relations repositories.RelationRepository
	users     repositories.UserRepository
	posts     repositories.PostRepository
	notifier  Notifier
	counters  cache.CounterCache
	sf        singleflight.Group
	logger    *zap.Logger
}

// NewInteractionService creates a new InteractionService. counters may be nil
// when no redis cache is configured; counts then always come from the store.
func NewInteractionService(
	relationRepo repositories.RelationRepository,
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	notifier Notifier,
	counters cache.CounterCache,
	logger *zap.Logger,
) *InteractionService {
	return &InteractionService{
		relations: relationRepo,
		users:     userRepo,
		posts:     postRepo,
		notifier:  notifier,
		counters:  counters,
		logger:    logger,
	}
}

// notificationKind maps relation kinds onto the notification they fan out.
// SHARE creates no notification.
func notificationKind(kind models.RelationKind) (models.NotificationKind, bool) {
	switch kind {
	case models.KindLike:
		return models.NotifyLike, true
	case models.KindFavorite:
		return models.NotifyFavorite, true
	case models.KindFollow:
		return models.NotifyFollow, true
	}
	return "", false
}

// resolveTarget verifies the target exists and returns the notification
// recipient: the post owner for post kinds, the followed user for FOLLOW.
func (s *InteractionService) resolveTarget(ctx context.Context, targetID uint, kind models.RelationKind) (recipientID uint, err error) {
	if kind.TargetsPost() {
		post, err := s.posts.GetPostByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, apperrors.NotFoundf("post %d", targetID)
			}
			return 0, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
		}
		return post.UserID, nil
	}

	if _, err := s.users.GetUserByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.NotFoundf("user %d", targetID)
		}
		return 0, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return targetID, nil
}

// Toggle flips the (actor, target, kind) relation. The relation mutation and
// counter refresh happen in one atomic unit inside the store; a concurrent
// duplicate create converges on the winner's outcome. Notifications fire only
// on the CREATE edge, after the transaction, and cannot fail the toggle.
// Toggles are never retried automatically: a retry could flip state twice.
func (s *InteractionService) Toggle(ctx context.Context, actorID, targetID uint, kind models.RelationKind) (*ToggleResult, error) {
	if kind == models.KindFollow && actorID == targetID {
		return nil, apperrors.Validationf("cannot follow yourself")
	}

	if _, err := s.users.GetUserByID(ctx, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user %d", actorID)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}

	recipientID, err := s.resolveTarget(ctx, targetID, kind)
	if err != nil {
		return nil, err
	}

	created, err := s.relations.Toggle(ctx, actorID, targetID, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}

	result := &ToggleResult{State: StateRemoved}
	count, err := s.relations.CountForTarget(ctx, targetID, kind)
	if err != nil {
		// The toggle committed; report the state without inventing a count.
		s.logger.Warn("count read after toggle failed",
			zap.Uint("target_id", targetID), zap.String("kind", string(kind)), zap.Error(err))
	} else {
		s.refreshCache(ctx, targetID, kind, count)
		result.Count = &count
	}
	if created {
		result.State = StateCreated
		if notifyKind, ok := notificationKind(kind); ok {
			s.notifier.Notify(ctx, recipientID, actorID, notifyKind, targetID)
		}
	}

	s.logger.Info("relation toggled",
		zap.Uint("actor_id", actorID),
		zap.Uint("target_id", targetID),
		zap.String("kind", string(kind)),
		zap.String("state", string(result.State)))
	return result, nil
}

// ForgetTarget drops the cached post counters for a deleted target so stale
// counts cannot be served until the TTL runs out. Best effort: the target is
// already gone, so a cache failure only delays expiry.
func (s *InteractionService) ForgetTarget(ctx context.Context, targetID uint) {
	if s.counters == nil {
		return
	}
	for _, kind := range []models.RelationKind{models.KindLike, models.KindFavorite, models.KindShare} {
		if err := s.counters.Invalidate(ctx, targetID, kind); err != nil {
			s.logger.Warn("counter cache invalidation failed",
				zap.Uint("target_id", targetID), zap.String("kind", string(kind)), zap.Error(err))
		}
	}
}

// refreshCache writes the derived count into redis, best effort.
func (s *InteractionService) refreshCache(ctx context.Context, targetID uint, kind models.RelationKind, count int64) {
	if s.counters == nil {
		return
	}
	if err := s.counters.SetCount(ctx, targetID, kind, count); err != nil {
		s.logger.Warn("counter cache refresh failed",
			zap.Uint("target_id", targetID), zap.String("kind", string(kind)), zap.Error(err))
	}
}

// GetCount returns the target's counter for a kind. Reads go through the
// redis cache with singleflight dedup; on miss the store count is used and
// the cache filled. The store read is retried once, being idempotent.
func (s *InteractionService) GetCount(ctx context.Context, targetID uint, kind models.RelationKind) (int64, error) {
	key := fmt.Sprintf("%s:%d", kind, targetID)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if s.counters != nil {
			if err := s.counters.RecordAccess(ctx, targetID, kind); err != nil {
				s.logger.Debug("hot key record failed", zap.Error(err))
			}
			count, found, err := s.counters.GetCount(ctx, targetID, kind)
			if err != nil {
				s.logger.Warn("counter cache read failed, falling back to store", zap.Error(err))
			} else if found {
				return count, nil
			}
		}

		count, err := s.relations.CountForTarget(ctx, targetID, kind)
		if err != nil {
			// One retry for the idempotent read.
			count, err = s.relations.CountForTarget(ctx, targetID, kind)
			if err != nil {
				return int64(0), fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
			}
		}
		s.refreshCache(ctx, targetID, kind, count)
		return count, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// HasRelation reports whether the actor currently holds the relation.
func (s *InteractionService) HasRelation(ctx context.Context, actorID, targetID uint, kind models.RelationKind) (bool, error) {
	exists, err := s.relations.Exists(ctx, actorID, targetID, kind)
	if err != nil {
		return false, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return exists, nil
}

// FollowCounts holds a user's denormalized follow counters.
type FollowCounts struct {
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
}

// GetFollowCounts returns how many users follow the user and how many the
// user follows.
func (s *InteractionService) GetFollowCounts(ctx context.Context, userID uint) (*FollowCounts, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user %d", userID)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}

	followers, err := s.GetCount(ctx, userID, models.KindFollow)
	if err != nil {
		return nil, err
	}
	following, err := s.relations.CountFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return &FollowCounts{FollowerCount: followers, FollowingCount: following}, nil
}

// ListRelations returns a bounded page of the target's relation summaries,
// newest first. For FOLLOW the page lists followers of the target user.
func (s *InteractionService) ListRelations(ctx context.Context, targetID uint, kind models.RelationKind, page, limit int) ([]models.RelationSummary, int64, error) {
	if _, err := s.resolveTarget(ctx, targetID, kind); err != nil {
		return nil, 0, err
	}
	summaries, total, err := s.relations.ListForTarget(ctx, targetID, kind, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return summaries, total, nil
}

// ListFollowing returns a bounded page of users the actor follows, newest first.
func (s *InteractionService) ListFollowing(ctx context.Context, actorID uint, page, limit int) ([]models.RelationSummary, int64, error) {
	if _, err := s.users.GetUserByID(ctx, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFoundf("user %d", actorID)
		}
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	summaries, total, err := s.relations.ListFollowing(ctx, actorID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	return summaries, total, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"github.com/tanvir-rahman/skillshare-backend/internal/repositories"
	"go.uber.org/zap"
)

// Notifier emits a notification for a state transition. Implementations must
// suppress self-notifications and never propagate failures back to the
// triggering transition.
type Notifier interface {
	Notify(ctx context.Context, recipientID, actorID uint, kind models.NotificationKind, targetID uint)
}

// Message renders the notification text for a kind. Pure and side-effect-free.
func Message(actorName string, kind models.NotificationKind) string {
	switch kind {
	case models.NotifyLike:
		return fmt.Sprintf("%s liked your post", actorName)
	case models.NotifyFavorite:
		return fmt.Sprintf("%s favorited your post", actorName)
	case models.NotifyComment:
		return fmt.Sprintf("%s commented on your post", actorName)
	case models.NotifyFollow:
		return fmt.Sprintf("%s started following you", actorName)
	}
	return fmt.Sprintf("%s interacted with your post", actorName)
}

// NotificationService is the fan-out component: one notification per
// creation transition, none on removal.
type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	logger        *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifRepo,
		users:         userRepo,
		logger:        logger,
	}
}

// Notify records a notification for the recipient. Self-actions are a no-op.
// If the actor or recipient no longer exists, or the write fails, the
// notification is dropped and the triggering transition is unaffected.
func (s *NotificationService) Notify(ctx context.Context, recipientID, actorID uint, kind models.NotificationKind, targetID uint) {
	if recipientID == actorID {
		return
	}

	actor, err := s.users.GetUserByID(ctx, actorID)
	if err != nil {
		s.logger.Warn("notification dropped: actor lookup failed",
			zap.Uint("actor_id", actorID), zap.Error(err))
		return
	}
	if _, err := s.users.GetUserByID(ctx, recipientID); err != nil {
		s.logger.Warn("notification dropped: recipient lookup failed",
			zap.Uint("recipient_id", recipientID), zap.Error(err))
		return
	}

	notification := &models.Notification{
		Kind:        kind,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetID:    targetID,
		Message:     Message(actor.Name, kind),
	}
	if err := s.notifications.CreateNotification(ctx, notification); err != nil {
		s.logger.Warn("notification dropped: create failed",
			zap.Uint("recipient_id", recipientID),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}

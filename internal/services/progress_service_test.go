package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tanvir-rahman/skillshare-backend/internal/apperrors"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"go.uber.org/zap"
)

func TestProgressMilestonesAwardBadges(t *testing.T) {
	user := &models.User{ID: 1, Name: "Alice"}
	updates := newFakeProgressRepo()
	badges := &fakeBadgeRepo{}
	svc := NewProgressService(updates, badges, newFakeUserRepo(user), zap.NewNop())

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if _, err := svc.CreateUpdate(ctx, 1, "finished another chapter", "daily"); err != nil {
			t.Fatalf("create update %d failed: %v", i, err)
		}
	}

	got, err := svc.ListBadges(ctx, 1)
	if err != nil {
		t.Fatalf("ListBadges failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 milestone badges after 10 updates, got %d", len(got))
	}
	names := map[string]bool{}
	for _, b := range got {
		names[b.BadgeName] = true
	}
	if !names["First Steps"] || !names["Consistent Learner"] {
		t.Fatalf("unexpected badge set: %v", names)
	}
}

func TestProgressBadgeFailureDoesNotFailUpdate(t *testing.T) {
	user := &models.User{ID: 1}
	badges := &fakeBadgeRepo{awardErr: errors.New("badge store down")}
	svc := NewProgressService(newFakeProgressRepo(), badges, newFakeUserRepo(user), zap.NewNop())

	update, err := svc.CreateUpdate(context.Background(), 1, "first note", "")
	if err != nil {
		t.Fatalf("update must survive a badge failure, got %v", err)
	}
	if update.ID == 0 {
		t.Fatal("expected the update to be stored")
	}
}

func TestProgressUpdateOwnershipEnforced(t *testing.T) {
	owner := &models.User{ID: 1}
	other := &models.User{ID: 2}
	updates := newFakeProgressRepo()
	svc := NewProgressService(updates, &fakeBadgeRepo{}, newFakeUserRepo(owner, other), zap.NewNop())

	ctx := context.Background()
	update, err := svc.CreateUpdate(ctx, 1, "started a course", "weekly")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.UpdateUpdate(ctx, update.ID, 2, "rewritten", ""); !apperrors.IsForbidden(err) {
		t.Fatalf("non-owner edit: expected forbidden, got %v", err)
	}
	if err := svc.DeleteUpdate(ctx, update.ID, 2); !apperrors.IsForbidden(err) {
		t.Fatalf("non-owner delete: expected forbidden, got %v", err)
	}
	if _, err := svc.UpdateUpdate(ctx, 99, 1, "anything", ""); !apperrors.IsNotFound(err) {
		t.Fatalf("missing update: expected not found, got %v", err)
	}

	edited, err := svc.UpdateUpdate(ctx, update.ID, 1, "finished the course", "weekly")
	if err != nil {
		t.Fatalf("owner edit failed: %v", err)
	}
	if edited.Content != "finished the course" {
		t.Fatalf("unexpected content after edit: %q", edited.Content)
	}
	if err := svc.DeleteUpdate(ctx, update.ID, 1); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}

func TestListBadgesMissingUserIsNotFound(t *testing.T) {
	svc := NewProgressService(newFakeProgressRepo(), &fakeBadgeRepo{}, newFakeUserRepo(), zap.NewNop())
	if _, err := svc.ListBadges(context.Background(), 42); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

package services

import (
	"context"
	"testing"

	"github.com/tanvir-rahman/skillshare-backend/internal/apperrors"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"go.uber.org/zap"
)

func TestToggleCreatesThenRemoves(t *testing.T) {
	actor := &models.User{ID: 1, Name: "Alice"}
	owner := &models.User{ID: 2, Name: "Bob"}
	post := &models.Post{ID: 10, UserID: 2}

	relations := newFakeRelationRepo()
	notifier := &fakeNotifier{}
	svc := NewInteractionService(relations, newFakeUserRepo(actor, owner), newFakePostRepo(post), notifier, nil, zap.NewNop())

	ctx := context.Background()

	result, err := svc.Toggle(ctx, 1, 10, models.KindLike)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if result.State != StateCreated {
		t.Fatalf("expected state %q, got %q", StateCreated, result.State)
	}
	if result.Count == nil || *result.Count != 1 {
		t.Fatalf("expected count 1 after create, got %v", result.Count)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.calls))
	}
	call := notifier.calls[0]
	if call.recipientID != 2 || call.actorID != 1 || call.kind != models.NotifyLike {
		t.Fatalf("unexpected notification call: %+v", call)
	}

	result, err = svc.Toggle(ctx, 1, 10, models.KindLike)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if result.State != StateRemoved {
		t.Fatalf("expected state %q, got %q", StateRemoved, result.State)
	}
	if result.Count == nil || *result.Count != 0 {
		t.Fatalf("expected count 0 after remove, got %v", result.Count)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("removal must not notify, got %d calls", len(notifier.calls))
	}
}

func TestToggleEvenCallsRestoreState(t *testing.T) {
	actor := &models.User{ID: 1}
	owner := &models.User{ID: 2}
	post := &models.Post{ID: 10, UserID: 2}

	relations := newFakeRelationRepo()
	svc := NewInteractionService(relations, newFakeUserRepo(actor, owner), newFakePostRepo(post), &fakeNotifier{}, nil, zap.NewNop())

	ctx := context.Background()
	for i := 0; i < 6; i++ {
		if _, err := svc.Toggle(ctx, 1, 10, models.KindFavorite); err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
	}

	has, err := svc.HasRelation(ctx, 1, 10, models.KindFavorite)
	if err != nil {
		t.Fatalf("HasRelation failed: %v", err)
	}
	if has {
		t.Fatal("even number of toggles must leave no relation")
	}
	count, err := svc.GetCount(ctx, 10, models.KindFavorite)
	if err != nil {
		t.Fatalf("GetCount failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected count 0, got %d", count)
	}
}

func TestToggleShareDoesNotNotify(t *testing.T) {
	actor := &models.User{ID: 1}
	owner := &models.User{ID: 2}
	post := &models.Post{ID: 10, UserID: 2}

	notifier := &fakeNotifier{}
	svc := NewInteractionService(newFakeRelationRepo(), newFakeUserRepo(actor, owner), newFakePostRepo(post), notifier, nil, zap.NewNop())

	result, err := svc.Toggle(context.Background(), 1, 10, models.KindShare)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if result.State != StateCreated {
		t.Fatalf("expected created, got %q", result.State)
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("share must not notify, got %d calls", len(notifier.calls))
	}
}

func TestToggleSelfFollowRejected(t *testing.T) {
	user := &models.User{ID: 1}
	svc := NewInteractionService(newFakeRelationRepo(), newFakeUserRepo(user), newFakePostRepo(), &fakeNotifier{}, nil, zap.NewNop())

	_, err := svc.Toggle(context.Background(), 1, 1, models.KindFollow)
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestToggleMissingTargetIsNotFound(t *testing.T) {
	user := &models.User{ID: 1}
	svc := NewInteractionService(newFakeRelationRepo(), newFakeUserRepo(user), newFakePostRepo(), &fakeNotifier{}, nil, zap.NewNop())

	ctx := context.Background()
	if _, err := svc.Toggle(ctx, 1, 99, models.KindLike); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for missing post, got %v", err)
	}
	if _, err := svc.Toggle(ctx, 1, 99, models.KindFollow); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for missing user, got %v", err)
	}
	if _, err := svc.Toggle(ctx, 42, 1, models.KindFollow); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for missing actor, got %v", err)
	}
}

func TestToggleConvergesOnConcurrentDuplicate(t *testing.T) {
	actor := &models.User{ID: 1}
	owner := &models.User{ID: 2}
	post := &models.Post{ID: 10, UserID: 2}

	// The store reports created even when a concurrent duplicate won the
	// insert race; the caller sees the same outcome either way.
	relations := newFakeRelationRepo()
	relations.forcedCreated = true
	relations.rels[relKey{1, 10, models.KindLike}] = true

	svc := NewInteractionService(relations, newFakeUserRepo(actor, owner), newFakePostRepo(post), &fakeNotifier{}, nil, zap.NewNop())

	result, err := svc.Toggle(context.Background(), 1, 10, models.KindLike)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if result.State != StateCreated {
		t.Fatalf("expected created, got %q", result.State)
	}
	if result.Count == nil || *result.Count != 1 {
		t.Fatalf("duplicate create must not inflate the count, got %v", result.Count)
	}
}

func TestToggleOmitsCountWhenReadFails(t *testing.T) {
	actor := &models.User{ID: 1}
	owner := &models.User{ID: 2}
	post := &models.Post{ID: 10, UserID: 2}

	relations := newFakeRelationRepo()
	relations.countFailures = 1

	svc := NewInteractionService(relations, newFakeUserRepo(actor, owner), newFakePostRepo(post), &fakeNotifier{}, nil, zap.NewNop())

	result, err := svc.Toggle(context.Background(), 1, 10, models.KindLike)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if result.State != StateCreated {
		t.Fatalf("expected created, got %q", result.State)
	}
	if result.Count != nil {
		t.Fatalf("a failed count read must omit the count, got %d", *result.Count)
	}
}

func TestForgetTargetDropsCachedCounts(t *testing.T) {
	counters := newFakeCounterCache()
	counters.counts[cacheKey(10, models.KindLike)] = 4
	counters.counts[cacheKey(10, models.KindFavorite)] = 2
	counters.counts[cacheKey(10, models.KindShare)] = 1
	counters.counts[cacheKey(11, models.KindLike)] = 9

	svc := NewInteractionService(newFakeRelationRepo(), newFakeUserRepo(), newFakePostRepo(), &fakeNotifier{}, counters, zap.NewNop())

	svc.ForgetTarget(context.Background(), 10)

	for _, kind := range []models.RelationKind{models.KindLike, models.KindFavorite, models.KindShare} {
		if _, ok := counters.counts[cacheKey(10, kind)]; ok {
			t.Fatalf("expected cached %s count for target 10 to be dropped", kind)
		}
	}
	if got := counters.counts[cacheKey(11, models.KindLike)]; got != 9 {
		t.Fatalf("other targets must keep their cached counts, got %d", got)
	}
}

func TestGetCountPrefersCache(t *testing.T) {
	owner := &models.User{ID: 2}
	post := &models.Post{ID: 10, UserID: 2}

	counters := newFakeCounterCache()
	counters.counts[cacheKey(10, models.KindLike)] = 7

	svc := NewInteractionService(newFakeRelationRepo(), newFakeUserRepo(owner), newFakePostRepo(post), &fakeNotifier{}, counters, zap.NewNop())

	count, err := svc.GetCount(context.Background(), 10, models.KindLike)
	if err != nil {
		t.Fatalf("GetCount failed: %v", err)
	}
	if count != 7 {
		t.Fatalf("expected cached count 7, got %d", count)
	}
	if counters.accesses[cacheKey(10, models.KindLike)] != 1 {
		t.Fatal("expected the read to record a hot-key access")
	}
}

func TestGetCountFillsCacheOnMiss(t *testing.T) {
	actor := &models.User{ID: 1}
	owner := &models.User{ID: 2}
	post := &models.Post{ID: 10, UserID: 2}

	relations := newFakeRelationRepo()
	relations.rels[relKey{1, 10, models.KindLike}] = true
	counters := newFakeCounterCache()

	svc := NewInteractionService(relations, newFakeUserRepo(actor, owner), newFakePostRepo(post), &fakeNotifier{}, counters, zap.NewNop())

	count, err := svc.GetCount(context.Background(), 10, models.KindLike)
	if err != nil {
		t.Fatalf("GetCount failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
	if got := counters.counts[cacheKey(10, models.KindLike)]; got != 1 {
		t.Fatalf("expected cache fill with 1, got %d", got)
	}
}

func TestGetCountRetriesStoreOnce(t *testing.T) {
	relations := newFakeRelationRepo()
	relations.rels[relKey{1, 10, models.KindShare}] = true
	relations.countFailures = 1

	svc := NewInteractionService(relations, newFakeUserRepo(), newFakePostRepo(), &fakeNotifier{}, nil, zap.NewNop())

	count, err := svc.GetCount(context.Background(), 10, models.KindShare)
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	relations.countFailures = 2
	if _, err := svc.GetCount(context.Background(), 10, models.KindShare); !apperrors.IsUnavailable(err) {
		t.Fatalf("expected unavailable after retry exhaustion, got %v", err)
	}
}

func TestGetFollowCounts(t *testing.T) {
	alice := &models.User{ID: 1}
	bob := &models.User{ID: 2}
	carol := &models.User{ID: 3}

	relations := newFakeRelationRepo()
	svc := NewInteractionService(relations, newFakeUserRepo(alice, bob, carol), newFakePostRepo(), &fakeNotifier{}, nil, zap.NewNop())

	ctx := context.Background()
	// bob and carol follow alice; alice follows bob.
	if _, err := svc.Toggle(ctx, 2, 1, models.KindFollow); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Toggle(ctx, 3, 1, models.KindFollow); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Toggle(ctx, 1, 2, models.KindFollow); err != nil {
		t.Fatal(err)
	}

	counts, err := svc.GetFollowCounts(ctx, 1)
	if err != nil {
		t.Fatalf("GetFollowCounts failed: %v", err)
	}
	if counts.FollowerCount != 2 {
		t.Fatalf("expected 2 followers, got %d", counts.FollowerCount)
	}
	if counts.FollowingCount != 1 {
		t.Fatalf("expected 1 following, got %d", counts.FollowingCount)
	}

	if _, err := svc.GetFollowCounts(ctx, 99); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for missing user, got %v", err)
	}
}

func TestSelfLikeProducesNoNotification(t *testing.T) {
	owner := &models.User{ID: 2, Name: "Bob"}
	post := &models.Post{ID: 10, UserID: 2}

	notifRepo := &fakeNotificationRepo{}
	notifier := NewNotificationService(notifRepo, newFakeUserRepo(owner), zap.NewNop())
	svc := NewInteractionService(newFakeRelationRepo(), newFakeUserRepo(owner), newFakePostRepo(post), notifier, nil, zap.NewNop())

	result, err := svc.Toggle(context.Background(), 2, 10, models.KindLike)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if result.State != StateCreated {
		t.Fatalf("self-like must still create the relation, got %q", result.State)
	}
	if len(notifRepo.created) != 0 {
		t.Fatalf("self-like must not notify, got %d notifications", len(notifRepo.created))
	}
}

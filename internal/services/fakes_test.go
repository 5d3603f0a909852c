package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tanvir-rahman/skillshare-backend/internal/cache"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"gorm.io/gorm"
)

type relKey struct {
	actor  uint
	target uint
	kind   models.RelationKind
}

// fakeRelationRepo is an in-memory RelationRepository. Toggle flips presence
// the same way the store does; forcedCreated mimics losing the create race to
// a concurrent duplicate, where the store still reports the relation present.
type fakeRelationRepo struct {
	mu            sync.Mutex
	rels          map[relKey]bool
	toggleErr     error
	countFailures int
	forcedCreated bool
}

func newFakeRelationRepo() *fakeRelationRepo {
	return &fakeRelationRepo{rels: make(map[relKey]bool)}
}

func (f *fakeRelationRepo) Toggle(_ context.Context, actorID, targetID uint, kind models.RelationKind) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.toggleErr != nil {
		return false, f.toggleErr
	}
	key := relKey{actorID, targetID, kind}
	if f.forcedCreated {
		f.rels[key] = true
		return true, nil
	}
	if f.rels[key] {
		delete(f.rels, key)
		return false, nil
	}
	f.rels[key] = true
	return true, nil
}

func (f *fakeRelationRepo) Exists(_ context.Context, actorID, targetID uint, kind models.RelationKind) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rels[relKey{actorID, targetID, kind}], nil
}

func (f *fakeRelationRepo) CountForTarget(_ context.Context, targetID uint, kind models.RelationKind) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countFailures > 0 {
		f.countFailures--
		return 0, errors.New("store unavailable")
	}
	var count int64
	for k := range f.rels {
		if k.target == targetID && k.kind == kind {
			count++
		}
	}
	return count, nil
}

func (f *fakeRelationRepo) CountFollowing(_ context.Context, actorID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for k := range f.rels {
		if k.actor == actorID && k.kind == models.KindFollow {
			count++
		}
	}
	return count, nil
}

func (f *fakeRelationRepo) ListForTarget(_ context.Context, targetID uint, kind models.RelationKind, page, limit int) ([]models.RelationSummary, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var summaries []models.RelationSummary
	for k := range f.rels {
		if k.target == targetID && k.kind == kind {
			summaries = append(summaries, models.RelationSummary{ActorID: k.actor})
		}
	}
	return summaries, int64(len(summaries)), nil
}

func (f *fakeRelationRepo) ListFollowing(_ context.Context, actorID uint, page, limit int) ([]models.RelationSummary, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var summaries []models.RelationSummary
	for k := range f.rels {
		if k.actor == actorID && k.kind == models.KindFollow {
			summaries = append(summaries, models.RelationSummary{ActorID: k.target})
		}
	}
	return summaries, int64(len(summaries)), nil
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	for _, u := range f.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) SearchUsers(_ context.Context, _ string) ([]models.User, error) {
	return nil, nil
}

type fakePostRepo struct {
	posts map[uint]*models.Post
}

func newFakePostRepo(posts ...*models.Post) *fakePostRepo {
	repo := &fakePostRepo{posts: make(map[uint]*models.Post)}
	for _, p := range posts {
		repo.posts[p.ID] = p
	}
	return repo
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) GetPostByID(_ context.Context, id uint) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (f *fakePostRepo) GetPostsByUserID(_ context.Context, _ uint, _, _ int) ([]models.Post, int64, error) {
	return nil, 0, nil
}

func (f *fakePostRepo) GetAllPosts(_ context.Context, _, _ int) ([]models.Post, int64, error) {
	return nil, 0, nil
}

func (f *fakePostRepo) UpdatePost(_ context.Context, post *models.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id uint) error {
	delete(f.posts, id)
	return nil
}

type fakeCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uint]*models.Comment), nextID: 1}
}

func (f *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	comment.ID = f.nextID
	f.nextID++
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) GetCommentByID(_ context.Context, id uint) (*models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (f *fakeCommentRepo) GetCommentsByPostID(_ context.Context, postID uint, _, _ int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			comments = append(comments, *c)
		}
	}
	return comments, int64(len(comments)), nil
}

func (f *fakeCommentRepo) UpdateContent(_ context.Context, id uint, content string) error {
	comment, ok := f.comments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	comment.Content = content
	return nil
}

func (f *fakeCommentRepo) DeleteComment(_ context.Context, id uint) error {
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) DeleteByPostID(_ context.Context, postID uint) error {
	for id, c := range f.comments {
		if c.PostID == postID {
			delete(f.comments, id)
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	created   []*models.Notification
	createErr error
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, _ uint) (*models.Notification, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) GetByRecipientID(_ context.Context, recipientID uint, _, _ int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range f.created {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) GetUnreadCount(_ context.Context, recipientID uint) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, _ uint) error    { return nil }
func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, _ uint) error { return nil }
func (f *fakeNotificationRepo) DeleteNotification(_ context.Context, _ uint) error {
	return nil
}

type fakeProgressRepo struct {
	updates map[uint]*models.ProgressUpdate
	nextID  uint
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{updates: make(map[uint]*models.ProgressUpdate), nextID: 1}
}

func (f *fakeProgressRepo) Create(_ context.Context, update *models.ProgressUpdate) error {
	update.ID = f.nextID
	f.nextID++
	f.updates[update.ID] = update
	return nil
}

func (f *fakeProgressRepo) GetByID(_ context.Context, id uint) (*models.ProgressUpdate, error) {
	update, ok := f.updates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return update, nil
}

func (f *fakeProgressRepo) GetAll(_ context.Context, _, _ int) ([]models.ProgressUpdate, int64, error) {
	var out []models.ProgressUpdate
	for _, u := range f.updates {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProgressRepo) GetByUserID(_ context.Context, userID uint, _, _ int) ([]models.ProgressUpdate, int64, error) {
	var out []models.ProgressUpdate
	for _, u := range f.updates {
		if u.UserID == userID {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProgressRepo) CountByUserID(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, u := range f.updates {
		if u.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeProgressRepo) Update(_ context.Context, update *models.ProgressUpdate) error {
	f.updates[update.ID] = update
	return nil
}

func (f *fakeProgressRepo) Delete(_ context.Context, id uint) error {
	delete(f.updates, id)
	return nil
}

type fakeBadgeRepo struct {
	badges   []models.Badge
	awardErr error
}

func (f *fakeBadgeRepo) Award(_ context.Context, userID uint, badgeName string) (bool, error) {
	if f.awardErr != nil {
		return false, f.awardErr
	}
	for _, b := range f.badges {
		if b.UserID == userID && b.BadgeName == badgeName {
			return false, nil
		}
	}
	f.badges = append(f.badges, models.Badge{UserID: userID, BadgeName: badgeName})
	return true, nil
}

func (f *fakeBadgeRepo) GetByUserID(_ context.Context, userID uint) ([]models.Badge, error) {
	var out []models.Badge
	for _, b := range f.badges {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type notifyCall struct {
	recipientID uint
	actorID     uint
	kind        models.NotificationKind
	targetID    uint
}

type fakeNotifier struct {
	calls []notifyCall
}

func (f *fakeNotifier) Notify(_ context.Context, recipientID, actorID uint, kind models.NotificationKind, targetID uint) {
	f.calls = append(f.calls, notifyCall{recipientID, actorID, kind, targetID})
}

// fakeCounterCache is an in-memory CounterCache.
type fakeCounterCache struct {
	mu       sync.Mutex
	counts   map[string]int64
	accesses map[string]int
}

func newFakeCounterCache() *fakeCounterCache {
	return &fakeCounterCache{counts: make(map[string]int64), accesses: make(map[string]int)}
}

func cacheKey(targetID uint, kind models.RelationKind) string {
	return fmt.Sprintf("%s:%d", kind, targetID)
}

func (f *fakeCounterCache) GetCount(_ context.Context, targetID uint, kind models.RelationKind) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count, ok := f.counts[cacheKey(targetID, kind)]
	return count, ok, nil
}

func (f *fakeCounterCache) SetCount(_ context.Context, targetID uint, kind models.RelationKind, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[cacheKey(targetID, kind)] = count
	return nil
}

func (f *fakeCounterCache) Invalidate(_ context.Context, targetID uint, kind models.RelationKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.counts, cacheKey(targetID, kind))
	return nil
}

func (f *fakeCounterCache) RecordAccess(_ context.Context, targetID uint, kind models.RelationKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accesses[cacheKey(targetID, kind)]++
	return nil
}

func (f *fakeCounterCache) GetTopHotKeys(_ context.Context, _ int64) ([]cache.HotKey, error) {
	return nil, nil
}

func (f *fakeCounterCache) ResetHotKeyScores(_ context.Context) error { return nil }

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"github.com/tanvir-rahman/skillshare-backend/validators"
	"gorm.io/gorm"
)

// fakeUserStore enforces the same uniqueness the database does: unique
// emails, and a unique index over firebase_uid that ignores NULL values.
type fakeUserStore struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*models.User), nextID: 1}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return errors.New("duplicate key value violates unique constraint on email")
		}
		if u.FirebaseUID != nil && user.FirebaseUID != nil && *u.FirebaseUID == *user.FirebaseUID {
			return errors.New("duplicate key value violates unique constraint on firebase_uid")
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	for _, u := range f.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) UpdateUser(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) SearchUsers(_ context.Context, _ string) ([]models.User, error) {
	return nil, nil
}

func signupRequest(t *testing.T, e *echo.Echo, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Signup(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestSignupSecondLocalUserSucceeds(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()

	store := newFakeUserStore()
	h := NewAuthHandler(store, nil, "test-secret")

	first := signupRequest(t, e, h, `{"name":"Alice","email":"alice@example.com","password":"password1"}`)
	if first.Code != http.StatusCreated {
		t.Fatalf("first signup: got status %d, body %s", first.Code, first.Body.String())
	}

	// Local signups carry no firebase identity; two of them must not collide
	// on the firebase_uid unique index.
	second := signupRequest(t, e, h, `{"name":"Bob","email":"bob@example.com","password":"password2"}`)
	if second.Code != http.StatusCreated {
		t.Fatalf("second signup: got status %d, body %s", second.Code, second.Body.String())
	}

	for _, u := range store.users {
		if u.FirebaseUID != nil {
			t.Fatalf("local signup must leave firebase_uid unset, got %q for user %d", *u.FirebaseUID, u.ID)
		}
	}
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()

	h := NewAuthHandler(newFakeUserStore(), nil, "test-secret")

	if rec := signupRequest(t, e, h, `{"name":"Alice","email":"alice@example.com","password":"password1"}`); rec.Code != http.StatusCreated {
		t.Fatalf("first signup: got status %d", rec.Code)
	}
	if rec := signupRequest(t, e, h, `{"name":"Alice Again","email":"alice@example.com","password":"password1"}`); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate email signup: got status %d, want %d", rec.Code, http.StatusConflict)
	}
}

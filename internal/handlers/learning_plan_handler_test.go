package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"github.com/tanvir-rahman/skillshare-backend/validators"
	"gorm.io/gorm"
)

type fakePlanStore struct {
	plans  map[uint]*models.LearningPlan
	nextID uint
}

func newFakePlanStore(plans ...*models.LearningPlan) *fakePlanStore {
	store := &fakePlanStore{plans: make(map[uint]*models.LearningPlan), nextID: 1}
	for _, p := range plans {
		store.plans[p.ID] = p
		if p.ID >= store.nextID {
			store.nextID = p.ID + 1
		}
	}
	return store
}

func (f *fakePlanStore) CreatePlan(_ context.Context, plan *models.LearningPlan) error {
	plan.ID = f.nextID
	f.nextID++
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanStore) GetPlanByID(_ context.Context, id uint) (*models.LearningPlan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return plan, nil
}

func (f *fakePlanStore) GetAllPlans(_ context.Context, _, _ int) ([]models.LearningPlan, int64, error) {
	var out []models.LearningPlan
	for _, p := range f.plans {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePlanStore) GetPlansByUserID(_ context.Context, userID uint, _, _ int) ([]models.LearningPlan, int64, error) {
	var out []models.LearningPlan
	for _, p := range f.plans {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePlanStore) UpdatePlan(_ context.Context, plan *models.LearningPlan) error {
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanStore) DeletePlan(_ context.Context, id uint) error {
	delete(f.plans, id)
	return nil
}

func planContext(e *echo.Echo, method, body string, userID uint, planID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/api/v1/plans/"+planID, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(planID)
	c.Set("userID", userID)
	return c, rec
}

func TestUpdatePlanOwnerOnly(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()

	store := newFakePlanStore(&models.LearningPlan{Model: gorm.Model{ID: 1}, UserID: 1, Title: "Learn Go"})
	h := NewLearningPlanHandler(store)

	body := `{"title":"Learn Go well"}`

	c, _ := planContext(e, http.MethodPut, body, 2, "1")
	err := h.UpdatePlan(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("non-owner update: expected 403, got %v", err)
	}

	c, rec := planContext(e, http.MethodPut, body, 1, "1")
	if err := h.UpdatePlan(c); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("owner update: expected 200, got %d", rec.Code)
	}
	if got := store.plans[1].Title; got != "Learn Go well" {
		t.Fatalf("unexpected title after update: %q", got)
	}
}

func TestDeletePlanOwnerOnly(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()

	store := newFakePlanStore(&models.LearningPlan{Model: gorm.Model{ID: 1}, UserID: 1, Title: "Learn Go"})
	h := NewLearningPlanHandler(store)

	c, _ := planContext(e, http.MethodDelete, "", 2, "1")
	err := h.DeletePlan(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("non-owner delete: expected 403, got %v", err)
	}

	c, rec := planContext(e, http.MethodDelete, "", 1, "1")
	if err := h.DeletePlan(c); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("owner delete: expected 204, got %d", rec.Code)
	}

	c, _ = planContext(e, http.MethodDelete, "", 1, "1")
	err = h.DeletePlan(c)
	httpErr, ok = err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("deleted plan: expected 404, got %v", err)
	}
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"github.com/tanvir-rahman/skillshare-backend/internal/repositories"
	"github.com/tanvir-rahman/skillshare-backend/internal/services"
	"gorm.io/gorm"
)

// LearningPlanHandler handles HTTP requests related to learning plans
type LearningPlanHandler struct {
	planRepository repositories.LearningPlanRepository
}

// NewLearningPlanHandler creates a new LearningPlanHandler
func NewLearningPlanHandler(planRepo repositories.LearningPlanRepository) *LearningPlanHandler {
	return &LearningPlanHandler{planRepository: planRepo}
}

// RegisterLearningPlanRoutes registers learning-plan-related routes
func (h *LearningPlanHandler) RegisterLearningPlanRoutes(g *echo.Group) {
	g.POST("/plans", h.CreatePlan)
	g.GET("/plans", h.GetPlans)
	g.GET("/plans/:id", h.GetPlan)
	g.PUT("/plans/:id", h.UpdatePlan)
	g.DELETE("/plans/:id", h.DeletePlan)
}

// CreatePlan creates a new learning plan owned by the authenticated user.
func (h *LearningPlanHandler) CreatePlan(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateLearningPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan := &models.LearningPlan{
		UserID:    currentUserID,
		Title:     req.Title,
		Topics:    req.Topics,
		Resources: req.Resources,
		Timeline:  req.Timeline,
	}
	if err := h.planRepository.CreatePlan(c.Request().Context(), plan); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": plan})
}

// GetPlans retrieves a page of learning plans, newest first. With ?user_id=
// the page is scoped to one owner.
func (h *LearningPlanHandler) GetPlans(c echo.Context) error {
	page, limit := parsePagination(c)

	var plans []models.LearningPlan
	var total int64
	var err error

	if userIDParam := c.QueryParam("user_id"); userIDParam != "" {
		userID, parseErr := strconv.ParseUint(userIDParam, 10, 32)
		if parseErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user_id")
		}
		plans, total, err = h.planRepository.GetPlansByUserID(c.Request().Context(), uint(userID), page, limit)
	} else {
		plans, total, err = h.planRepository.GetAllPlans(c.Request().Context(), page, limit)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"plans": plans},
		"meta":    pageMeta(page, limit, total),
	})
}

// GetPlan retrieves a learning plan by ID.
func (h *LearningPlanHandler) GetPlan(c echo.Context) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	plan, err := h.planRepository.GetPlanByID(c.Request().Context(), planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Learning plan not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": plan})
}

// UpdatePlan updates an existing learning plan. Plan owner only.
func (h *LearningPlanHandler) UpdatePlan(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	planID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateLearningPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.planRepository.GetPlanByID(c.Request().Context(), planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Learning plan not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := services.RequireOwner(plan.UserID, currentUserID); err != nil {
		return httpError(err)
	}

	if req.Title != "" {
		plan.Title = req.Title
	}
	if req.Topics != "" {
		plan.Topics = req.Topics
	}
	if req.Resources != "" {
		plan.Resources = req.Resources
	}
	if req.Timeline != "" {
		plan.Timeline = req.Timeline
	}

	if err := h.planRepository.UpdatePlan(c.Request().Context(), plan); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": plan})
}

// DeletePlan deletes a learning plan. Plan owner only.
func (h *LearningPlanHandler) DeletePlan(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	planID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	plan, err := h.planRepository.GetPlanByID(c.Request().Context(), planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Learning plan not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := services.RequireOwner(plan.UserID, currentUserID); err != nil {
		return httpError(err)
	}

	if err := h.planRepository.DeletePlan(c.Request().Context(), planID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

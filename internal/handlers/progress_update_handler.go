package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"github.com/tanvir-rahman/skillshare-backend/internal/services"
)

// ProgressUpdateHandler handles HTTP requests related to progress updates
// and the milestone badges they earn.
type ProgressUpdateHandler struct {
	progress *services.ProgressService
}

// NewProgressUpdateHandler creates a new ProgressUpdateHandler
func NewProgressUpdateHandler(progress *services.ProgressService) *ProgressUpdateHandler {
	return &ProgressUpdateHandler{progress: progress}
}

// RegisterProgressRoutes registers progress-update and badge routes
func (h *ProgressUpdateHandler) RegisterProgressRoutes(g *echo.Group) {
	g.POST("/progress", h.CreateUpdate)
	g.GET("/progress", h.GetUpdates)
	g.PUT("/progress/:id", h.UpdateUpdate)
	g.DELETE("/progress/:id", h.DeleteUpdate)
	g.GET("/users/:id/badges", h.GetBadges)
}

// CreateUpdate posts a new progress update for the authenticated user.
func (h *ProgressUpdateHandler) CreateUpdate(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateProgressUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update, err := h.progress.CreateUpdate(c.Request().Context(), currentUserID, req.Content, req.TemplateType)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": update})
}

// GetUpdates retrieves a page of progress updates, newest first. With
// ?user_id= the page is scoped to one user.
func (h *ProgressUpdateHandler) GetUpdates(c echo.Context) error {
	page, limit := parsePagination(c)

	var userID uint
	if userIDParam := c.QueryParam("user_id"); userIDParam != "" {
		parsed, err := strconv.ParseUint(userIDParam, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user_id")
		}
		userID = uint(parsed)
	}

	updates, total, err := h.progress.ListUpdates(c.Request().Context(), userID, page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"updates": updates},
		"meta":    pageMeta(page, limit, total),
	})
}

// UpdateUpdate edits an existing progress update. Owner only.
func (h *ProgressUpdateHandler) UpdateUpdate(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	updateID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateProgressUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update, err := h.progress.UpdateUpdate(c.Request().Context(), updateID, currentUserID, req.Content, req.TemplateType)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": update})
}

// DeleteUpdate removes a progress update. Owner only.
func (h *ProgressUpdateHandler) DeleteUpdate(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	updateID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.progress.DeleteUpdate(c.Request().Context(), updateID, currentUserID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetBadges retrieves a user's badges, most recent first.
func (h *ProgressUpdateHandler) GetBadges(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	badges, err := h.progress.ListBadges(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"badges": badges}})
}

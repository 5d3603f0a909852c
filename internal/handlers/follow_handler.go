package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"github.com/tanvir-rahman/skillshare-backend/internal/services"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	interactions *services.InteractionService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(interactions *services.InteractionService) *FollowHandler {
	return &FollowHandler{interactions: interactions}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/users/:id/counts", h.GetFollowCounts)
}

// ToggleFollow follows the user if not followed, unfollows otherwise.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	result, err := h.interactions.Toggle(c.Request().Context(), currentUserID, targetID, models.KindFollow)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// GetFollowers returns a page of the user's followers, newest first.
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	page, limit := parsePagination(c)

	summaries, total, err := h.interactions.ListRelations(c.Request().Context(), targetID, models.KindFollow, page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"followers": summaries},
		"meta":    pageMeta(page, limit, total),
	})
}

// GetFollowing returns a page of users the user follows, newest first.
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	actorID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	page, limit := parsePagination(c)

	summaries, total, err := h.interactions.ListFollowing(c.Request().Context(), actorID, page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"following": summaries},
		"meta":    pageMeta(page, limit, total),
	})
}

// GetFollowCounts returns the user's follower and following counters.
func (h *FollowHandler) GetFollowCounts(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	counts, err := h.interactions.GetFollowCounts(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"user_id": userID, "counts": counts},
	})
}

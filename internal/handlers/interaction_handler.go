package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"github.com/tanvir-rahman/skillshare-backend/internal/services"
)

// InteractionHandler handles like/favorite/share HTTP requests on posts.
// All three share the toggle engine, parameterized by relation kind.
type InteractionHandler struct {
	interactions *services.InteractionService
}

// NewInteractionHandler creates a new InteractionHandler
func NewInteractionHandler(interactions *services.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactions: interactions}
}

// RegisterInteractionRoutes registers interaction-related routes
func (h *InteractionHandler) RegisterInteractionRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/like", h.TogglePostRelation(models.KindLike))
	g.POST("/posts/:post_id/favorite", h.TogglePostRelation(models.KindFavorite))
	g.POST("/posts/:post_id/share", h.TogglePostRelation(models.KindShare))
	g.GET("/posts/:post_id/likes", h.ListPostRelations(models.KindLike))
	g.GET("/posts/:post_id/favorites", h.ListPostRelations(models.KindFavorite))
	g.GET("/posts/:post_id/shares", h.ListPostRelations(models.KindShare))
	g.GET("/posts/:post_id/counts", h.GetPostCounts)
	g.GET("/posts/:post_id/interactions/status", h.GetInteractionStatus)
}

// TogglePostRelation flips the actor's relation of the given kind on a post.
// Calling it twice returns the post to its original state.
func (h *InteractionHandler) TogglePostRelation(kind models.RelationKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		currentUserID := getUserIDFromContext(c)
		if currentUserID == 0 {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
		}

		postID, err := parseIDParam(c, "post_id")
		if err != nil {
			return err
		}

		result, err := h.interactions.Toggle(c.Request().Context(), currentUserID, postID, kind)
		if err != nil {
			return httpError(err)
		}

		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
	}
}

// ListPostRelations returns a page of actors holding the relation on the post,
// newest first.
func (h *InteractionHandler) ListPostRelations(kind models.RelationKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		postID, err := parseIDParam(c, "post_id")
		if err != nil {
			return err
		}
		page, limit := parsePagination(c)

		summaries, total, err := h.interactions.ListRelations(c.Request().Context(), postID, kind, page, limit)
		if err != nil {
			return httpError(err)
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data":    echo.Map{"relations": summaries},
			"meta":    pageMeta(page, limit, total),
		})
	}
}

// GetPostCounts returns the post's like, favorite and share counters.
func (h *InteractionHandler) GetPostCounts(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	counts := echo.Map{}
	for _, kind := range []models.RelationKind{models.KindLike, models.KindFavorite, models.KindShare} {
		count, err := h.interactions.GetCount(ctx, postID, kind)
		if err != nil {
			return httpError(err)
		}
		counts[string(kind)] = count
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"post_id": postID, "counts": counts}})
}

// GetInteractionStatus reports whether the authenticated user currently
// likes, favorites or shares the post.
func (h *InteractionHandler) GetInteractionStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	status := echo.Map{}
	for _, kind := range []models.RelationKind{models.KindLike, models.KindFavorite, models.KindShare} {
		has, err := h.interactions.HasRelation(ctx, currentUserID, postID, kind)
		if err != nil {
			return httpError(err)
		}
		status[string(kind)] = has
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"post_id": postID, "status": status}})
}

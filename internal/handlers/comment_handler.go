package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"github.com/tanvir-rahman/skillshare-backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.AddComment(c.Request().Context(), postID, currentUserID, req.Content)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": comment})
}

// GetCommentsByPostID retrieves a page of comments for a post, newest first.
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return err
	}
	page, limit := parsePagination(c)

	comments, total, err := h.comments.ListComments(c.Request().Context(), postID, page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"comments": comments},
		"meta":    pageMeta(page, limit, total),
	})
}

// UpdateComment updates an existing comment. Allowed for the comment owner
// or the owning post's owner.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.UpdateComment(c.Request().Context(), commentID, currentUserID, req.Content)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": comment})
}

// DeleteComment deletes a comment. Allowed for the comment owner or the
// owning post's owner.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.comments.DeleteComment(c.Request().Context(), commentID, currentUserID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"github.com/tanvir-rahman/skillshare-backend/internal/repositories"
	"github.com/tanvir-rahman/skillshare-backend/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository  repositories.PostRepository
	mediaRepository repositories.MediaRepository
	interactions    *services.InteractionService
	logger          *zap.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, mediaRepo repositories.MediaRepository, interactions *services.InteractionService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postRepository:  postRepo,
		mediaRepository: mediaRepo,
		interactions:    interactions,
		logger:          logger,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/posts", h.GetPosts) // Get all posts or posts by user (with query param)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/media/:id", h.GetMedia)
}

// CreatePost creates a new post. Accepts multipart form data with the post
// fields plus up to 3 "images" files and one "video" file; requests with
// more attachments are rejected instead of silently truncated.
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	req := models.CreatePostRequest{
		Title:         c.FormValue("title"),
		Content:       c.FormValue("content"),
		SkillCategory: c.FormValue("skill_category"),
		SkillLevel:    c.FormValue("skill_level"),
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var images, videos []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		images = form.File["images"]
		videos = form.File["video"]
	}
	if len(images) > models.MaxImagesPerPost {
		return echo.NewHTTPError(http.StatusBadRequest,
			"At most "+strconv.Itoa(models.MaxImagesPerPost)+" images are allowed per post")
	}
	if len(videos) > models.MaxVideosPerPost {
		return echo.NewHTTPError(http.StatusBadRequest, "At most one video is allowed per post")
	}

	post := &models.Post{
		UserID:        currentUserID,
		Title:         req.Title,
		Content:       req.Content,
		SkillCategory: req.SkillCategory,
		SkillLevel:    req.SkillLevel,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for i, header := range images {
		if err := h.storeAttachment(c, post.ID, models.MediaImage, header, i); err != nil {
			return err
		}
	}
	for _, header := range videos {
		if err := h.storeAttachment(c, post.ID, models.MediaVideo, header, 0); err != nil {
			return err
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": post})
}

func (h *PostHandler) storeAttachment(c echo.Context, postID uint, kind models.MediaKind, header *multipart.FileHeader, position int) error {
	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read attachment "+header.Filename)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read attachment "+header.Filename)
	}

	media := &models.Media{
		PostID:   postID,
		Kind:     kind,
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
		Position: position,
	}
	if err := h.mediaRepository.AddMedia(c.Request().Context(), media); err != nil {
		h.logger.Error("attachment store failed",
			zap.Uint("post_id", postID), zap.String("filename", header.Filename), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store attachment")
	}
	return nil
}

// GetPost retrieves a post by ID, with its attachment metadata.
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	media, err := h.mediaRepository.GetMediaByPostID(c.Request().Context(), postID)
	if err != nil {
		h.logger.Warn("attachment lookup failed", zap.Uint("post_id", postID), zap.Error(err))
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"post": post, "media": media}})
}

// GetPosts retrieves a page of posts, newest first. With ?user_id= the page
// is scoped to one author.
func (h *PostHandler) GetPosts(c echo.Context) error {
	page, limit := parsePagination(c)

	var posts []models.Post
	var total int64
	var err error

	if userIDParam := c.QueryParam("user_id"); userIDParam != "" {
		userID, parseErr := strconv.ParseUint(userIDParam, 10, 32)
		if parseErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user_id")
		}
		posts, total, err = h.postRepository.GetPostsByUserID(c.Request().Context(), uint(userID), page, limit)
	} else {
		posts, total, err = h.postRepository.GetAllPosts(c.Request().Context(), page, limit)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": posts},
		"meta":    pageMeta(page, limit, total),
	})
}

// UpdatePost updates an existing post. Post owner only.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := services.RequireOwner(post.UserID, currentUserID); err != nil {
		return httpError(err)
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.SkillCategory != "" {
		post.SkillCategory = req.SkillCategory
	}
	if req.SkillLevel != "" {
		post.SkillLevel = req.SkillLevel
	}

	if err := h.postRepository.UpdatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
}

// DeletePost deletes a post together with its comments, relation facts and
// attachments. Post owner only.
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := services.RequireOwner(post.UserID, currentUserID); err != nil {
		return httpError(err)
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// The relation facts are gone; drop the cached counters with them.
	h.interactions.ForgetTarget(c.Request().Context(), postID)

	// Attachments live in a different store; a cleanup failure must not fail
	// the delete.
	if err := h.mediaRepository.DeleteByPostID(c.Request().Context(), postID); err != nil {
		h.logger.Warn("attachment cleanup failed", zap.Uint("post_id", postID), zap.Error(err))
	}

	return c.NoContent(http.StatusNoContent)
}

// GetMedia streams an attachment's bytes.
func (h *PostHandler) GetMedia(c echo.Context) error {
	media, err := h.mediaRepository.GetMediaByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Media not found")
	}

	mimeType := media.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, mimeType, media.Data)
}

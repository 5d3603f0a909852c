package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rahman/skillshare-backend/internal/apperrors"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
)

// getUserIDFromContext extracts the authenticated user ID set by the auth
// middleware. Returns 0 when unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	if claims, ok := c.Get("user").(*models.JwtCustomClaims); ok {
		return claims.UserID
	}
	if userID, ok := c.Get("userID").(uint); ok {
		return userID
	}
	return 0
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// parsePagination reads page/limit query params with bounded defaults.
func parsePagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return page, limit
}

// httpError maps service errors onto HTTP responses. Forbidden and NotFound
// stay distinct; validation details are surfaced to the caller.
func httpError(err error) error {
	switch {
	case apperrors.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperrors.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case apperrors.IsForbidden(err):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case apperrors.IsUnavailable(err):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Service temporarily unavailable")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// pageMeta builds the standard pagination envelope.
func pageMeta(page, limit int, total int64) echo.Map {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return echo.Map{
		"currentPage":     page,
		"totalPages":      totalPages,
		"totalItems":      total,
		"itemsPerPage":    limit,
		"hasNextPage":     page < totalPages,
		"hasPreviousPage": page > 1,
	}
}

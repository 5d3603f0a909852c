package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/tanvir-rahman/skillshare-backend/internal/repositories"
)

// FirebaseAuthMiddleware creates an Echo middleware to verify Firebase ID
// tokens. The verified Firebase UID is resolved to a local user so downstream
// handlers see the same identity a local JWT would give them.
func FirebaseAuthMiddleware(authClient *auth.Client, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			idToken := tokenParts[1]

			token, err := authClient.VerifyIDToken(c.Request().Context(), idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			user, err := userRepo.GetUserByFirebaseUID(c.Request().Context(), token.UID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "No account for this Firebase identity")
			}

			c.Set("firebaseUID", token.UID)
			c.Set("userID", user.ID)

			return next(c)
		}
	}
}

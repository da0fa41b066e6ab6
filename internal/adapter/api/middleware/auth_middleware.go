package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cwrs/internal/domain/service"
	"cwrs/pkg/logger"
)

type AuthMiddleware struct {
	authProvider service.AuthProvider
}

func NewAuthMiddleware(authProvider service.AuthProvider) *AuthMiddleware {
	return &AuthMiddleware{
		authProvider: authProvider,
	}
}

// Authenticate verifies the Firebase ID token in the Authorization header and
// stores its uid under "uid".
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		idToken, ok := bearerToken(authHeader)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		uid, err := m.authProvider.VerifyToken(c.Request().Context(), idToken)
		if err != nil {
			logger.Debug("Authenticate: token rejected: %v", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", uid)
		return next(c)
	}
}

// UIDFromToken verifies a raw token, for transports that cannot send headers.
func (m *AuthMiddleware) UIDFromToken(c echo.Context, token string) (string, error) {
	return m.authProvider.VerifyToken(c.Request().Context(), token)
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cwrs/internal/domain/entity"
	"cwrs/internal/domain/repository"
	"cwrs/pkg/errors"
)

// RoleMiddleware resolves the authenticated uid against the seller and buyer
// registries. It must run after AuthMiddleware.Authenticate.
type RoleMiddleware struct {
	userRepo repository.UserRepository
}

func NewRoleMiddleware(userRepo repository.UserRepository) *RoleMiddleware {
	return &RoleMiddleware{
		userRepo: userRepo,
	}
}

func (m *RoleMiddleware) require(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("uid").(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			user, err := m.userRepo.FindByID(c.Request().Context(), uid)
			if err != nil {
				if errors.Is(err, "NOT_FOUND") {
					return echo.NewHTTPError(http.StatusForbidden, "Account is not registered")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify account role")
			}

			if user.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "This action requires a "+string(role)+" account")
			}

			c.Set("role", user.Role)
			return next(c)
		}
	}
}

func (m *RoleMiddleware) SellerOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(entity.RoleSeller)(next)
}

func (m *RoleMiddleware) BuyerOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(entity.RoleBuyer)(next)
}

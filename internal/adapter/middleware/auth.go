package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	userDomain "gmfn-backend/internal/domain/user"
)

// ContextUserKey is where RequireUser stores the resolved caller.
const ContextUserKey = "current_user"

// RequireUser resolves the caller from the X-User-Id header against the
// user store. Credential issuance lives outside this service; the header
// carries an already-authenticated identity.
func RequireUser(users userDomain.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get("X-User-Id"))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing X-User-Id"})
			}
			uid, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || uid == 0 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid X-User-Id"})
			}
			u, err := users.GetByID(c.Request().Context(), uid)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown user"})
				}
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "user lookup failed"})
			}
			c.Set(ContextUserKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the caller resolved by RequireUser, or nil.
func CurrentUser(c echo.Context) *userDomain.User {
	u, _ := c.Get(ContextUserKey).(*userDomain.User)
	return u
}

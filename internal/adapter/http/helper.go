package http

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"gmfn-backend/internal/adapter/middleware"
	"gmfn-backend/internal/usecase/member"
)

func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}

// resolveCaller builds the clan-scoped caller context for the
// authenticated user set by the RequireUser middleware.
func resolveCaller(c echo.Context, members *member.Usecase) (*member.Context, error) {
	u := middleware.CurrentUser(c)
	return members.Resolve(c.Request().Context(), u.ID)
}

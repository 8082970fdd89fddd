package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csuniv/election-system/internal/core/domain"
)

// requireAdmin extracts the role claim injected by the Auth middleware and
// performs a fast-fail check before any service call. Presence of a role
// proves the middleware ran; anything but the admin role is rejected even if
// the route group's RBAC was misconfigured.
func requireAdmin(c echo.Context) error {
	role, _ := c.Get("role").(string)
	if role == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if role != domain.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "admin access required")
	}
	return nil
}

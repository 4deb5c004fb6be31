package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// StaffOnly guards admin routes with a static bearer token. Real user auth is
// out of scope; staff endpoints just need to be unreachable from the public
// storefront.
func StaffOnly(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return echo.NewHTTPError(http.StatusForbidden, "staff access not configured")
			}

			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			supplied, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "staff token required")
			}

			return next(c)
		}
	}
}

package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darasa/console/core/access"
	"github.com/darasa/console/core/identity"
	"github.com/darasa/console/core/nav"
	"github.com/darasa/console/core/session"
)

// guardMiddleware runs the authorization guard before the handler and
// translates its decision to HTTP. No roles means any authenticated session.
func guardMiddleware(provider *session.Provider, roles ...identity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			switch access.Authorize(provider.Current(), roles...) {
			case access.Render:
				return next(ctx)
			case access.Wait:
				// session still hydrating; the client should retry, not
				// bounce to the login screen
				ctx.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session loading")
			case access.RedirectLogin:
				return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
					"error":    "user not authenticated",
					"redirect": nav.ScreenLogin,
				})
			default: // access.RedirectHome
				return echo.NewHTTPError(http.StatusForbidden, echo.Map{
					"error":    "permission denied",
					"redirect": nav.ScreenDashboard,
				})
			}
		}
	}
}

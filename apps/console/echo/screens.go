package echoapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa/console/core/access"
	"github.com/darasa/console/core/nav"
	"github.com/darasa/console/core/session"
	apisvc "github.com/darasa/console/services/api"
)

type screensApi struct {
	provider *session.Provider
	client   *apisvc.Client
}

// registerScreensAPI exposes the screen-data proxy: every protected screen
// fetches its payload through here so the route table is enforced in one
// place. client may be nil when no platform API is configured (DEV).
func registerScreensAPI(g *echo.Group, provider *session.Provider, client *apisvc.Client) {
	api := screensApi{provider: provider, client: client}
	g.GET("/screens/:screen", api.retrieve)
	g.GET("/screens/:screen/:sub", api.retrieve)
}

func (api *screensApi) retrieve(ctx echo.Context) error {
	screen := nav.Screen(ctx.Param("screen"))
	if sub := ctx.Param("sub"); sub != "" {
		screen = nav.Screen(string(screen) + "/" + sub)
	}
	route, ok := access.RouteFor(screen)
	if !ok {
		return errHttpNotFound
	}

	switch access.Authorize(api.provider.Current(), route.AllowedRoles...) {
	case access.Wait:
		ctx.Response().Header().Set("Retry-After", "1")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "session loading")
	case access.RedirectLogin:
		return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
			"error":    "user not authenticated",
			"redirect": nav.ScreenLogin,
		})
	case access.RedirectHome:
		return echo.NewHTTPError(http.StatusForbidden, echo.Map{
			"error":    "permission denied",
			"redirect": nav.ScreenDashboard,
		})
	}

	if api.client == nil {
		// DEV without a platform API: the screen renders, there is just
		// nothing to put on it
		return ctx.JSON(http.StatusOK, echo.Map{"screen": screen, "data": nil})
	}

	var data json.RawMessage
	if err := api.client.Get(ctx.Request().Context(), "/"+string(screen), &data); err != nil {
		if errors.Cause(err) == apisvc.ErrSessionExpired {
			// token went stale mid-session; the client already forced the
			// logout, send the user back to the login screen
			return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
				"error":    err.Error(),
				"redirect": nav.ScreenLogin,
			})
		}
		return errors.Wrapf(err, "fetching %s data", screen)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"screen": screen, "data": data})
}

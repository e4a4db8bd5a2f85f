package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa/console/core/access"
	"github.com/darasa/console/core/identity"
	"github.com/darasa/console/core/nav"
	"github.com/darasa/console/core/session"
)

type sessionApi struct {
	provider *session.Provider
}

func registerSessionAPI(g *echo.Group, provider *session.Provider) {
	api := sessionApi{provider: provider}

	// public endpoints
	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/register", api.register)
	ag.POST("/logout", api.logout)

	// endpoints below require an authenticated session
	sg := g.Group("/session", guardMiddleware(provider))
	sg.GET("", api.retrieve)
	sg.PATCH("/identity", api.updateIdentity)

	g.GET("/navigation", api.navigation, guardMiddleware(provider))
	g.GET("/authorize", api.authorize)
}

// Handlers

func (api *sessionApi) login(ctx echo.Context) error {
	var creds identity.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}

	if err := api.provider.Login(ctx.Request().Context(), creds); err != nil {
		return err
	}

	// the routing layer resolves the generic dashboard to a role-specific one
	return ctx.JSON(http.StatusOK, echo.Map{
		"user":     api.provider.Identity(),
		"redirect": nav.ScreenDashboard,
	})
}

func (api *sessionApi) register(ctx echo.Context) error {
	var reg identity.Registration
	if err := ctx.Bind(&reg); err != nil {
		return errors.Wrap(err, "binding to Registration")
	}

	// registration never authenticates; the caller logs in next
	ident, err := api.provider.Register(ctx.Request().Context(), reg)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ident)
}

func (api *sessionApi) logout(ctx echo.Context) error {
	api.provider.Logout()
	return ctx.JSON(http.StatusOK, echo.Map{"redirect": nav.ScreenLogin})
}

func (api *sessionApi) retrieve(ctx echo.Context) error {
	sess := api.provider.Current()
	return ctx.JSON(http.StatusOK, echo.Map{
		"authenticated": sess.IsAuthenticated(),
		"user":          sess.Identity,
	})
}

func (api *sessionApi) updateIdentity(ctx echo.Context) error {
	var patch identity.Patch
	if err := ctx.Bind(&patch); err != nil {
		return errors.Wrap(err, "binding to Patch")
	}

	if err := api.provider.UpdateIdentity(patch); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.provider.Identity())
}

func (api *sessionApi) navigation(ctx echo.Context) error {
	role := api.provider.Current().Role()
	return ctx.JSON(http.StatusOK, echo.Map{
		"entries": nav.For(role),
		"landing": nav.DefaultLandingFor(role),
	})
}

// authorize evaluates the protected-route table for one screen and returns
// the guard's decision. Unknown screens 404 rather than leak a decision.
func (api *sessionApi) authorize(ctx echo.Context) error {
	screen := nav.Screen(ctx.QueryParam("screen"))
	route, ok := access.RouteFor(screen)
	if !ok {
		return errHttpNotFound
	}

	decision := access.Authorize(api.provider.Current(), route.AllowedRoles...)
	resp := echo.Map{"decision": decision.String()}
	switch decision {
	case access.RedirectLogin:
		resp["redirect"] = nav.ScreenLogin
	case access.RedirectHome:
		resp["redirect"] = nav.ScreenDashboard
	}
	return ctx.JSON(http.StatusOK, resp)
}

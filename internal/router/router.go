// Package router defines how HTTP routes are registered for the API.  The
// whole surface is one static table; each route declares whether it needs
// an authenticated caller, and Register derives its middleware chain from
// that.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/little-lemon/internal/config"
	"github.com/iliyamo/little-lemon/internal/handler"
	"github.com/iliyamo/little-lemon/internal/middleware"
)

// Access is the capability a route requires.
type Access int

const (
	// Public routes run for anyone.
	Public Access = iota
	// RequiresAuth routes run only after TokenAuth admitted the caller.
	RequiresAuth
)

func (a Access) String() string {
	if a == RequiresAuth {
		return "requires-auth"
	}
	return "public"
}

// Route is one entry of the route table.  IDParam names a numeric path
// parameter that must be validated before the handler runs.
type Route struct {
	Method  string
	Path    string
	Access  Access
	IDParam string
	Handler echo.HandlerFunc
}

// Deps carries everything the handlers need.  Events and Redis are
// optional.
type Deps struct {
	Cfg       config.Config
	DB        handler.Pinger
	MenuItems handler.MenuItemStore
	Bookings  handler.BookingStore
	Users     handler.UserStore
	Tokens    handler.TokenStore
	Events    handler.EventPublisher
	Redis     *redis.Client
}

// Routes builds the route table.
//
// The single menu item endpoint is public while the menu collection is
// not; that split is deliberate and must not be "fixed" here.
func Routes(d Deps) []Route {
	items := handler.NewMenuItemHandler(d.MenuItems)
	bookings := handler.NewBookingHandler(d.Bookings, d.Events)
	auth := handler.NewAuthHandler(d.Cfg, d.Users, d.Tokens)

	return []Route{
		{Method: http.MethodGet, Path: "/", Access: Public, Handler: handler.Index},
		{Method: http.MethodGet, Path: "/healthz", Access: Public, Handler: handler.Health(d.DB)},

		{Method: http.MethodGet, Path: "/menu-items/", Access: RequiresAuth, Handler: items.List},
		{Method: http.MethodPost, Path: "/menu-items/", Access: RequiresAuth, Handler: items.Create},
		{Method: http.MethodGet, Path: "/menu-items/:id", Access: Public, IDParam: "id", Handler: items.Get},
		{Method: http.MethodPut, Path: "/menu-items/:id", Access: Public, IDParam: "id", Handler: items.Update},
		{Method: http.MethodPatch, Path: "/menu-items/:id", Access: Public, IDParam: "id", Handler: items.Update},
		{Method: http.MethodDelete, Path: "/menu-items/:id", Access: Public, IDParam: "id", Handler: items.Delete},

		{Method: http.MethodGet, Path: "/booking/tables/", Access: RequiresAuth, Handler: bookings.List},
		{Method: http.MethodPost, Path: "/booking/tables/", Access: RequiresAuth, Handler: bookings.Create},
		{Method: http.MethodGet, Path: "/booking/tables/:id/", Access: RequiresAuth, IDParam: "id", Handler: bookings.Get},
		{Method: http.MethodPut, Path: "/booking/tables/:id/", Access: RequiresAuth, IDParam: "id", Handler: bookings.Update},
		{Method: http.MethodPatch, Path: "/booking/tables/:id/", Access: RequiresAuth, IDParam: "id", Handler: bookings.Update},
		{Method: http.MethodDelete, Path: "/booking/tables/:id/", Access: RequiresAuth, IDParam: "id", Handler: bookings.Delete},

		{Method: http.MethodPost, Path: "/api-token-auth/", Access: Public, Handler: auth.ObtainToken},
		{Method: http.MethodPost, Path: "/auth/users/", Access: Public, Handler: auth.Register},
		{Method: http.MethodGet, Path: "/auth/users/me/", Access: RequiresAuth, Handler: auth.Me},
		{Method: http.MethodPost, Path: "/auth/token/logout/", Access: RequiresAuth, Handler: auth.Logout},
	}
}

// Register adds every route of the table to e.  The chain is: token check
// (RequiresAuth only), then the rate limiter, then the id guard.  The
// limiter runs after authentication so it can key buckets by user.
func Register(e *echo.Echo, d Deps) {
	tokenAuth := middleware.TokenAuth(d.Cfg.JWTSecret, d.Tokens)
	limiter := middleware.NewTokenBucket(d.Cfg.RateLimit, d.Redis)

	for _, r := range Routes(d) {
		var chain []echo.MiddlewareFunc
		if r.Access == RequiresAuth {
			chain = append(chain, tokenAuth)
		}
		chain = append(chain, limiter)
		if r.IDParam != "" {
			chain = append(chain, middleware.NumericParam(r.IDParam))
		}
		e.Add(r.Method, r.Path, r.Handler, chain...)
	}
}

package handler

import (
	"github.com/gofiber/fiber/v2"
)

// NewApp builds the fiber app the routes below are mounted on. Matching must
// be exact: the protection table keys on the raw request path, so a lax
// router that also accepts case or trailing-slash variants would route them
// to a protected handler while the table lookup misses.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		CaseSensitive: true,
		StrictRouting: true,
	})
}

// DefaultRoutePolicy mirrors the route table below: everything is public
// unless listed here.
func DefaultRoutePolicy() RoutePolicy {
	return RoutePolicy{
		DefaultProtected: false,
		Routes: map[string]bool{
			"GET /api/v1/auth/me":        true,
			"DELETE /api/v1/auth/logout": true,
		},
	}
}

func RegisterRoutes(app *fiber.App, h *AuthHandler, guard *AccessGuard) {
	app.Use(guard.Handle)

	auth := app.Group("/api/v1/auth")
	auth.Post("/local/signup", h.Signup)
	auth.Post("/local/login", h.Login)
	auth.Get("/refresh", h.Refresh)
	auth.Get("/me", h.Me)
	auth.Delete("/logout", h.Logout)
}

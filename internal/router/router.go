// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/yourspace/yourspace-api/internal/handler"
	"github.com/yourspace/yourspace-api/internal/middleware"
)

// RegisterRoutes registers routes that carry no authentication at all.
// Currently only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register, login,
// refresh and logout live under /v1/auth and need no session; /v1/me sits
// behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token; /refresh-access only mints a new
	// access token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout works with either a Bearer token (all sessions) or a
	// refresh_token body (one session), so it stays outside the JWT
	// middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER", "ADMIN"),
	)
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints: spaces,
// their slots, and per-slot occupancy views. cacheMW is the Redis
// response cache; pass echo middleware that no-ops when caching is off.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheMW echo.MiddlewareFunc) {
	g := e.Group("/v1", cacheMW)
	g.GET("/spaces", p.ListSpaces)
	g.GET("/spaces/:id", p.GetSpace)
	g.GET("/spaces/:id/slots", p.ListSlots)
	g.GET("/slots/:id/occupancy", p.GetOccupancy)
}

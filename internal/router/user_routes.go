package router

import (
	"github.com/labstack/echo/v4"

	"github.com/yourspace/yourspace-api/internal/handler"
	"github.com/yourspace/yourspace-api/internal/middleware"
)

// RegisterUser registers the user-scoped endpoints under /v1. All routes
// require a valid JWT; both USER and ADMIN roles may book seats and
// manage their own profile. rateMW is the Redis token-bucket limiter
// shielding the write-heavy booking routes.
func RegisterUser(e *echo.Echo, b *handler.BookingHandler, p *handler.ProfileHandler, jwtSecret string, rateMW echo.MiddlewareFunc) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER", "ADMIN"),
	)

	// Bookings. Creation and transitions go through the resolver.
	g.POST("/slots/:id/book", b.Create, rateMW)
	g.GET("/bookings/:id", b.Get)
	g.POST("/bookings/:id/pay", b.Pay, rateMW)
	g.DELETE("/bookings/:id", b.Cancel, rateMW)
	g.GET("/my-bookings", b.List)

	// Profile and notifications.
	g.GET("/profile", p.Get)
	g.PUT("/profile", p.Update)
	g.PUT("/profile/settings", p.UpdateSettings)
	g.POST("/profile/avatar", p.UploadAvatar)
	g.GET("/notifications", p.ListNotifications)
	g.POST("/notifications/:id/read", p.MarkNotificationRead)
}

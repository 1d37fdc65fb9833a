package router

import (
	"github.com/labstack/echo/v4"

	"github.com/yourspace/yourspace-api/internal/handler"
	"github.com/yourspace/yourspace-api/internal/middleware"
)

// RegisterAdmin registers the ADMIN-scoped management endpoints under
// /v1. All routes require a valid JWT and the ADMIN role. Read access to
// spaces and slots is served by the public browse API, so only mutations
// and booking oversight live here.
func RegisterAdmin(e *echo.Echo, sp *handler.AdminSpaceHandler, sl *handler.AdminSlotHandler, jwtSecret string) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// Spaces.
	g.POST("/spaces", sp.Create)
	g.PUT("/spaces/:id", sp.Update)
	g.PATCH("/spaces/:id", sp.Update)
	g.DELETE("/spaces/:id", sp.Delete)

	// Slots.
	g.POST("/spaces/:id/slots", sl.CreateSlot)
	g.DELETE("/slots/:id", sl.DeleteSlot)
	g.GET("/slots/:id/bookings", sl.ListSlotBookings)

	// Onsite payment confirmation.
	g.POST("/bookings/:id/confirm-onsite", sl.ConfirmOnsite)
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/excursion-booking/internal/handler"
	"github.com/iliyamo/excursion-booking/internal/middleware"
	"github.com/iliyamo/excursion-booking/internal/model"
)

// RegisterModeration registers the excursion review queue under
// /api/moderation.  MODERATOR role only.
func RegisterModeration(e *echo.Echo, h *handler.ModerationHandler, jwtSecret string) {
	g := e.Group(
		"/api/moderation",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleModerator),
	)
	g.GET("/excursions", h.ListPending)
	g.POST("/excursions/:id/approve", h.Approve)
}

// RegisterAdmin registers the moderator back-office under /api/admin:
// global booking and excursion visibility plus guide application
// review.  MODERATOR role only.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleModerator),
	)
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.GET("/excursions", h.ListExcursions)
	g.GET("/guides", h.ListGuides)
	g.GET("/guides/pending", h.ListGuideApplications)
	g.POST("/guides/:user_id/approve", h.DecideGuide)
}

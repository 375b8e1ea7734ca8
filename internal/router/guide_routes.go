package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/excursion-booking/internal/handler"
	"github.com/iliyamo/excursion-booking/internal/middleware"
	"github.com/iliyamo/excursion-booking/internal/model"
)

// RegisterGuide registers the guide surface under /api/guides.  The
// routes only verify the JWT; guide capability itself is resolved per
// request inside the handlers against the guides table, so revoking a
// profile takes effect immediately without waiting for token expiry.
func RegisterGuide(e *echo.Echo, h *handler.GuideHandler, jwtSecret string) {
	g := e.Group(
		"/api/guides",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleClient, model.RoleModerator),
	)
	g.GET("/check", h.Check)
	g.GET("/me", h.Me)
	g.PATCH("/me", h.UpdateProfile)

	g.GET("/me/excursions", h.MyExcursions)
	g.POST("/me/excursions", h.CreateExcursion)
	// Any edit regresses an approved excursion back to pending_review.
	g.PATCH("/me/excursions/:id", h.UpdateExcursion)

	g.GET("/me/bookings", h.BookingsCalendar)
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/excursion-booking/internal/handler"
	"github.com/iliyamo/excursion-booking/internal/middleware"
	"github.com/iliyamo/excursion-booking/internal/model"
)

// RegisterClient registers booking endpoints under /api.  All routes
// require a valid JWT; both roles may book (a moderator booking an
// excursion acts as an ordinary client).  Upload is registered here
// too since both clients-turned-guides and guides push photos through
// the same endpoint.
func RegisterClient(e *echo.Echo, b *handler.BookingHandler, up *handler.UploadHandler, jwtSecret string) {
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleClient, model.RoleModerator),
	)
	g.POST("/bookings", b.Create)
	g.GET("/bookings", b.List)
	g.DELETE("/bookings/:id", b.Cancel)

	g.POST("/uploads/excursion-photo", up.Photo)
}

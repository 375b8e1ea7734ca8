package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/excursion-booking/internal/config"
	"github.com/iliyamo/excursion-booking/internal/handler"
	"github.com/iliyamo/excursion-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /api/auth, while /api/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token: the old one is revoked, a new pair issued.
	g.POST("/refresh", a.Refresh)
	// Logout does not require JWT authentication.  The handler accepts a
	// JSON body containing a `refresh_token` and invalidates that token,
	// so sessions can be terminated even with an expired access token.
	g.POST("/logout", a.Logout)

	auth := e.Group("/api/auth", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints.  These
// routes return approved excursions only and apply no JWT or role
// middleware; the excursion list and detail responses are additionally
// served from the Redis cache when enabled.
//
// The available-dates projection is intentionally NOT cached: it is an
// advisory snapshot of remaining capacity and a stale copy would report
// seats a concurrent booking already took.
func RegisterPublic(e *echo.Echo, h *handler.ExcursionHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.NewRedisCache(cacheCfg, rdb)
	e.GET("/api/excursions", h.Search, cached)
	e.GET("/api/excursions/:id", h.GetByID, cached)
	e.GET("/api/excursions/:id/available-dates", h.AvailableDates)
}

// Package router defines how HTTP routes are registered for the API.
package router

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
)

const landingPage = `<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8"><title>Event Ticketing API</title></head><body><h1>Event Ticketing API</h1><p>REST endpoints live under /api.</p></body></html>`

const notFoundPage = `<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8"><title>404</title></head><body><h1>404</h1><p>Nothing here.</p></body></html>`

// Register wires every route of the service onto the Echo instance.
//
// Public surface: health check, landing page, event browsing and the
// unauthenticated check-in validation endpoint.  Authenticated
// surface: bookings for the "user" role, event mutations for "admin".
// The auth endpoints sit behind the Redis rate limiter.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, a *handler.AuthHandler, ev *handler.EventHandler, b *handler.BookingHandler) {
	e.HTTPErrorHandler = notFoundAware(e)

	e.GET("/healthz", handler.Health)
	e.GET("/", func(c echo.Context) error {
		if wantsHTML(c) {
			return c.HTML(http.StatusOK, landingPage)
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": "404 Not Found"})
	})

	limiter := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	auth := e.Group("/api/auth", limiter)
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)

	// Public event browsing.
	e.GET("/api/events", ev.List)
	e.GET("/api/events/:id", ev.Get)

	// Event mutations require the admin role.
	admin := e.Group("/api/events",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole("admin"),
	)
	admin.POST("", ev.Create)
	admin.PUT("/:id", ev.Update)
	admin.DELETE("/:id", ev.Delete)

	// Door staff scan codes without a session.
	e.GET("/api/bookings/validate/:id", b.Validate)

	// Booking lifecycle for authenticated users.
	user := e.Group("/api/bookings",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole("user"),
	)
	user.POST("", b.Create)
	user.GET("", b.List)
	user.GET("/:id", b.Get)
	user.DELETE("/:id", b.Delete)
}

// wantsHTML reports whether the client prefers an HTML response.
func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), echo.MIMETextHTML)
}

// notFoundAware wraps Echo's default error handler so unknown routes
// answer browsers with a small HTML page and API clients with JSON.
func notFoundAware(e *echo.Echo) echo.HTTPErrorHandler {
	base := e.DefaultHTTPErrorHandler
	return func(err error, c echo.Context) {
		if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusNotFound {
			if c.Response().Committed {
				return
			}
			if wantsHTML(c) {
				_ = c.HTML(http.StatusNotFound, notFoundPage)
			} else {
				_ = c.JSON(http.StatusNotFound, echo.Map{"error": "404 Not Found"})
			}
			return
		}
		base(err, c)
	}
}

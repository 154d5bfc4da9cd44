// Package router maps the HTTP surface onto handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/handler"
	"github.com/iliyamo/event-seat-reservation/internal/middleware"
)

// RegisterRoutes registers the routes that require no authentication at
// all: the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers account and session endpoints. Organizer
// registration, login, refresh and the invitation-driven guest
// registration are all public; the token work happens inside.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/v1/users", a.Register)
	e.POST("/v1/sessions", a.Login)
	e.POST("/v1/sessions/refresh", a.Refresh)
	e.POST("/v1/register-guest", a.RegisterGuest)
}

// RegisterOrganizer registers venue, event, table and invitation
// management. Every route requires a valid token with the ORGANIZER or
// ADMIN role; ownership of individual events is enforced in the
// services.
func RegisterOrganizer(e *echo.Echo, l *handler.LocationHandler, s *handler.SpaceHandler,
	ev *handler.EventHandler, t *handler.TableHandler, inv *handler.InvitationHandler, jwtSecret string) {

	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ORGANIZER", "ADMIN"))

	g.POST("/locations", l.Create)
	g.GET("/locations", l.List)
	g.GET("/locations/:id", l.Get)
	g.PUT("/locations/:id", l.Update)

	g.POST("/spaces", s.Create)
	g.GET("/spaces", s.List)
	g.GET("/spaces/:id", s.Get)
	g.PUT("/spaces/:id", s.Update)
	g.GET("/locations/:id/spaces", s.ListByLocation)

	g.POST("/events", ev.Create)
	g.GET("/events", ev.List)
	g.GET("/events/:id", ev.Get)
	g.PUT("/events/:id", ev.Update)
	g.DELETE("/events/:id", ev.Delete)

	g.POST("/events/:id/tables", t.Create)
	g.POST("/events/:id/invitations", inv.CreateBatch)
}

// RegisterGuest registers the reservation endpoints, invitation
// acceptance and the seating layout. Any authenticated role may call
// them; the services gate reservations on an accepted invitation
// rather than on the role.
func RegisterGuest(e *echo.Echo, r *handler.ReservationHandler, inv *handler.InvitationHandler,
	ev *handler.EventHandler, jwtSecret string) {

	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))

	g.POST("/invitations/accept", inv.Accept)
	g.GET("/events/:id/layout", ev.Layout)

	g.POST("/events/:id/reservations", r.Create)
	g.PATCH("/events/:id/reservations/me", r.Switch)
	g.DELETE("/events/:id/reservations/me", r.Cancel)
}

// RegisterPublic registers the endpoints a visitor can reach without a
// session: the invitation preview a guest sees before registering. The
// preview is caller-independent, so it runs behind the response cache.
func RegisterPublic(e *echo.Echo, inv *handler.InvitationHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/invitations/preview", inv.Preview, cache)
}

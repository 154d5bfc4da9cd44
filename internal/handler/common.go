// Package handler exposes the HTTP surface. Handlers bind and validate
// request bodies, hand typed input to the services, and translate
// classified service errors into status codes. No business rule lives
// here.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/service"
)

// callerFrom builds the service caller from the identity the JWT
// middleware stored in context.
func callerFrom(c echo.Context) service.Caller {
	uid, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	return service.Caller{UserID: uid, Role: model.Role(role)}
}

// currentUserID returns the authenticated user ID stored by the JWT
// middleware, or "" when no identity was resolved.
func currentUserID(c echo.Context) string {
	uid, _ := c.Get("user_id").(string)
	return uid
}

// respondServiceError maps a classified service error onto its HTTP
// status. Internal failures are logged with their cause; the client
// only ever sees the safe message.
func respondServiceError(c echo.Context, err error) error {
	se, ok := err.(*service.Error)
	if !ok {
		c.Logger().Errorf("unclassified error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	status := http.StatusInternalServerError
	switch se.Kind {
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindForbidden:
		status = http.StatusForbidden
	case service.KindConflict:
		status = http.StatusConflict
	case service.KindValidation:
		status = http.StatusBadRequest
	case service.KindUnauthorized:
		status = http.StatusUnauthorized
	case service.KindInternal:
		c.Logger().Errorf("%s: %v", se.Message, se.Err)
	}
	return c.JSON(status, echo.Map{"error": se.Message})
}

package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/service"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRespondServiceError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", &service.Error{Kind: service.KindNotFound, Message: "event not found"}, http.StatusNotFound, "event not found"},
		{"forbidden", &service.Error{Kind: service.KindForbidden, Message: "not yours"}, http.StatusForbidden, "not yours"},
		{"conflict", &service.Error{Kind: service.KindConflict, Message: "seat taken"}, http.StatusConflict, "seat taken"},
		{"validation", &service.Error{Kind: service.KindValidation, Message: "bad input"}, http.StatusBadRequest, "bad input"},
		{"unauthorized", &service.Error{Kind: service.KindUnauthorized, Message: "invalid credentials"}, http.StatusUnauthorized, "invalid credentials"},
		{"internal hides the cause", &service.Error{Kind: service.KindInternal, Message: "failed to load event", Err: errors.New("sql: db closed")}, http.StatusInternalServerError, "failed to load event"},
		{"unclassified", errors.New("sql: db closed"), http.StatusInternalServerError, "internal error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t)

			require.NoError(t, respondServiceError(c, tc.err))
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.body)
			assert.NotContains(t, rec.Body.String(), "db closed")
		})
	}
}

func TestCallerFrom(t *testing.T) {
	c, _ := newTestContext(t)
	c.Set("user_id", "user-1")
	c.Set("role", "ORGANIZER")

	caller := callerFrom(c)
	assert.Equal(t, "user-1", caller.UserID)
	assert.Equal(t, model.RoleOrganizer, caller.Role)

	anon, _ := newTestContext(t)
	assert.Equal(t, "", currentUserID(anon))
	assert.Equal(t, service.Caller{}, callerFrom(anon))
}

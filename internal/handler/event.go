package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/service"
)

// EventHandler exposes the event lifecycle and the public layout view.
type EventHandler struct {
	Events *service.EventService
}

func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{Events: events}
}

type createEventReq struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	LocationID  string    `json:"location_id"`
}

// updateEventReq uses json.RawMessage for description so that an
// explicit null (clear it) differs from the field being absent.
type updateEventReq struct {
	Title       *string          `json:"title"`
	Description *json.RawMessage `json:"description"`
	Date        *time.Time       `json:"date"`
}

type eventResp struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	OrganizerID string    `json:"organizer_id"`
	LocationID  string    `json:"location_id"`
}

func toEventResp(e *model.Event) eventResp {
	return eventResp{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		OrganizerID: e.OrganizerID,
		LocationID:  e.LocationID,
	}
}

type eventDetailResp struct {
	eventResp
	Location struct {
		Name             string `json:"name"`
		Address          string `json:"address"`
		MaxTables        int    `json:"max_tables"`
		MaxSeatsPerTable int    `json:"max_seats_per_table"`
	} `json:"location"`
	Counts struct {
		Tables       int `json:"tables"`
		Invitations  int `json:"invitations"`
		Reservations int `json:"reservations"`
	} `json:"counts"`
}

// Create schedules a new event.
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.LocationID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location_id is required"})
	}
	if req.Date.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}

	event, err := h.Events.Create(c.Request().Context(), callerFrom(c), service.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		LocationID:  req.LocationID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toEventResp(event))
}

// Get returns one owned event.
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.Events.GetByID(c.Request().Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toEventResp(event))
}

// List returns the caller's events with venue and child counts.
func (h *EventHandler) List(c echo.Context) error {
	details, err := h.Events.ListByOrganizer(c.Request().Context(), callerFrom(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	out := make([]eventDetailResp, 0, len(details))
	for i := range details {
		d := &details[i]
		var r eventDetailResp
		r.eventResp = toEventResp(&d.Event)
		r.Location.Name = d.LocationName
		r.Location.Address = d.LocationAddress
		r.Location.MaxTables = d.MaxTables
		r.Location.MaxSeatsPerTable = d.MaxSeatsPerTable
		r.Counts.Tables = d.TablesCount
		r.Counts.Invitations = d.InvitationsCount
		r.Counts.Reservations = d.ReservationsCount
		out = append(out, r)
	}
	return c.JSON(http.StatusOK, out)
}

// Update applies a partial update to an owned event.
func (h *EventHandler) Update(c echo.Context) error {
	var req updateEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	in := service.UpdateEventInput{Title: req.Title, Date: req.Date}
	if req.Description != nil {
		in.DescriptionSet = true
		if string(*req.Description) != "null" {
			var desc string
			if err := json.Unmarshal(*req.Description, &desc); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "description must be a string or null"})
			}
			in.Description = &desc
		}
	}

	event, err := h.Events.Update(c.Request().Context(), callerFrom(c), c.Param("id"), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toEventResp(event))
}

// Delete removes an owned event and everything under it.
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.Events.Delete(c.Request().Context(), callerFrom(c), c.Param("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Layout returns the seating chart with per-seat occupancy. Any
// authenticated user may view it; the caller's own seat is flagged.
func (h *EventHandler) Layout(c echo.Context) error {
	layout, err := h.Events.GetLayout(c.Request().Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, layout)
}

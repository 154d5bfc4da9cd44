package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/queue"
	"github.com/iliyamo/event-seat-reservation/internal/service"
)

// ReservationHandler exposes seat claiming, switching and cancellation
// for invited guests.
type ReservationHandler struct {
	Reservations *service.ReservationService
}

func NewReservationHandler(reservations *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Reservations: reservations}
}

type reserveSeatReq struct {
	SeatID string `json:"seat_id"`
}

type reservationResp struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	SeatID  string `json:"seat_id"`
}

func toReservationResp(r *model.Reservation) reservationResp {
	return reservationResp{ID: r.ID, EventID: r.EventID, UserID: r.UserID, SeatID: r.SeatID}
}

// Create claims a seat for the caller. A confirmation event is
// published to the broker afterwards; broker failures never fail the
// reservation.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reserveSeatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SeatID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id is required"})
	}

	r, err := h.Reservations.Create(c.Request().Context(), c.Param("id"), currentUserID(c), req.SeatID)
	if err != nil {
		return respondServiceError(c, err)
	}

	publishConfirmed(r)
	return c.JSON(http.StatusCreated, toReservationResp(r))
}

// Switch moves the caller's reservation to another seat of the event.
func (h *ReservationHandler) Switch(c echo.Context) error {
	var req reserveSeatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SeatID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id is required"})
	}

	r, err := h.Reservations.SwitchSeat(c.Request().Context(), c.Param("id"), currentUserID(c), req.SeatID)
	if err != nil {
		return respondServiceError(c, err)
	}

	publishConfirmed(r)
	return c.JSON(http.StatusOK, toReservationResp(r))
}

// Cancel drops the caller's reservation for the event.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	if err := h.Reservations.Cancel(c.Request().Context(), c.Param("id"), currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func publishConfirmed(r *model.Reservation) {
	ev := queue.ReservationConfirmedEvent{
		ReservationID: r.ID,
		EventID:       r.EventID,
		UserID:        r.UserID,
		SeatID:        r.SeatID,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishReservationConfirmed(ctx, ev)
	}()
}

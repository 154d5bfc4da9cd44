package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/queue"
	"github.com/iliyamo/event-seat-reservation/internal/service"
)

// InvitationHandler exposes invitation issuance, acceptance and the
// public pre-registration preview.
type InvitationHandler struct {
	Invitations *service.InvitationService
}

func NewInvitationHandler(invitations *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{Invitations: invitations}
}

type createInvitationsReq struct {
	Emails []string `json:"emails"`
}

type acceptInvitationReq struct {
	Token string `json:"token"`
}

// CreateBatch issues one PENDING invitation per distinct address for an
// owned event. Each created invitation is also announced on the broker
// so a mail worker can deliver the tokenized link; broker failures do
// not affect the response.
func (h *InvitationHandler) CreateBatch(c echo.Context) error {
	var req createInvitationsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	eventID := c.Param("id")

	result, err := h.Invitations.CreateInvitations(c.Request().Context(), callerFrom(c), eventID, req.Emails)
	if err != nil {
		return respondServiceError(c, err)
	}

	for _, created := range result.Created {
		ev := queue.InvitationCreatedEvent{
			InvitationID: created.ID,
			EventID:      eventID,
			Email:        created.Email,
			Token:        created.Token,
			CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queue.PublishInvitationCreated(ctx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, result)
}

// Accept consumes an invitation token for the authenticated caller.
func (h *InvitationHandler) Accept(c echo.Context) error {
	var req acceptInvitationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token is required"})
	}

	inv, err := h.Invitations.Accept(c.Request().Context(), req.Token, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":       inv.ID,
		"event_id": inv.EventID,
		"status":   string(inv.Status),
	})
}

// Preview resolves an invitation token into event and venue details.
// Public: a guest sees what they were invited to before registering.
func (h *InvitationHandler) Preview(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token query parameter is required"})
	}
	preview, err := h.Invitations.Preview(c.Request().Context(), token)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, preview)
}

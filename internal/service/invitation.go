package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
	"github.com/iliyamo/event-seat-reservation/internal/utils"
)

// InvitationService manages the invitation lifecycle: batch issuance
// with deduplication, idempotent acceptance, and the public preview
// shown before a guest registers.
type InvitationService struct {
	invitations InvitationStore
	events      EventStore
	users       UserStore
}

// NewInvitationService wires the service to its stores.
func NewInvitationService(invitations InvitationStore, events EventStore, users UserStore) *InvitationService {
	return &InvitationService{invitations: invitations, events: events, users: users}
}

// CreatedInvitation is one successfully issued invitation. The token is
// returned to the organizer for delivery; the platform never emails it.
type CreatedInvitation struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// SkippedInvitation records an address the batch did not invite and why.
type SkippedInvitation struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// InvitationBatchResult is the outcome of CreateInvitations. Both slices
// are always non-nil so the JSON shape is stable.
type InvitationBatchResult struct {
	Created []CreatedInvitation `json:"created"`
	Skipped []SkippedInvitation `json:"skipped"`
}

const reasonPendingExists = "pending invitation already exists"

// CreateInvitations issues one PENDING invitation per distinct address.
// Emails are normalized and deduplicated first, so a batch with repeats
// produces a single attempt per address. Addresses with a live PENDING
// invitation are skipped; an ACCEPTED one does not block a re-invite.
// Each email is processed independently; one failure does not roll back
// the others.
func (s *InvitationService) CreateInvitations(ctx context.Context, caller Caller, eventID string, emails []string) (*InvitationBatchResult, error) {
	if gerr := requireOrganizer(caller); gerr != nil {
		return nil, gerr
	}
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, internalErr("failed to load event", err)
	}
	if event == nil {
		return nil, notFound("event not found")
	}
	if gerr := requireEventOwner(event, caller); gerr != nil {
		return nil, gerr
	}
	if len(emails) == 0 {
		return nil, validation("at least one email is required")
	}

	seen := make(map[string]struct{}, len(emails))
	unique := make([]string, 0, len(emails))
	for _, raw := range emails {
		email := model.NormalizeEmail(raw)
		if email == "" {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		unique = append(unique, email)
	}

	result := &InvitationBatchResult{
		Created: []CreatedInvitation{},
		Skipped: []SkippedInvitation{},
	}
	for _, email := range unique {
		pending, err := s.invitations.FindPendingByEmailAndEvent(ctx, email, eventID)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedInvitation{Email: email, Reason: "lookup failed"})
			continue
		}
		if pending != nil {
			result.Skipped = append(result.Skipped, SkippedInvitation{Email: email, Reason: reasonPendingExists})
			continue
		}
		token, err := utils.NewInviteToken()
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedInvitation{Email: email, Reason: "token generation failed"})
			continue
		}
		inv := &model.Invitation{
			ID:      newID(),
			Email:   email,
			Token:   token,
			EventID: eventID,
			Status:  model.InvitationPending,
		}
		if err := s.invitations.Create(ctx, inv); err != nil {
			result.Skipped = append(result.Skipped, SkippedInvitation{Email: email, Reason: "persist failed"})
			continue
		}
		result.Created = append(result.Created, CreatedInvitation{ID: inv.ID, Email: email, Token: token})
	}
	return result, nil
}

// Accept consumes an invitation token for the caller. Re-acceptance by
// the same user is an idempotent success; acceptance by anyone else
// after the first is a Conflict. The invitation email must match the
// caller's account email, case-insensitively. The PENDING → ACCEPTED
// flip happens in a conditional update so two concurrent attempts
// resolve to one winner.
func (s *InvitationService) Accept(ctx context.Context, token, userID string) (*model.Invitation, error) {
	inv, err := s.invitations.FindByToken(ctx, token)
	if err != nil {
		return nil, internalErr("failed to load invitation", err)
	}
	if inv == nil {
		return nil, notFound("invitation not found")
	}

	if inv.Status == model.InvitationAccepted {
		if inv.GuestID != nil && *inv.GuestID == userID {
			return inv, nil
		}
		return nil, conflict("invitation was already used")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, internalErr("failed to load user", err)
	}
	if user == nil {
		return nil, unauthorized("account not found")
	}
	if model.NormalizeEmail(inv.Email) != model.NormalizeEmail(user.Email) {
		return nil, validation("account email does not match the invitation")
	}

	if err := s.invitations.Accept(ctx, inv.ID, userID); err != nil {
		if errors.Is(err, repository.ErrInvitationConsumed) {
			return nil, conflict("invitation was already used")
		}
		return nil, internalErr("failed to accept invitation", err)
	}
	inv.Status = model.InvitationAccepted
	inv.GuestID = &userID
	return inv, nil
}

// InvitationPreview is the public, pre-registration view of an
// invitation: enough to show the guest what they were invited to.
type InvitationPreview struct {
	Email           string  `json:"email"`
	Status          string  `json:"status"`
	EventID         string  `json:"event_id"`
	EventTitle      string  `json:"event_title"`
	EventDate       string  `json:"event_date"`
	Description     *string `json:"description"`
	LocationName    string  `json:"location_name"`
	LocationAddress string  `json:"location_address"`
}

// Preview resolves a token into event and venue details. Consumed
// invitations are not previewable.
func (s *InvitationService) Preview(ctx context.Context, token string) (*InvitationPreview, error) {
	inv, err := s.invitations.FindByToken(ctx, token)
	if err != nil {
		return nil, internalErr("failed to load invitation", err)
	}
	if inv == nil {
		return nil, notFound("invitation not found")
	}
	if inv.Status == model.InvitationAccepted {
		return nil, conflict("invitation was already used")
	}

	ewl, err := s.events.FindByIDWithLocation(ctx, inv.EventID)
	if err != nil {
		return nil, internalErr("failed to load event", err)
	}
	if ewl == nil {
		return nil, notFound("event for this invitation no longer exists")
	}

	return &InvitationPreview{
		Email:           inv.Email,
		Status:          string(inv.Status),
		EventID:         ewl.Event.ID,
		EventTitle:      ewl.Event.Title,
		EventDate:       ewl.Event.Date.UTC().Format(time.RFC3339),
		Description:     ewl.Event.Description,
		LocationName:    ewl.LocationName,
		LocationAddress: ewl.LocationAddress,
	}, nil
}

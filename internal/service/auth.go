package service

import (
	"context"
	"errors"
	"log"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
	"github.com/iliyamo/event-seat-reservation/internal/utils"
)

// AuthConfig carries the token and hashing parameters the auth flows
// need; it mirrors the corresponding environment variables.
type AuthConfig struct {
	JWTSecret      string
	AccessTTLMin   int
	RefreshTTLDays int
	BcryptCost     int
}

// AuthService handles account creation and session issuance. Guest
// accounts are only ever created through RegisterGuest, which couples
// account creation with invitation acceptance.
type AuthService struct {
	users       UserStore
	tokens      TokenStore
	invitations InvitationStore
	cfg         AuthConfig
}

// NewAuthService wires the service to its stores.
func NewAuthService(users UserStore, tokens TokenStore, invitations InvitationStore, cfg AuthConfig) *AuthService {
	return &AuthService{users: users, tokens: tokens, invitations: invitations, cfg: cfg}
}

// AuthResult is a freshly issued session: the user plus an access token
// and the raw refresh token (only its hash is stored).
type AuthResult struct {
	User    *model.User
	Access  utils.AccessToken
	Refresh utils.RefreshToken
}

// RegisterUser self-registers an organizer or admin account. Guests are
// rejected here; they must come in through an invitation.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	if role == model.RoleGuest {
		return nil, validation("guest accounts are created through invitations")
	}
	if len(password) < 6 {
		return nil, validation("password must have at least 6 characters")
	}
	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, internalErr("failed to hash password", err)
	}
	user, err := model.NewUser(name, email, hash, role)
	if err != nil {
		return nil, invalid(err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, conflict("an account with this email already exists")
		}
		return nil, internalErr("failed to create user", err)
	}
	return user, nil
}

// Authenticate verifies credentials and issues an access/refresh pair.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		return nil, internalErr("failed to load user", err)
	}
	if user == nil || !utils.VerifyPassword(user.PasswordHash, password) {
		return nil, unauthorized("invalid credentials")
	}
	return s.issueSession(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new pair is issued for its owner.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (*AuthResult, error) {
	hash := utils.HashRefreshRaw(rawRefresh)
	userID, err := s.tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return nil, unauthorized("invalid refresh token")
	}
	if err := s.tokens.RevokeByHash(ctx, hash); err != nil {
		log.Printf("auth: revoke refresh token failed: %v", err)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, unauthorized("invalid refresh token")
	}
	return s.issueSession(ctx, user)
}

// RegisterGuest is the primary guest onboarding path: it validates the
// invitation, creates the GUEST account and accepts the invitation as
// one logical flow. The email-match check runs before any user record
// is written. If acceptance fails after the user was created, the user
// row is deleted again so no orphaned account survives a half-applied
// registration.
func (s *AuthService) RegisterGuest(ctx context.Context, name, email, password, invitationToken string) (*model.User, *model.Invitation, error) {
	inv, err := s.invitations.FindByToken(ctx, invitationToken)
	if err != nil {
		return nil, nil, internalErr("failed to load invitation", err)
	}
	if inv == nil {
		return nil, nil, validation("invitation is invalid or was not found")
	}
	if inv.Status == model.InvitationAccepted {
		return nil, nil, conflict("invitation was already used")
	}
	if model.NormalizeEmail(inv.Email) != model.NormalizeEmail(email) {
		return nil, nil, validation("email does not match the invitation; use the address the invitation was sent to")
	}

	existing, err := s.users.FindByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		return nil, nil, internalErr("failed to check existing account", err)
	}
	if existing != nil {
		return nil, nil, conflict("an account with this email already exists; log in and accept the invitation")
	}

	if len(password) < 6 {
		return nil, nil, validation("password must have at least 6 characters")
	}
	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, nil, internalErr("failed to hash password", err)
	}
	user, err := model.NewUser(name, email, hash, model.RoleGuest)
	if err != nil {
		return nil, nil, invalid(err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, nil, conflict("an account with this email already exists; log in and accept the invitation")
		}
		return nil, nil, internalErr("failed to create user", err)
	}

	if err := s.invitations.Accept(ctx, inv.ID, user.ID); err != nil {
		// Compensate: the account only exists to back this invitation.
		if derr := s.users.Delete(ctx, user.ID); derr != nil {
			log.Printf("auth: compensating user delete failed for %s: %v", user.ID, derr)
		}
		if errors.Is(err, repository.ErrInvitationConsumed) {
			return nil, nil, conflict("invitation was already used")
		}
		return nil, nil, internalErr("failed to accept invitation", err)
	}
	inv.Status = model.InvitationAccepted
	guestID := user.ID
	inv.GuestID = &guestID
	return user, inv, nil
}

func (s *AuthService) issueSession(ctx context.Context, user *model.User) (*AuthResult, error) {
	access, err := utils.NewAccessToken(s.cfg.JWTSecret, user.ID, string(user.Role), s.cfg.AccessTTLMin)
	if err != nil {
		return nil, internalErr("failed to issue access token", err)
	}
	refresh, err := utils.NewRefreshToken(s.cfg.RefreshTTLDays)
	if err != nil {
		return nil, internalErr("failed to issue refresh token", err)
	}
	if err := s.tokens.StoreRefresh(ctx, user.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return nil, internalErr("failed to store refresh token", err)
	}
	return &AuthResult{User: user, Access: access, Refresh: refresh}, nil
}

package model

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role enumerates the account roles understood by the platform.
// Organizers create locations and events, guests accept invitations
// and reserve seats, admins are organizers with no ownership limits.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleOrganizer Role = "ORGANIZER"
	RoleGuest     Role = "GUEST"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleGuest:
		return true
	}
	return false
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidRole  = errors.New("invalid role")
	ErrEmptyName    = errors.New("name is required")
)

// User mirrors the `users` table. The role is fixed at creation time;
// guests are only ever created through the invitation registration flow.
//
// Fields:
//  ID           – UUID primary key, generated application-side.
//  Name         – display name.
//  Email        – unique, normalized (trimmed, lower-cased) address.
//  PasswordHash – bcrypt hash of the password.
//  Role         – ADMIN | ORGANIZER | GUEST.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser validates and builds a user with a fresh UUID. The email is
// normalized before validation so "  A@X.COM " and "a@x.com" collide.
func NewUser(name, email, passwordHash string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	email = NormalizeEmail(email)
	if !emailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	return &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Every email entering the system passes through here exactly once.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/service"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // ORGANIZER | ADMIN
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type registerGuestReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func toUserPart(u *model.User) userPart {
	return userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

func toAuthResp(r *service.AuthResult) authResp {
	return authResp{
		User:    toUserPart(r.User),
		Access:  tokenPart{Token: r.Access.Token, Expires: r.Access.Exp},
		Refresh: tokenPart{Token: r.Refresh.Raw, Expires: r.Refresh.Exp},
	}
}

// Register creates an organizer or admin account. Guests cannot
// self-register; they come in through RegisterGuest.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and password are required"})
	}
	role := model.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
	if role == "" {
		role = model.RoleOrganizer
	}

	user, err := h.Auth.RegisterUser(c.Request().Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": toUserPart(user)})
}

// Login verifies credentials and returns a fresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	result, err := h.Auth.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toAuthResp(result))
}

// Refresh rotates a refresh token: the presented one is revoked and a
// new pair issued.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token is required"})
	}

	result, err := h.Auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toAuthResp(result))
}

// RegisterGuest creates a guest account from an invitation token,
// accepting the invitation in the same flow.
func (h *AuthHandler) RegisterGuest(c echo.Context) error {
	var req registerGuestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" || req.Name == "" || req.Token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email, password and token are required"})
	}

	user, inv, err := h.Auth.RegisterGuest(c.Request().Context(), req.Name, req.Email, req.Password, req.Token)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"user": toUserPart(user),
		"invitation": echo.Map{
			"id":       inv.ID,
			"event_id": inv.EventID,
			"status":   string(inv.Status),
		},
	})
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/buildings/api/http/presenter"
	"github.com/artem13815/buildings/pkg/auth"
	"github.com/artem13815/buildings/pkg/security/jwt"
)

// SessionStore persists the login token for cookie-based clients.
type SessionStore interface {
	Set(c *fiber.Ctx, token string) error
	Clear(c *fiber.Ctx) error
}

type AuthHandler struct {
	useCase  auth.AuthUseCase
	sessions SessionStore
	log      *slog.Logger
}

func NewAuthHandler(useCase auth.AuthUseCase, sessions SessionStore, log *slog.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, sessions: sessions, log: log}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Name, validation.Required),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type userResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type protectedResponse struct {
	Message string       `json:"message"`
	User    jwt.Identity `json:"user"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Missing required fields")
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Missing required fields")
	}

	_, err := h.useCase.Register(c.UserContext(), req.Email, req.Password, req.Name)
	switch {
	case err == nil:
		return presenter.Message(c, http.StatusCreated, "Registration successful")
	case errors.Is(err, auth.ErrMissingCredentials):
		return presenter.Error(c, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, auth.ErrUserAlreadyExists):
		return presenter.Error(c, http.StatusConflict, "User already exists")
	default:
		return err
	}
}

// Login handles user login and stores the issued token in the session.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} loginResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Missing email or password")
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Missing email or password")
	}

	result, err := h.useCase.Login(c.UserContext(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrMissingCredentials):
		return presenter.Error(c, http.StatusBadRequest, "Missing email or password")
	case errors.Is(err, auth.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "User not found")
	case errors.Is(err, auth.ErrInvalidPassword):
		return presenter.Error(c, http.StatusUnauthorized, "Invalid password")
	default:
		return err
	}

	if err := h.sessions.Set(c, result.Token); err != nil {
		return err
	}

	return presenter.JSON(c, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   result.Token,
		User: userResponse{
			Email: result.User.Email,
			Name:  result.User.DisplayName,
			Role:  result.User.Role,
		},
	})
}

// Logout clears the session token. Tokens already handed out stay valid until they expire.
// @Summary Logout
// @Tags    auth
// @Produce json
// @Success 200 {object} presenter.MessageResponse
// @Router  /logout [get]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Clear(c); err != nil {
		return err
	}
	return presenter.Message(c, http.StatusOK, "Logout successful")
}

// Protected echoes the caller identity.
// @Summary  Protected route example
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} protectedResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Router   /protected [get]
func (h *AuthHandler) Protected(c *fiber.Ctx) error {
	id, ok := jwt.IdentityFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Authentication required")
	}
	return presenter.JSON(c, http.StatusOK, protectedResponse{
		Message: "This is a protected route",
		User:    id,
	})
}

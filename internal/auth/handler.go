package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/octovision/auth-service/internal/user"
)

// Handler exposes registration and login endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates a credential and returns its public identity view.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password are required")
	}
	identity, err := h.svc.Register(c.UserContext(), req.Email, req.Password, req.Role)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusCreated).JSON(identity)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a bearer token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	token, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusOK).JSON(token)
}

// toHTTPError maps core failure kinds to HTTP statuses. Only the kind's
// message crosses the boundary.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, user.ErrDuplicateEmail):
		return fiber.NewError(http.StatusConflict, user.ErrDuplicateEmail.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.NewError(http.StatusUnauthorized, ErrInvalidCredentials.Error())
	case errors.Is(err, ErrUnauthenticated):
		return fiber.NewError(http.StatusUnauthorized, ErrUnauthenticated.Error())
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(http.StatusForbidden, ErrForbidden.Error())
	case errors.Is(err, ErrInvalidRole):
		return fiber.NewError(http.StatusBadRequest, ErrInvalidRole.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, "internal error")
	}
}

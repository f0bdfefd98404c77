package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/octovision/auth-service/internal/auth"
)

// RegisterAuthRoutes wires the public credential endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler) {
	group := r.Group("/auth")
	group.Post("/register", h.Register)
	group.Post("/login", h.Login)
}

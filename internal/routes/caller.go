package routes

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/octovision/auth-service/internal/middleware"
)

// RegisterCallerRoutes wires endpoints that require a resolved caller. The
// router passed in must already run the bearer-auth middleware.
func RegisterCallerRoutes(r fiber.Router, logger *slog.Logger) {
	r.Get("/me", func(c *fiber.Ctx) error {
		caller, ok := middleware.Caller(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "missing caller identity")
		}
		return c.Status(http.StatusOK).JSON(caller)
	})

	r.Get("/admin-only", middleware.RequireAdmin(), func(c *fiber.Ctx) error {
		caller, _ := middleware.Caller(c)
		if logger != nil {
			logger.Info("admin route accessed",
				slog.String("user_id", caller.ID),
				slog.String("email", caller.Email),
			)
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": "admin access granted",
			"user":    caller,
		})
	})
}

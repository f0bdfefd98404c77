package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/octovision/auth-service/internal/auth"
	"github.com/octovision/auth-service/internal/user"
)

// CallerKey is the locals key under which BearerAuth stores the resolved
// caller identity.
const CallerKey = "caller"

// BearerAuth validates the Authorization header's bearer token and resolves
// the caller against the user store. A missing header, an invalid token and
// a deleted subject all produce the same 401.
func BearerAuth(resolver *auth.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, auth.ErrUnauthenticated.Error())
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		identity, err := resolver.Resolve(c.UserContext(), tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, auth.ErrUnauthenticated.Error())
		}

		c.Locals(CallerKey, identity)
		return c.Next()
	}
}

// RequireAdmin admits only callers with the admin role. Must run after
// BearerAuth on the same chain; the checks stay strictly sequential.
func RequireAdmin() fiber.Handler {
	return RequireRole(user.RoleAdmin)
}

// RequireRole admits only callers holding the given role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := c.Locals(CallerKey).(auth.Identity)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, auth.ErrUnauthenticated.Error())
		}
		if _, err := auth.RequireRole(identity, role); err != nil {
			return fiber.NewError(http.StatusForbidden, auth.ErrForbidden.Error())
		}
		return c.Next()
	}
}

// Caller returns the identity stored by BearerAuth, if any.
func Caller(c *fiber.Ctx) (auth.Identity, bool) {
	identity, ok := c.Locals(CallerKey).(auth.Identity)
	return identity, ok
}

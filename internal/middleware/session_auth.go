package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/corebank/corebank/internal/session"
)

// Locals keys set by SessionAuth for downstream handlers.
const (
	LocalsUsername     = "username"
	LocalsSessionToken = "session_token"
)

// SessionAuth validates the bearer session token and exposes the
// authenticated username to downstream handlers.
func SessionAuth(sessions session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		token := strings.TrimSpace(authz[len("Bearer "):])

		username, err := sessions.Username(c.UserContext(), token)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid or expired session")
		}

		c.Locals(LocalsUsername, username)
		c.Locals(LocalsSessionToken, token)
		return c.Next()
	}
}

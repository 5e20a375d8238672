package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/corebank/corebank/internal/account"
	"github.com/corebank/corebank/internal/middleware"
	"github.com/corebank/corebank/internal/session"
)

// RegisterAuthRoutes wires account creation, login and logout.
func RegisterAuthRoutes(r fiber.Router, accounts *account.Service, sessions session.Store, loginLimiter fiber.Handler) {
	r.Post("/accounts", func(c *fiber.Ctx) error {
		var req struct {
			Username    string `json:"username"`
			DisplayName string `json:"display_name"`
			PIN         string `json:"pin"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}

		acct, err := accounts.CreateAccount(c.UserContext(), req.Username, req.DisplayName, req.PIN)
		if err != nil {
			return domainError(err)
		}

		return c.Status(http.StatusCreated).JSON(fiber.Map{
			"username":     acct.Username,
			"display_name": acct.DisplayName,
			"balance":      renderAmount(acct.Balance),
			"created_at":   acct.CreatedAt,
		})
	})

	r.Post("/login", loginLimiter, func(c *fiber.Ctx) error {
		var req struct {
			Username string `json:"username"`
			PIN      string `json:"pin"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}

		profile, err := accounts.Authenticate(c.UserContext(), req.Username, req.PIN)
		if err != nil {
			// Absent username and wrong PIN answer identically.
			return fiber.NewError(http.StatusUnauthorized, "invalid username or PIN")
		}

		token, err := sessions.Create(c.UserContext(), profile.Username)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, "create session")
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"token":        token,
			"username":     profile.Username,
			"display_name": profile.DisplayName,
		})
	})

	r.Post("/logout", middleware.SessionAuth(sessions), func(c *fiber.Ctx) error {
		token, _ := c.Locals(middleware.LocalsSessionToken).(string)
		if err := sessions.Destroy(c.UserContext(), token); err != nil {
			return fiber.NewError(http.StatusInternalServerError, "destroy session")
		}
		return c.SendStatus(http.StatusNoContent)
	})
}

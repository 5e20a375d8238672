package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/corebank/corebank/internal/account"
	"github.com/corebank/corebank/internal/middleware"
	"github.com/corebank/corebank/internal/session"
)

// RegisterAccountRoutes wires the session-protected account operations. The
// username always comes from the session, never from the request body, so a
// caller can only operate on the account they authenticated for.
func RegisterAccountRoutes(r fiber.Router, accounts *account.Service, sessions session.Store) {
	r.Get("/account", func(c *fiber.Ctx) error {
		username, _ := c.Locals(middleware.LocalsUsername).(string)
		profile, err := accounts.GetProfile(c.UserContext(), username)
		if err != nil {
			return domainError(err)
		}
		return c.JSON(fiber.Map{
			"username":     profile.Username,
			"display_name": profile.DisplayName,
		})
	})

	r.Get("/account/balance", func(c *fiber.Ctx) error {
		username, _ := c.Locals(middleware.LocalsUsername).(string)
		balance, err := accounts.GetBalance(c.UserContext(), username)
		if err != nil {
			return domainError(err)
		}
		return c.JSON(fiber.Map{
			"username": username,
			"balance":  renderAmount(balance),
		})
	})

	r.Post("/account/deposit", func(c *fiber.Ctx) error {
		username, _ := c.Locals(middleware.LocalsUsername).(string)
		amount, err := amountFromBody(c)
		if err != nil {
			return domainError(err)
		}
		balance, err := accounts.Deposit(c.UserContext(), username, amount)
		if err != nil {
			return domainError(err)
		}
		return c.JSON(fiber.Map{
			"username": username,
			"balance":  renderAmount(balance),
		})
	})

	r.Post("/account/withdraw", func(c *fiber.Ctx) error {
		username, _ := c.Locals(middleware.LocalsUsername).(string)
		amount, err := amountFromBody(c)
		if err != nil {
			return domainError(err)
		}
		balance, err := accounts.Withdraw(c.UserContext(), username, amount)
		if err != nil {
			return domainError(err)
		}
		return c.JSON(fiber.Map{
			"username": username,
			"balance":  renderAmount(balance),
		})
	})

	r.Patch("/account", func(c *fiber.Ctx) error {
		username, _ := c.Locals(middleware.LocalsUsername).(string)
		var req struct {
			DisplayName *string `json:"display_name"`
			PIN         *string `json:"pin"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}

		res, err := accounts.ModifyAccount(c.UserContext(), username, account.ProfileUpdate{
			DisplayName: req.DisplayName,
			PIN:         req.PIN,
		})
		if err != nil {
			return domainError(err)
		}

		body := fiber.Map{
			"display_name_updated": res.DisplayNameUpdated,
			"pin_updated":          res.PINUpdated,
		}
		if res.PINRejected {
			body["warning"] = account.ErrInvalidPIN.Error() + "; PIN not changed"
		}
		return c.JSON(body)
	})

	r.Delete("/account", func(c *fiber.Ctx) error {
		username, _ := c.Locals(middleware.LocalsUsername).(string)
		if err := accounts.CloseAccount(c.UserContext(), username); err != nil {
			return domainError(err)
		}
		// The account is gone; every session for it ends now.
		_ = sessions.DestroyAll(c.UserContext(), username)
		return c.SendStatus(http.StatusNoContent)
	})
}

func amountFromBody(c *fiber.Ctx) (int64, error) {
	var req struct {
		Amount string `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return 0, account.ErrInvalidAmount
	}
	return parseAmount(req.Amount)
}

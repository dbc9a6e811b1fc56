package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/housebox/portal/internal/models"
)

// UserResolver resolves a raw session token to a live, active user.
type UserResolver interface {
	CurrentUser(rawToken string) (*models.User, error)
}

// Session resolves the portal session cookie on every request and stores the
// user in context locals. Anonymous requests pass through with no user set.
func Session(resolver UserResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolver.CurrentUser(c.Cookies(cookieName))
		if err != nil {
			// Storage fault, not an auth failure. Log and continue anonymous.
			slog.Error("session resolution failed",
				"error", err,
				"path", c.Path(),
				"ip", c.IP(),
				"user_agent", string(c.Request().Header.UserAgent()),
			)
		}
		if user != nil {
			c.Locals("user", user)
		}
		return c.Next()
	}
}

// CurrentUser returns the user resolved by Session, or nil when anonymous.
func CurrentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals("user").(*models.User); ok {
		return user
	}
	return nil
}

// RequireAuth redirects anonymous requests to the login page.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

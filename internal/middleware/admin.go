package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/housebox/portal/internal/dto"
	"github.com/housebox/portal/internal/policy"
)

// AdminRequired gates the user-management routes on an admin-equivalent role.
// Must run after Session.
func AdminRequired(pol *policy.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !pol.IsAdmin(user.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}

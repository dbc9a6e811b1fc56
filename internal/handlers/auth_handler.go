package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/housebox/portal/internal/dto"
	"github.com/housebox/portal/internal/models"
	"github.com/housebox/portal/internal/services"
)

// AuthService is the session lifecycle the auth handler depends on.
type AuthService interface {
	Login(email, password string) (*models.User, string, error)
	Logout(rawToken string) error
	LandingPath(userID uuid.UUID) string
	TTL() time.Duration
}

type AuthHandler struct {
	authService AuthService
	cookieName  string
}

func NewAuthHandler(authService AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{authService: authService, cookieName: cookieName}
}

// Login handles the POST /login form. Success sets the session cookie and
// redirects to the user's landing page; any credential failure gets the same
// generic 401 so the response never reveals whether the email exists.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, rawToken, err := h.authService.Login(email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrAccountDisabled) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid email or password",
			})
		}
		slog.Error("login failed",
			"error", err,
			"path", c.Path(),
			"ip", c.IP(),
			"user_agent", string(c.Request().Header.UserAgent()),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    rawToken,
		Expires:  time.Now().Add(h.authService.TTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.Redirect(h.authService.LandingPath(user.ID), fiber.StatusSeeOther)
}

// Logout destroys the session and clears the cookie. Idempotent: logging out
// without a session just redirects home.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.Cookies(h.cookieName)); err != nil {
		slog.Error("logout failed", "error", err, "path", c.Path(), "ip", c.IP())
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.Redirect("/", fiber.StatusSeeOther)
}

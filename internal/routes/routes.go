package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/housebox/portal/internal/config"
	"github.com/housebox/portal/internal/handlers"
	"github.com/housebox/portal/internal/middleware"
	"github.com/housebox/portal/internal/policy"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	pol *policy.Policy,
	resolver middleware.UserResolver,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Use(middleware.Session(resolver, cfg.SessionCookieName))

	// Portal-wide rate limit: 30 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               30,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/health", healthHandler.Check)

	app.Get("/", teamHandler.Home)
	app.Get("/team/:name", teamHandler.TeamPage)
	app.Get("/my-team", middleware.RequireAuth(), teamHandler.MyTeam)

	// Login limit: 5 attempts per 15 minutes keyed by submitted email,
	// falling back to the caller IP.
	app.Post("/login", limiter.New(limiter.Config{
		Max:               5,
		Expiration:        15 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			if email := c.FormValue("email"); email != "" {
				return email
			}
			return c.IP()
		},
	}), authHandler.Login)
	app.Get("/logout", authHandler.Logout)

	admin := app.Group("/admin", middleware.AdminRequired(pol))
	admin.Get("/users", userHandler.List)
	admin.Post("/users", userHandler.Create)
	admin.Put("/users/:id", userHandler.Update)
	admin.Put("/users/:id/disable", userHandler.Disable)
	admin.Put("/users/:id/enable", userHandler.Enable)
	admin.Delete("/users/:id", userHandler.Delete)
	admin.Get("/teams", userHandler.Teams)
}

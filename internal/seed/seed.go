// Package seed bootstraps the baseline users and teams. Run is safe to call
// on every process start: existing rows are left alone.
package seed

import (
	"errors"
	"log/slog"

	"github.com/housebox/portal/internal/services"
)

type seedUser struct {
	email    string
	role     string
	password string
	teams    []string
}

var baseline = []seedUser{
	{"admin@example.com", "admin", "password123", []string{"l1_ops"}},
	{"manager@example.com", "manager", "secret456", []string{"operations", "sales"}},
	{"sales@example.com", "member", "salespass", []string{"sales"}},
}

// Run ensures the baseline users exist and hold their baseline memberships.
func Run(users *services.UserService) error {
	for _, su := range baseline {
		user, err := users.GetByEmail(su.email)
		if errors.Is(err, services.ErrNotFound) {
			slog.Info("seeding user", "email", su.email)
			user, err = users.CreateUser(su.email, su.role, su.password)
		}
		if err != nil {
			return err
		}
		for _, team := range su.teams {
			if err := users.AssignTeam(user.ID, team); err != nil {
				return err
			}
		}
	}
	return nil
}

// Baseline exposes the seeded emails for smoke checks.
func Baseline() []string {
	emails := make([]string, 0, len(baseline))
	for _, su := range baseline {
		emails = append(emails, su.email)
	}
	return emails
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "housebox_session", cfg.SessionCookieName)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"scipher", "roc"}, cfg.PublicTeams)
	assert.Equal(t, []string{"admin"}, cfg.AdminRoles)
	assert.Equal(t, []string{"l1_ops"}, cfg.AdminOnlyTeams)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("PUBLIC_TEAMS", " roc , sales ,")
	t.Setenv("ADMIN_ROLES", "admin,superuser")

	cfg := Load()

	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"roc", "sales"}, cfg.PublicTeams)
	assert.Equal(t, []string{"admin", "superuser"}, cfg.AdminRoles)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
}

func TestDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "pw")

	cfg := Load()
	assert.Contains(t, cfg.DSN(), "host=db.internal")
	assert.Contains(t, cfg.DSN(), "password=pw")
	assert.Contains(t, cfg.DSN(), "sslmode=disable")
}

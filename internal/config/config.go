package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	SessionTTL        time.Duration
	SessionCookieName string

	// Authorization policy
	PublicTeams    []string // team pages viewable without membership
	AdminRoles     []string // roles granted the all-teams rule and admin routes
	ManagerRoles   []string // roles granted all teams except the admin-only ones
	AdminOnlyTeams []string // excluded from the manager default team set

	// Links workbook
	LinksPath string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "housebox"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SessionTTL:        parseDuration(getEnv("SESSION_TTL", "12h")),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "housebox_session"),

		PublicTeams:    parseCSV(getEnv("PUBLIC_TEAMS", "scipher,roc")),
		AdminRoles:     parseCSV(getEnv("ADMIN_ROLES", "admin")),
		ManagerRoles:   parseCSV(getEnv("MANAGER_ROLES", "manager")),
		AdminOnlyTeams: parseCSV(getEnv("ADMIN_ONLY_TEAMS", "l1_ops")),

		LinksPath: getEnv("LINKS_PATH", "data/team_links.yaml"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

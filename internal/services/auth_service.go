package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/housebox/portal/internal/credentials"
	"github.com/housebox/portal/internal/models"
	"gorm.io/gorm"
)

// AuthService owns the session lifecycle: login, logout and per-request
// resolution of the session token to a live user.
type AuthService struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewAuthService(db *gorm.DB, sessionTTL time.Duration) *AuthService {
	return &AuthService{db: db, ttl: sessionTTL}
}

// Login verifies the credentials and creates a session, returning the user
// and the raw session token for the cookie. Unknown email and wrong password
// both fail with ErrInvalidCredentials; a disabled account fails with
// ErrAccountDisabled, which handlers render with the same generic wording.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	email = NormalizeEmail(email)

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	if !user.IsActive {
		slog.Warn("login attempt for disabled account", "user_id", user.ID.String())
		return nil, "", ErrAccountDisabled
	}

	if !credentials.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	rawToken, err := s.createSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, rawToken, nil
}

// Logout revokes the session behind the token. Idempotent: an empty, unknown
// or already-revoked token is a no-op.
func (s *AuthService) Logout(rawToken string) error {
	if rawToken == "" {
		return nil
	}
	return s.db.Model(&models.Session{}).
		Where("token_hash = ?", hashToken(rawToken)).
		Update("revoked", true).Error
}

// CurrentUser resolves the token to a live, active user. Missing, expired or
// revoked sessions and missing or disabled users all resolve to nil (treated
// as anonymous); an error is returned only on a storage fault.
func (s *AuthService) CurrentUser(rawToken string) (*models.User, error) {
	if rawToken == "" {
		return nil, nil
	}

	var session models.Session
	err := s.db.Where("token_hash = ?", hashToken(rawToken)).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	if session.Revoked || time.Now().After(session.ExpiresAt) {
		return nil, nil
	}

	var user models.User
	err = s.db.First(&user, "id = ?", session.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !user.IsActive {
		return nil, nil
	}
	return &user, nil
}

// LandingPath is the redirect target after login: the user's first team page
// in lexical order, or home when the user has no memberships.
func (s *AuthService) LandingPath(userID uuid.UUID) string {
	var names []string
	err := s.db.Model(&models.Membership{}).
		Joins("JOIN teams ON teams.id = memberships.team_id").
		Where("memberships.user_id = ?", userID).
		Order("teams.name").
		Limit(1).
		Pluck("teams.name", &names).Error
	if err != nil || len(names) == 0 {
		return "/"
	}
	return "/team/" + url.PathEscape(strings.ToLower(names[0]))
}

func (s *AuthService) createSession(userID uuid.UUID) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	session := models.Session{
		TokenHash: hashToken(rawToken),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return rawToken, nil
}

// TTL is the configured session lifetime, exposed for cookie expiry.
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

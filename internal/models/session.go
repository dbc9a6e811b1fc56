package models

import (
	"time"

	"github.com/google/uuid"
)

// Session maps an opaque client token to a user for the token's lifetime.
// Only the SHA-256 hash of the token is stored; the raw token lives in the
// client cookie.
type Session struct {
	TokenHash string    `gorm:"primaryKey;size:64" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Revoked   bool      `gorm:"not null" json:"revoked"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

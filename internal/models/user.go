package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a portal account. Emails are stored case-folded to lower so the
// unique index doubles as the case-insensitive uniqueness guarantee.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Role         string    `gorm:"size:50;not null;default:'member'" json:"role"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

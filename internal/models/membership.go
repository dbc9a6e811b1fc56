package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership asserts that a user belongs to a team. The composite primary key
// is the uniqueness constraint on the (user, team) pair.
type Membership struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	TeamID    uint      `gorm:"primaryKey" json:"team_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Team Team `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
}

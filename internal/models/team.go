package models

import "time"

// Team is created implicitly the first time a membership references its name.
// Teams are never deleted.
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

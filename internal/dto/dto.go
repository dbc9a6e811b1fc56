package dto

import (
	"github.com/google/uuid"

	"github.com/housebox/portal/internal/links"
)

type CreateUserRequest struct {
	Email    string   `json:"email" form:"email"`
	Role     string   `json:"role" form:"role"`
	Password string   `json:"password" form:"password"`
	Teams    []string `json:"teams" form:"teams"`
}

// UpdateUserRequest edits email and/or role; a non-nil Teams replaces the
// user's membership set wholesale.
type UpdateUserRequest struct {
	Email string    `json:"email" form:"email"`
	Role  string    `json:"role" form:"role"`
	Teams *[]string `json:"teams" form:"teams"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
	Teams    []string  `json:"teams"`
}

type TeamPageResponse struct {
	Team  string       `json:"team"`
	Links []links.Link `json:"links"`
}

type HomeResponse struct {
	Teams []string     `json:"teams"`
	Links []links.Link `json:"links"`
}

type TeamListResponse struct {
	Teams []string `json:"teams"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

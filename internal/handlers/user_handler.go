package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/housebox/portal/internal/dto"
	"github.com/housebox/portal/internal/models"
	"github.com/housebox/portal/internal/services"
)

// UserService is the provisioning surface the admin handler depends on.
type UserService interface {
	CreateUserWithTeams(email, role, rawPassword string, explicitTeams []string) (*models.User, error)
	UpdateUser(userID uuid.UUID, email, role string) error
	UpdateUserTeams(userID uuid.UUID, selected []string) error
	Disable(userID uuid.UUID) error
	Enable(userID uuid.UUID) error
	Delete(userID uuid.UUID) error
	ListUsers() ([]models.User, error)
	ListTeamNames(userID uuid.UUID) ([]string, error)
	ListTeamUniverse() ([]string, error)
}

// UserHandler serves the admin-only user management endpoints.
type UserHandler struct {
	userService UserService
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers()
	if err != nil {
		return h.serverError(c, "list users", err)
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		teams, err := h.userService.ListTeamNames(user.ID)
		if err != nil {
			return h.serverError(c, "list user teams", err)
		}
		resp = append(resp, userResponse(&user, teams))
	}
	return c.JSON(resp)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	user, err := h.userService.CreateUserWithTeams(req.Email, req.Role, req.Password, req.Teams)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return h.serverError(c, "create user", err)
	}

	teams, err := h.userService.ListTeamNames(user.ID)
	if err != nil {
		return h.serverError(c, "list user teams", err)
	}
	return c.Status(fiber.StatusCreated).JSON(userResponse(user, teams))
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.userService.UpdateUser(userID, req.Email, req.Role); err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrNotFound):
			return notFound(c)
		default:
			return h.serverError(c, "update user", err)
		}
	}

	if req.Teams != nil {
		if err := h.userService.UpdateUserTeams(userID, *req.Teams); err != nil {
			return h.serverError(c, "update user teams", err)
		}
	}

	return c.JSON(dto.MessageResponse{Message: "User updated"})
}

func (h *UserHandler) Disable(c *fiber.Ctx) error {
	return h.setActive(c, h.userService.Disable, "User disabled")
}

func (h *UserHandler) Enable(c *fiber.Ctx) error {
	return h.setActive(c, h.userService.Enable, "User enabled")
}

func (h *UserHandler) setActive(c *fiber.Ctx, op func(uuid.UUID) error, message string) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}
	if err := op(userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c)
		}
		return h.serverError(c, "toggle user", err)
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}
	if err := h.userService.Delete(userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c)
		}
		return h.serverError(c, "delete user", err)
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted"})
}

func (h *UserHandler) Teams(c *fiber.Ctx) error {
	teams, err := h.userService.ListTeamUniverse()
	if err != nil {
		return h.serverError(c, "list teams", err)
	}
	return c.JSON(dto.TeamListResponse{Teams: teams})
}

func (h *UserHandler) serverError(c *fiber.Ctx, action string, err error) error {
	slog.Error("user management failed",
		"action", action,
		"error", err,
		"path", c.Path(),
		"ip", c.IP(),
		"user_agent", string(c.Request().Header.UserAgent()),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func userResponse(user *models.User, teams []string) dto.UserResponse {
	if teams == nil {
		teams = []string{}
	}
	return dto.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Role:     user.Role,
		IsActive: user.IsActive,
		Teams:    teams,
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "User not found",
	})
}

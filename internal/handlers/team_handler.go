package handlers

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/housebox/portal/internal/dto"
	"github.com/housebox/portal/internal/links"
	"github.com/housebox/portal/internal/middleware"
	"github.com/housebox/portal/internal/policy"
)

// MembershipReader lists the team names a user belongs to.
type MembershipReader interface {
	ListTeamNames(userID uuid.UUID) ([]string, error)
}

// LinkLoader is the link-loading collaborator: pure lookup of link rows for
// an ordered list of team names.
type LinkLoader interface {
	LinksForTeams(names []string) []links.Link
}

type TeamHandler struct {
	memberships MembershipReader
	loader      LinkLoader
	pol         *policy.Policy
	publicTeams []string
}

func NewTeamHandler(memberships MembershipReader, loader LinkLoader, pol *policy.Policy, publicTeams []string) *TeamHandler {
	return &TeamHandler{memberships: memberships, loader: loader, pol: pol, publicTeams: publicTeams}
}

// Home serves the public team links. No authentication required.
func (h *TeamHandler) Home(c *fiber.Ctx) error {
	return c.JSON(dto.HomeResponse{
		Teams: h.publicTeams,
		Links: h.loader.LinksForTeams(h.publicTeams),
	})
}

// TeamPage serves one team's links, gated by the authorization policy. The
// URL segment is lower-cased; the policy compares case-insensitively.
func (h *TeamHandler) TeamPage(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Unknown team",
		})
	}
	name = strings.ToLower(name)

	user := middleware.CurrentUser(c)
	var memberTeams []string
	if user != nil {
		memberTeams, err = h.memberships.ListTeamNames(user.ID)
		if err != nil {
			slog.Error("membership lookup failed",
				"error", err,
				"path", c.Path(),
				"ip", c.IP(),
				"user_agent", string(c.Request().Header.UserAgent()),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
	}

	if !h.pol.CanView(user, memberTeams, name) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized or unknown team",
		})
	}

	return c.JSON(dto.TeamPageResponse{
		Team:  name,
		Links: h.loader.LinksForTeams([]string{name}),
	})
}

// MyTeam routes a logged-in user to their team page: straight redirect with
// one membership, team list with several, home with none.
func (h *TeamHandler) MyTeam(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	teams, err := h.memberships.ListTeamNames(user.ID)
	if err != nil {
		slog.Error("membership lookup failed", "error", err, "path", c.Path(), "ip", c.IP())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	switch len(teams) {
	case 0:
		return c.Redirect("/", fiber.StatusSeeOther)
	case 1:
		return c.Redirect("/team/"+url.PathEscape(strings.ToLower(teams[0])), fiber.StatusSeeOther)
	default:
		return c.JSON(dto.TeamListResponse{Teams: teams})
	}
}

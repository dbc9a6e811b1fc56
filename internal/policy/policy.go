// Package policy decides who may view which team's links and which teams a
// role is granted by default. Role names are configuration, not code: the
// admin-equivalent and manager-equivalent sets come from config so adding an
// operational role never touches business logic.
package policy

import (
	"sort"
	"strings"

	"github.com/housebox/portal/internal/models"
)

// TeamRule is the default-membership rule applied when provisioning a user.
type TeamRule int

const (
	// ExplicitOnly grants exactly the teams the caller selected.
	ExplicitOnly TeamRule = iota
	// AllTeams grants every known team.
	AllTeams
	// AllExceptAdminOnly grants every known team minus the admin-only list.
	AllExceptAdminOnly
)

type Policy struct {
	publicTeams    map[string]struct{}
	adminRoles     map[string]struct{}
	managerRoles   map[string]struct{}
	adminOnlyTeams map[string]struct{}
}

func New(publicTeams, adminRoles, managerRoles, adminOnlyTeams []string) *Policy {
	return &Policy{
		publicTeams:    foldSet(publicTeams),
		adminRoles:     foldSet(adminRoles),
		managerRoles:   foldSet(managerRoles),
		adminOnlyTeams: foldSet(adminOnlyTeams),
	}
}

// CanView reports whether user (nil for anonymous) may see teamName's links.
// memberTeams are the team names the user belongs to. Comparison is
// case-insensitive throughout: URLs arrive lower-cased while stored names may
// be mixed case.
func (p *Policy) CanView(user *models.User, memberTeams []string, teamName string) bool {
	team := fold(teamName)
	if _, ok := p.publicTeams[team]; ok {
		return true
	}
	if user == nil {
		return false
	}
	if p.IsAdmin(user.Role) {
		return true
	}
	for _, name := range memberTeams {
		if fold(name) == team {
			return true
		}
	}
	return false
}

// IsAdmin reports whether role is in the admin-equivalent set.
func (p *Policy) IsAdmin(role string) bool {
	_, ok := p.adminRoles[fold(role)]
	return ok
}

// RuleFor maps a role to its default-membership rule.
func (p *Policy) RuleFor(role string) TeamRule {
	r := fold(role)
	if _, ok := p.adminRoles[r]; ok {
		return AllTeams
	}
	if _, ok := p.managerRoles[r]; ok {
		return AllExceptAdminOnly
	}
	return ExplicitOnly
}

// TeamsForRole resolves the effective team set for a newly provisioned user:
// the role's rule applied to the known team universe, or the explicit
// selection for roles without a broader rule. The result is sorted for
// deterministic assignment order.
func (p *Policy) TeamsForRole(role string, knownTeams, explicit []string) []string {
	var teams []string
	switch p.RuleFor(role) {
	case AllTeams:
		teams = append(teams, knownTeams...)
	case AllExceptAdminOnly:
		for _, name := range knownTeams {
			if _, excluded := p.adminOnlyTeams[fold(name)]; !excluded {
				teams = append(teams, name)
			}
		}
	default:
		teams = append(teams, explicit...)
	}
	sort.Strings(teams)
	return teams
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func foldSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[fold(n)] = struct{}{}
	}
	return set
}

package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/housebox/portal/internal/models"
)

func newTestPolicy() *Policy {
	return New(
		[]string{"scipher"},
		[]string{"admin"},
		[]string{"manager"},
		[]string{"l1_ops"},
	)
}

func TestCanViewMembership(t *testing.T) {
	pol := newTestPolicy()
	user := &models.User{Role: "member"}

	assert.True(t, pol.CanView(user, []string{"roc"}, "roc"))
	assert.False(t, pol.CanView(user, []string{"roc"}, "sales"))
}

func TestCanViewCaseInsensitive(t *testing.T) {
	pol := newTestPolicy()
	user := &models.User{Role: "member"}

	// URLs arrive lower-cased while stored names may be mixed case; both
	// directions must agree.
	assert.Equal(t,
		pol.CanView(user, []string{"ROC"}, "roc"),
		pol.CanView(user, []string{"ROC"}, "ROC"),
	)
	assert.True(t, pol.CanView(user, []string{"ROC"}, "roc"))
	assert.True(t, pol.CanView(user, []string{"roc"}, "ROC"))
}

func TestCanViewPublicTeam(t *testing.T) {
	pol := newTestPolicy()

	// Public teams are visible to anonymous callers and to authenticated
	// users without a membership.
	assert.True(t, pol.CanView(nil, nil, "scipher"))
	assert.True(t, pol.CanView(&models.User{Role: "member"}, nil, "SCIPHER"))
	assert.False(t, pol.CanView(nil, nil, "roc"))
}

func TestCanViewAdminOverride(t *testing.T) {
	pol := newTestPolicy()
	admin := &models.User{Role: "admin"}

	assert.True(t, pol.CanView(admin, nil, "roc"))
	assert.True(t, pol.CanView(admin, nil, "anything"))
}

func TestRuleFor(t *testing.T) {
	pol := newTestPolicy()

	assert.Equal(t, AllTeams, pol.RuleFor("admin"))
	assert.Equal(t, AllTeams, pol.RuleFor("Admin"))
	assert.Equal(t, AllExceptAdminOnly, pol.RuleFor("manager"))
	assert.Equal(t, ExplicitOnly, pol.RuleFor("member"))
	assert.Equal(t, ExplicitOnly, pol.RuleFor("intern"))
}

func TestTeamsForRoleAdminGetsAllKnownTeams(t *testing.T) {
	pol := newTestPolicy()

	teams := pol.TeamsForRole("admin", []string{"roc", "scipher"}, nil)
	assert.Equal(t, []string{"roc", "scipher"}, teams)
}

func TestTeamsForRoleManagerExcludesAdminOnly(t *testing.T) {
	pol := newTestPolicy()

	teams := pol.TeamsForRole("manager", []string{"l1_ops", "operations", "sales"}, nil)
	assert.Equal(t, []string{"operations", "sales"}, teams)
}

func TestTeamsForRoleMemberGetsExplicitOnly(t *testing.T) {
	pol := newTestPolicy()

	teams := pol.TeamsForRole("member", []string{"roc", "scipher", "sales"}, []string{"sales"})
	assert.Equal(t, []string{"sales"}, teams)
}

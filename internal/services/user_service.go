package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/housebox/portal/internal/credentials"
	"github.com/housebox/portal/internal/models"
	"github.com/housebox/portal/internal/policy"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserService owns the user/team/membership model and provisioning.
type UserService struct {
	db  *gorm.DB
	pol *policy.Policy
}

func NewUserService(db *gorm.DB, pol *policy.Policy) *UserService {
	return &UserService{db: db, pol: pol}
}

// NormalizeEmail folds an email for storage and lookup. Emails are compared
// case-insensitively everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser hashes the password and inserts the user. Fails with
// ErrDuplicateEmail when the folded email already exists.
func (s *UserService) CreateUser(email, role, rawPassword string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, errors.New("email is required")
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	// Hashing is CPU-bound; keep it outside any transaction.
	hash, err := credentials.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// Concurrent creates race past the check above; the unique index on
		// email backstops them.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// AssignTeam upserts the team by name and inserts the membership if the pair
// doesn't already exist. Idempotent; the ON CONFLICT clause makes the insert
// safe under concurrent double-submits.
func (s *UserService) AssignTeam(userID uuid.UUID, teamName string) error {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.Where("name = ?", teamName).
			FirstOrCreate(&team, models.Team{Name: teamName}).Error; err != nil {
			return fmt.Errorf("upsert team %q: %w", teamName, err)
		}

		membership := models.Membership{UserID: userID, TeamID: team.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&membership).Error; err != nil {
			return fmt.Errorf("insert membership: %w", err)
		}
		return nil
	})
}

// RemoveTeam deletes the membership if present. No-op when the team or the
// membership doesn't exist.
func (s *UserService) RemoveTeam(userID uuid.UUID, teamName string) error {
	var team models.Team
	err := s.db.Where("name = ?", strings.TrimSpace(teamName)).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup team %q: %w", teamName, err)
	}

	return s.db.Where("user_id = ? AND team_id = ?", userID, team.ID).
		Delete(&models.Membership{}).Error
}

// ListTeamNames returns the user's team names in lexical order.
func (s *UserService) ListTeamNames(userID uuid.UUID) ([]string, error) {
	var names []string
	err := s.db.Model(&models.Membership{}).
		Joins("JOIN teams ON teams.id = memberships.team_id").
		Where("memberships.user_id = ?", userID).
		Order("teams.name").
		Pluck("teams.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list team names: %w", err)
	}
	return names, nil
}

// ListTeamUniverse returns all known team names in lexical order.
func (s *UserService) ListTeamUniverse() ([]string, error) {
	var names []string
	err := s.db.Model(&models.Team{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return names, nil
}

func (s *UserService) SetRole(userID uuid.UUID, role string) error {
	return s.updateColumn(userID, "role", role)
}

// SetActive toggles the active flag. Disabling denies future logins and is
// also re-checked on every request during session resolution.
func (s *UserService) SetActive(userID uuid.UUID, active bool) error {
	return s.updateColumn(userID, "is_active", active)
}

func (s *UserService) updateColumn(userID uuid.UUID, column string, value interface{}) error {
	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("update user %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserService) GetByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &user, nil
}

func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("email").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateUserWithTeams creates the user and assigns the effective team set:
// the role's policy rule applied to the known team universe, or exactly the
// explicit selection for roles without a broader rule.
func (s *UserService) CreateUserWithTeams(email, role, rawPassword string, explicitTeams []string) (*models.User, error) {
	user, err := s.CreateUser(email, role, rawPassword)
	if err != nil {
		return nil, err
	}

	known, err := s.ListTeamUniverse()
	if err != nil {
		return nil, err
	}

	for _, team := range s.pol.TeamsForRole(role, known, explicitTeams) {
		if err := s.AssignTeam(user.ID, team); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// UpdateUser changes email and/or role. Empty arguments leave the field as is.
func (s *UserService) UpdateUser(userID uuid.UUID, email, role string) error {
	updates := map[string]interface{}{}
	if email != "" {
		email = NormalizeEmail(email)
		var existing models.User
		err := s.db.Where("email = ? AND id <> ?", email, userID).First(&existing).Error
		if err == nil {
			return ErrDuplicateEmail
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup user: %w", err)
		}
		updates["email"] = email
	}
	if role != "" {
		updates["role"] = role
	}
	if len(updates) == 0 {
		return nil
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateUserTeams reconciles the user's memberships against selected: teams
// no longer selected are removed, newly selected ones are added.
func (s *UserService) UpdateUserTeams(userID uuid.UUID, selected []string) error {
	current, err := s.ListTeamNames(userID)
	if err != nil {
		return err
	}

	add, remove := DiffTeams(current, selected)
	for _, team := range remove {
		if err := s.RemoveTeam(userID, team); err != nil {
			return err
		}
	}
	for _, team := range add {
		if err := s.AssignTeam(userID, team); err != nil {
			return err
		}
	}
	return nil
}

// DiffTeams computes the reconciliation between a user's current teams and a
// selection. Names are compared case-insensitively; add keeps the selection's
// casing so new teams are created as typed.
func DiffTeams(current, selected []string) (add, remove []string) {
	currentSet := make(map[string]struct{}, len(current))
	for _, name := range current {
		currentSet[strings.ToLower(name)] = struct{}{}
	}
	selectedSet := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		folded := strings.ToLower(strings.TrimSpace(name))
		if folded == "" {
			continue
		}
		if _, dup := selectedSet[folded]; dup {
			continue
		}
		selectedSet[folded] = struct{}{}
		if _, ok := currentSet[folded]; !ok {
			add = append(add, strings.TrimSpace(name))
		}
	}
	for _, name := range current {
		if _, ok := selectedSet[strings.ToLower(name)]; !ok {
			remove = append(remove, name)
		}
	}
	return add, remove
}

func (s *UserService) Disable(userID uuid.UUID) error { return s.SetActive(userID, false) }
func (s *UserService) Enable(userID uuid.UUID) error  { return s.SetActive(userID, true) }

// Delete hard-removes the user. Memberships and sessions are deleted in the
// same transaction so no orphan rows remain even without FK cascade support.
func (s *UserService) Delete(userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Membership{}).Error; err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		result := tx.Delete(&models.User{}, "id = ?", userID)
		if result.Error != nil {
			return fmt.Errorf("delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

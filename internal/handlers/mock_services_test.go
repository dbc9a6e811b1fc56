package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/housebox/portal/internal/links"
	"github.com/housebox/portal/internal/models"
)

// MockAuthService implements AuthService for testing using testify/mock.
type MockAuthService struct {
	mock.Mock
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Login(email, password string) (*models.User, string, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(rawToken string) error {
	args := m.Called(rawToken)
	return args.Error(0)
}

func (m *MockAuthService) LandingPath(userID uuid.UUID) string {
	args := m.Called(userID)
	return args.String(0)
}

func (m *MockAuthService) TTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockUserService implements UserService for testing using testify/mock.
type MockUserService struct {
	mock.Mock
}

func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) CreateUserWithTeams(email, role, rawPassword string, explicitTeams []string) (*models.User, error) {
	args := m.Called(email, role, rawPassword, explicitTeams)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(userID uuid.UUID, email, role string) error {
	args := m.Called(userID, email, role)
	return args.Error(0)
}

func (m *MockUserService) UpdateUserTeams(userID uuid.UUID, selected []string) error {
	args := m.Called(userID, selected)
	return args.Error(0)
}

func (m *MockUserService) Disable(userID uuid.UUID) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserService) Enable(userID uuid.UUID) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserService) Delete(userID uuid.UUID) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserService) ListUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) ListTeamNames(userID uuid.UUID) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserService) ListTeamUniverse() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockLinkLoader implements LinkLoader for testing using testify/mock.
type MockLinkLoader struct {
	mock.Mock
}

func NewMockLinkLoader() *MockLinkLoader {
	return &MockLinkLoader{}
}

func (m *MockLinkLoader) LinksForTeams(names []string) []links.Link {
	args := m.Called(names)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]links.Link)
}

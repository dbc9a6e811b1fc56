package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/housebox/portal/internal/credentials"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		},
	)
	require.NoError(t, err)

	return gormDB, mock
}

func userColumns() []string {
	return []string{"id", "email", "role", "password_hash", "is_active", "created_at", "updated_at"}
}

func sessionColumns() []string {
	return []string{"token_hash", "user_id", "expires_at", "revoked", "created_at"}
}

func TestLoginUnknownEmail(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, _, err := auth.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	hash, err := credentials.Hash("correct-password")
	require.NoError(t, err)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(userID, "alice@example.com", "member", hash, true, time.Now(), time.Now()))

	_, _, err = auth.Login("alice@example.com", "wrong-password")

	// Same externally-visible category as an unknown email.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginDisabledAccount(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	hash, err := credentials.Hash("correct-password")
	require.NoError(t, err)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(userID, "alice@example.com", "member", hash, false, time.Now(), time.Now()))

	_, _, err = auth.Login("alice@example.com", "correct-password")
	assert.ErrorIs(t, err, ErrAccountDisabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginSuccessCreatesSession(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	hash, err := credentials.Hash("correct-password")
	require.NoError(t, err)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(userID, "alice@example.com", "member", hash, true, time.Now(), time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "sessions"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user, rawToken, err := auth.Login("  Alice@Example.COM ", "correct-password")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, rawToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentUserEmptyToken(t *testing.T) {
	db, _ := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	user, err := auth.CurrentUser("")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestCurrentUserUnknownToken(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	mock.ExpectQuery(`SELECT \* FROM "sessions"`).
		WillReturnRows(sqlmock.NewRows(sessionColumns()))

	user, err := auth.CurrentUser("some-token")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentUserExpiredSession(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	mock.ExpectQuery(`SELECT \* FROM "sessions"`).
		WillReturnRows(sqlmock.NewRows(sessionColumns()).
			AddRow(hashToken("some-token"), uuid.New(), time.Now().Add(-time.Minute), false, time.Now().Add(-2*time.Hour)))

	user, err := auth.CurrentUser("some-token")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentUserRevokedSession(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	mock.ExpectQuery(`SELECT \* FROM "sessions"`).
		WillReturnRows(sqlmock.NewRows(sessionColumns()).
			AddRow(hashToken("some-token"), uuid.New(), time.Now().Add(time.Hour), true, time.Now()))

	user, err := auth.CurrentUser("some-token")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentUserDisabledUser(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "sessions"`).
		WillReturnRows(sqlmock.NewRows(sessionColumns()).
			AddRow(hashToken("some-token"), userID, time.Now().Add(time.Hour), false, time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(userID, "alice@example.com", "member", "hash", false, time.Now(), time.Now()))

	user, err := auth.CurrentUser("some-token")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentUserActive(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "sessions"`).
		WillReturnRows(sqlmock.NewRows(sessionColumns()).
			AddRow(hashToken("some-token"), userID, time.Now().Add(time.Hour), false, time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(userID, "alice@example.com", "member", "hash", true, time.Now(), time.Now()))

	user, err := auth.CurrentUser("some-token")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLandingPathFirstTeamLexically(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	mock.ExpectQuery(`FROM "memberships" JOIN teams`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Operations"))

	assert.Equal(t, "/team/operations", auth.LandingPath(uuid.New()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLandingPathNoMemberships(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	mock.ExpectQuery(`FROM "memberships" JOIN teams`).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	assert.Equal(t, "/", auth.LandingPath(uuid.New()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutEmptyTokenIsNoop(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	assert.NoError(t, auth.Logout(""))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutRevokesSession(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "sessions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, auth.Logout("some-token"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutUnknownTokenIsNoop(t *testing.T) {
	db, mock := setupTestDB(t)
	auth := NewAuthService(db, time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "sessions"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.NoError(t, auth.Logout("already-gone"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

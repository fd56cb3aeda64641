package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wastewise/backend/internal/models"
	"go.uber.org/zap"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishUserCreated(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func sampleUser() *models.User {
	u := models.NewUser(validDraft(), "USR-123456", time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	u.PasswordHash = "c2FsdA==$aGFzaA=="
	return &u
}

func TestUserService_Save(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	t.Run("inserts and publishes", func(t *testing.T) {
		pub := new(MockPublisher)
		service := NewUserService(db, pub, zap.NewNop())
		u := sampleUser()

		dbMock.ExpectExec("INSERT INTO users").
			WithArgs(u.ID, u.Name, u.Email, u.Phone, u.Ward, u.HouseNumber, u.Street, u.Address, u.UserType, u.Status,
				"Not provided", 0, "2026-10-18", "Just now", "Pending", "70%", "Not assigned",
				true, true, false, u.PasswordHash, u.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))
		pub.On("PublishUserCreated", mock.Anything, u).Return(nil)

		require.NoError(t, service.Save(ctx, u))
		assert.NoError(t, dbMock.ExpectationsWereMet())
		pub.AssertExpectations(t)
	})

	t.Run("publish failure does not fail the save", func(t *testing.T) {
		pub := new(MockPublisher)
		service := NewUserService(db, pub, zap.NewNop())
		u := sampleUser()

		dbMock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
		pub.On("PublishUserCreated", mock.Anything, u).Return(errors.New("no responders"))

		assert.NoError(t, service.Save(ctx, u))
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		service := NewUserService(db, nil, zap.NewNop())

		dbMock.ExpectExec("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		assert.ErrorIs(t, service.Save(ctx, sampleUser()), ErrEmailExists)
	})

	t.Run("duplicate id", func(t *testing.T) {
		service := NewUserService(db, nil, zap.NewNop())

		dbMock.ExpectExec("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_pkey"})

		assert.ErrorIs(t, service.Save(ctx, sampleUser()), ErrDuplicateUserID)
	})

	t.Run("database down", func(t *testing.T) {
		service := NewUserService(db, nil, zap.NewNop())

		dbMock.ExpectExec("INSERT INTO users").WillReturnError(sql.ErrConnDone)

		err := service.Save(ctx, sampleUser())
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestUserService_GetUser(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	service := NewUserService(db, nil, zap.NewNop())
	ctx := context.Background()
	created := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "ward", "house_number", "street", "address",
			"user_type", "status", "emergency_contact", "reports", "join_date", "last_active", "verification_status",
			"profile_completion", "bin_assigned", "notifications", "email_updates", "sms_alerts", "created_at"}).
			AddRow("USR-123456", "Sita Sharma", "sita@example.com", "123-456-7890", "Ward 12", "42", "Lakeside Road",
				"Near the community hall", "Resident", "active", "Not provided", 0, "2026-10-18", "Just now", "Pending",
				"70%", "Not assigned", true, true, false, created)

		dbMock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs("USR-123456").
			WillReturnRows(rows)

		u, err := service.GetUser(ctx, "USR-123456")
		require.NoError(t, err)
		assert.Equal(t, "Sita Sharma", u.Name)
		assert.Equal(t, "2026-10-18", u.JoinDate)
		assert.Equal(t, models.Preferences{Notifications: true, EmailUpdates: true}, u.Preferences)
		assert.Empty(t, u.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		dbMock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs("USR-000000").
			WillReturnError(sql.ErrNoRows)

		_, err := service.GetUser(ctx, "USR-000000")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUserService_EnsureSchema(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbMock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))

	service := NewUserService(db, nil, zap.NewNop())
	require.NoError(t, service.EnsureSchema(context.Background()))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

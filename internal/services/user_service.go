package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/wastewise/backend/internal/models"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already exists")
	ErrDuplicateUserID = errors.New("user id already exists")
)

const uniqueViolation = "23505"

const usersSchema = `CREATE TABLE IF NOT EXISTS users (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	email               TEXT NOT NULL,
	phone               TEXT NOT NULL,
	ward                TEXT NOT NULL,
	house_number        TEXT NOT NULL,
	street              TEXT NOT NULL DEFAULT '',
	address             TEXT NOT NULL,
	user_type           TEXT NOT NULL,
	status              TEXT NOT NULL,
	emergency_contact   TEXT NOT NULL,
	reports             INTEGER NOT NULL DEFAULT 0,
	join_date           DATE NOT NULL,
	last_active         TEXT NOT NULL,
	verification_status TEXT NOT NULL,
	profile_completion  TEXT NOT NULL,
	bin_assigned        TEXT NOT NULL,
	notifications       BOOLEAN NOT NULL,
	email_updates       BOOLEAN NOT NULL,
	sms_alerts          BOOLEAN NOT NULL,
	password_hash       TEXT NOT NULL,
	created_at          TIMESTAMPTZ NOT NULL,
	CONSTRAINT users_email_key UNIQUE (email)
)`

// UserService stores finalized users and announces them.
type UserService struct {
	db     *sql.DB
	events EventPublisher
	logger *zap.Logger
}

func NewUserService(db *sql.DB, events EventPublisher, logger *zap.Logger) *UserService {
	if events == nil {
		events = NoopPublisher{}
	}
	return &UserService{db: db, events: events, logger: logger}
}

// EnsureSchema creates the users table when it is missing.
func (s *UserService) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, usersSchema); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

// Save inserts the user and publishes a users.created event. A failed
// publish is logged and does not undo the insert.
func (s *UserService) Save(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, phone, ward, house_number, street, address, user_type, status,
			emergency_contact, reports, join_date, last_active, verification_status, profile_completion,
			bin_assigned, notifications, email_updates, sms_alerts, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		u.ID, u.Name, u.Email, u.Phone, u.Ward, u.HouseNumber, u.Street, u.Address, u.UserType, u.Status,
		u.EmergencyContact, u.Reports, u.JoinDate, u.LastActive, u.VerificationStatus, u.ProfileCompletion,
		u.BinAssigned, u.Preferences.Notifications, u.Preferences.EmailUpdates, u.Preferences.SMSAlerts,
		u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			if pqErr.Constraint == "users_email_key" {
				return ErrEmailExists
			}
			return ErrDuplicateUserID
		}
		return fmt.Errorf("insert user %s: %w", u.ID, err)
	}

	s.logger.Info("user created", zap.String("user_id", u.ID), zap.String("ward", u.Ward))

	if err := s.events.PublishUserCreated(ctx, u); err != nil {
		s.logger.Warn("failed to publish user created event", zap.Error(err), zap.String("user_id", u.ID))
	}
	return nil
}

// GetUser loads a saved user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, ward, house_number, street, address, user_type, status,
			emergency_contact, reports, to_char(join_date, 'YYYY-MM-DD'), last_active, verification_status,
			profile_completion, bin_assigned, notifications, email_updates, sms_alerts, created_at
		FROM users WHERE id = $1`, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Ward, &u.HouseNumber, &u.Street, &u.Address, &u.UserType, &u.Status,
		&u.EmergencyContact, &u.Reports, &u.JoinDate, &u.LastActive, &u.VerificationStatus,
		&u.ProfileCompletion, &u.BinAssigned, &u.Preferences.Notifications, &u.Preferences.EmailUpdates,
		&u.Preferences.SMSAlerts, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &u, nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/wastewise/backend/internal/models"
	"go.uber.org/zap"
)

const DefaultUserCreatedSubject = "wastewise.users.created"

// EventPublisher announces user lifecycle events to the rest of the platform.
type EventPublisher interface {
	PublishUserCreated(ctx context.Context, u *models.User) error
}

// UserCreatedEvent is the payload sent when a user is added. It never
// carries the password hash.
type UserCreatedEvent struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Ward      string `json:"ward"`
	UserType  string `json:"userType"`
	Status    string `json:"status"`
	JoinDate  string `json:"joinDate"`
	SMSAlerts bool   `json:"smsAlerts"`
}

// publisher is the part of *nats.Conn we use.
type publisher interface {
	Publish(subject string, data []byte) error
}

type NATSPublisher struct {
	conn    publisher
	subject string
}

func NewNATSPublisher(conn publisher, subject string) *NATSPublisher {
	if subject == "" {
		subject = DefaultUserCreatedSubject
	}
	return &NATSPublisher{conn: conn, subject: subject}
}

// ConnectNATS dials the broker. The caller owns the returned connection.
func ConnectNATS(url string, logger *zap.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(url, nats.Name("wastewise-backend"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	logger.Info("connected to NATS", zap.String("url", url))
	return conn, nil
}

func (p *NATSPublisher) PublishUserCreated(_ context.Context, u *models.User) error {
	data, err := json.Marshal(UserCreatedEvent{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Ward:      u.Ward,
		UserType:  u.UserType,
		Status:    u.Status,
		JoinDate:  u.JoinDate,
		SMSAlerts: u.Preferences.SMSAlerts,
	})
	if err != nil {
		return err
	}
	return p.conn.Publish(p.subject, data)
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishUserCreated(context.Context, *models.User) error { return nil }

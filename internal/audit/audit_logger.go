package audit

import (
	"time"

	"go.uber.org/zap"
)

type Event struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	FormID    string    `json:"form_id"`
	UserID    string    `json:"user_id"`
	Actor     string    `json:"actor"`
	Status    string    `json:"status"`
	Details   any       `json:"details"`
}

// Logger writes audit events for user administration as structured log
// entries under the "audit" logger name.
type Logger struct {
	log *zap.Logger
	now func() time.Time
}

func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log.Named("audit"), now: time.Now}
}

func (a *Logger) LogUserCreated(formID, userID, actor, userType, ward string) {
	a.write(Event{
		Timestamp: a.now(),
		EventType: "USER_CREATED",
		FormID:    formID,
		UserID:    userID,
		Actor:     actor,
		Status:    "SUCCESS",
		Details: map[string]string{
			"user_type": userType,
			"ward":      ward,
		},
	})
}

// LogSubmissionRejected records the names of the failing fields, never
// their values.
func (a *Logger) LogSubmissionRejected(formID, actor string, fields []string) {
	a.write(Event{
		Timestamp: a.now(),
		EventType: "USER_FORM_REJECTED",
		FormID:    formID,
		Actor:     actor,
		Status:    "INVALID",
		Details:   map[string]any{"fields": fields},
	})
}

func (a *Logger) LogError(formID, userID string, err error) {
	a.write(Event{
		Timestamp: a.now(),
		EventType: "ERROR",
		FormID:    formID,
		UserID:    userID,
		Status:    "FAILED",
		Details:   map[string]string{"error": err.Error()},
	})
}

func (a *Logger) write(event Event) {
	a.log.Info("audit event",
		zap.Time("timestamp", event.Timestamp),
		zap.String("event_type", event.EventType),
		zap.String("form_id", event.FormID),
		zap.String("user_id", event.UserID),
		zap.String("actor", event.Actor),
		zap.String("status", event.Status),
		zap.Any("details", event.Details),
	)
}

package services

import (
	"errors"
	"time"

	"github.com/wastewise/backend/internal/models"
)

var (
	ErrFormNotFound = errors.New("form not found or expired")
	ErrFormBusy     = errors.New("form is being submitted")
	ErrSaveFailed   = errors.New("failed to save user")
)

// FormState is the submission state of an add-user form.
type FormState string

const (
	StateIdle       FormState = "idle"
	StateValidating FormState = "validating"
	StateInvalid    FormState = "invalid"
	StateSubmitting FormState = "submitting"
	StateDone       FormState = "done"
)

// formErrorKey holds form-level messages in the error map.
const formErrorKey = "form"

const saveFailedMessage = "Failed to save user. Please try again."

// Form is one open add-user form: the draft being edited, the messages of
// the last validation pass and where the submission stands.
type Form struct {
	ID       string           `json:"id"`
	Draft    models.DraftUser `json:"draft"`
	Errors   ErrorMap         `json:"errors"`
	State    FormState        `json:"state"`
	OpenedAt time.Time        `json:"openedAt"`
}

func newForm(id string, now time.Time) *Form {
	return &Form{
		ID:       id,
		Draft:    models.NewDraftUser(),
		Errors:   ErrorMap{},
		State:    StateIdle,
		OpenedAt: now,
	}
}

// Apply writes one field update into the draft and drops any error recorded
// for that field. Other errors are left alone.
func (f *Form) Apply(u models.FieldUpdate) error {
	if err := u.Apply(&f.Draft); err != nil {
		return err
	}
	if f.Errors != nil {
		delete(f.Errors, u.Field)
	}
	return nil
}

// Valid reports whether the last validation pass found nothing.
func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

// ValidationError carries the error map of a rejected submission.
type ValidationError struct {
	Errors ErrorMap
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

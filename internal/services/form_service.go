package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/wastewise/backend/internal/audit"
	"github.com/wastewise/backend/internal/config"
	"github.com/wastewise/backend/internal/models"
	"go.uber.org/zap"
)

// SaveFunc persists a finalized user. It runs once per successful submission.
type SaveFunc func(ctx context.Context, user *models.User) error

// CloseFunc is told that a form has been dismissed, after a save or a cancel.
type CloseFunc func(ctx context.Context, formID string)

// Collaborators are the two hooks a form hands its result to.
type Collaborators struct {
	OnSave  SaveFunc
	OnClose CloseFunc
}

const (
	lockAttempts = 5
	lockBackoff  = 20 * time.Millisecond
)

// FormService runs add-user forms: it opens drafts, applies field updates,
// validates, and drives the submission pipeline.
type FormService struct {
	store     DraftStore
	validator *ValidationHelper
	sanitizer *TextSanitizer
	ids       *IDGenerator
	argon     Argon2Params
	cfg       *config.FormConfig
	collab    Collaborators
	audit     *audit.Logger
	logger    *zap.Logger

	now   func() time.Time
	sleep func(time.Duration)
}

func NewFormService(store DraftStore, cfg *config.FormConfig, argon Argon2Params, collab Collaborators, auditLog *audit.Logger, logger *zap.Logger) *FormService {
	if collab.OnSave == nil {
		collab.OnSave = func(context.Context, *models.User) error { return nil }
	}
	if collab.OnClose == nil {
		collab.OnClose = func(context.Context, string) {}
	}
	return &FormService{
		store:     store,
		validator: NewValidationHelper(),
		sanitizer: NewTextSanitizer(),
		ids:       NewIDGenerator(cfg.IDPrefix, nil),
		argon:     argon,
		cfg:       cfg,
		collab:    collab,
		audit:     auditLog,
		logger:    logger,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// Open starts a new form with the default draft.
func (s *FormService) Open(ctx context.Context) (*Form, error) {
	form := newForm(uuid.NewString(), s.now().UTC())
	if err := s.store.Put(ctx, form, s.cfg.DraftTTL); err != nil {
		return nil, fmt.Errorf("store new form: %w", err)
	}
	s.logger.Debug("user form opened", zap.String("form_id", form.ID))
	return form, nil
}

func (s *FormService) Get(ctx context.Context, id string) (*Form, error) {
	return s.store.Get(ctx, id)
}

// SetField applies one field update. An error recorded for that field is
// cleared; the rest of the error map is kept.
func (s *FormService) SetField(ctx context.Context, id string, update models.FieldUpdate) (*Form, error) {
	unlock, err := s.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	form, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := form.Apply(update); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, form, s.cfg.DraftTTL); err != nil {
		return nil, err
	}
	return form, nil
}

// Validate runs the validator over the draft and stores the result.
func (s *FormService) Validate(ctx context.Context, id string) (*Form, error) {
	unlock, err := s.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	form, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	form.Errors, _ = s.check(form.Draft)
	if err := s.store.Put(ctx, form, s.cfg.DraftTTL); err != nil {
		return nil, err
	}
	return form, nil
}

// Submit validates the draft and, when it passes, builds the user record,
// waits out the submit delay, hands the record to OnSave and closes the
// form. A rejected draft returns a *ValidationError and leaves the form
// open. A failed save returns ErrSaveFailed and also leaves it open.
func (s *FormService) Submit(ctx context.Context, id, actor string) (*models.User, error) {
	unlock, err := s.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	form, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.transition(form, StateValidating)
	var draft models.DraftUser
	form.Errors, draft = s.check(form.Draft)
	if !form.Valid() {
		s.transition(form, StateInvalid)
		s.audit.LogSubmissionRejected(id, actor, errorFields(form.Errors))
		s.transition(form, StateIdle)
		if err := s.store.Put(ctx, form, s.cfg.DraftTTL); err != nil {
			return nil, err
		}
		return nil, &ValidationError{Errors: form.Errors}
	}

	user := models.NewUser(draft, s.ids.Next(), s.now().UTC())
	user.PasswordHash, err = s.argon.HashPassword(form.Draft.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.transition(form, StateSubmitting)
	if err := s.store.Put(ctx, form, s.cfg.DraftTTL); err != nil {
		return nil, err
	}

	// From here the submission runs to completion even if the caller goes
	// away, but the save must finish while the lock is still held.
	ctx = context.WithoutCancel(ctx)
	s.sleep(s.cfg.SubmitDelay)

	saveCtx, cancel := context.WithTimeout(ctx, s.saveTimeout())
	err = s.collab.OnSave(saveCtx, &user)
	cancel()
	if err != nil {
		s.logger.Error("failed to save user",
			zap.Error(err),
			zap.String("form_id", id),
			zap.String("user_id", user.ID))
		s.audit.LogError(id, user.ID, err)

		form.Errors = saveFailureErrors(err)
		s.transition(form, StateIdle)
		if perr := s.store.Put(ctx, form, s.cfg.DraftTTL); perr != nil {
			s.logger.Warn("failed to store form after save failure", zap.Error(perr), zap.String("form_id", id))
		}
		return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	s.audit.LogUserCreated(id, user.ID, actor, user.UserType, user.Ward)
	s.close(ctx, form.ID)
	s.transition(form, StateDone)
	return &user, nil
}

// Cancel dismisses a form without saving anything. It is refused while a
// submission is running.
func (s *FormService) Cancel(ctx context.Context, id string) error {
	unlock, err := s.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	s.close(ctx, id)
	return nil
}

func (s *FormService) close(ctx context.Context, id string) {
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("failed to discard form", zap.Error(err), zap.String("form_id", id))
	}
	s.collab.OnClose(ctx, id)
}

// acquire takes the per-form lock, retrying briefly so that quick
// successive edits do not bounce off each other. A running submission
// holds the lock for the whole delay, so callers then get ErrFormBusy.
func (s *FormService) acquire(ctx context.Context, id string) (func(), error) {
	for attempt := 0; attempt < lockAttempts; attempt++ {
		token, ok, err := s.store.Lock(ctx, id, s.cfg.LockTTL)
		if err != nil {
			return nil, fmt.Errorf("lock form %s: %w", id, err)
		}
		if ok {
			return func() {
				if err := s.store.Unlock(context.WithoutCancel(ctx), id, token); err != nil {
					s.logger.Warn("failed to unlock form", zap.Error(err), zap.String("form_id", id))
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockBackoff):
		}
	}
	return nil, ErrFormBusy
}

// saveTimeout is what remains of the lock after the submit delay, less a
// fifth kept back for storing the outcome and releasing the lock.
func (s *FormService) saveTimeout() time.Duration {
	budget := s.cfg.LockTTL - s.cfg.SubmitDelay
	if budget <= 0 {
		return s.cfg.LockTTL
	}
	return budget - budget/5
}

// check validates the draft as entered and returns the error map together
// with the normalized draft the record is built from. A free-text field that
// passes validation but is emptied by sanitizing gets its own message.
func (s *FormService) check(d models.DraftUser) (ErrorMap, models.DraftUser) {
	errs := s.validator.ValidateDraft(d)
	clean := s.sanitizer.Draft(d)
	for field, msg := range markupOnlyMessages {
		if _, failed := errs[string(field)]; failed {
			continue
		}
		if v, _ := clean.Text(field); v == "" {
			errs[string(field)] = msg
		}
	}
	return errs, clean
}

func (s *FormService) transition(form *Form, to FormState) {
	s.logger.Debug("user form state",
		zap.String("form_id", form.ID),
		zap.String("from", string(form.State)),
		zap.String("to", string(to)))
	form.State = to
}

func saveFailureErrors(err error) ErrorMap {
	if errors.Is(err, ErrEmailExists) {
		return ErrorMap{"email": "A user with this email already exists"}
	}
	return ErrorMap{formErrorKey: saveFailedMessage}
}

func errorFields(errs ErrorMap) []string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

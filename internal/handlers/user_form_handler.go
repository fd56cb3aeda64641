package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wastewise/backend/internal/middleware"
	"github.com/wastewise/backend/internal/models"
	"github.com/wastewise/backend/internal/services"
	"go.uber.org/zap"
)

const maxBodyBytes = 1_048_576

// FormView is a form as shown to the panel. Password fields are never echoed.
type FormView struct {
	ID     string            `json:"id" example:"6f1c2d4e-8a7b-4c3d-9e2f-1a2b3c4d5e6f"`
	Draft  models.DraftUser  `json:"draft"`
	Errors map[string]string `json:"errors"`
	State  string            `json:"state" example:"idle"`
	Valid  bool              `json:"valid"`
}

func newFormView(f *services.Form) FormView {
	d := f.Draft
	d.Password = ""
	d.ConfirmPassword = ""
	return FormView{
		ID:     f.ID,
		Draft:  d,
		Errors: f.Errors,
		State:  string(f.State),
		Valid:  f.Valid(),
	}
}

// UserReader loads saved users.
type UserReader interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type UserFormHandler struct {
	forms     *services.FormService
	users     UserReader
	validator *services.ValidationHelper
	logger    *zap.Logger
}

func NewUserFormHandler(forms *services.FormService, users UserReader, logger *zap.Logger) *UserFormHandler {
	return &UserFormHandler{
		forms:     forms,
		users:     users,
		validator: services.NewValidationHelper(),
		logger:    logger,
	}
}

// FormOptions lists the choices offered by the add-user form
// @Summary Add-user form options
// @Description Wards, user types, statuses and the default draft
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.FormOptions
// @Router /users/form-options [get]
func (h *UserFormHandler) FormOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NewFormOptions())
}

// OpenForm starts a new add-user form
// @Summary Open add-user form
// @Description Create a form session holding the default draft
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 201 {object} FormView
// @Failure 401 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /users/forms [post]
func (h *UserFormHandler) OpenForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.forms.Open(r.Context())
	if err != nil {
		h.writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newFormView(form))
}

// GetForm returns the current draft, error map and state
// @Summary Get add-user form
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Success 200 {object} FormView
// @Failure 404 {object} services.ErrorResponse
// @Router /users/forms/{formId} [get]
func (h *UserFormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.forms.Get(r.Context(), chi.URLParam(r, "formId"))
	if err != nil {
		h.writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newFormView(form))
}

// UpdateField applies one field change to the draft
// @Summary Update a draft field
// @Description Send either text or flag for the named field. The error shown for that field is cleared.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Param request body models.FieldUpdate true "Field update"
// @Success 200 {object} FormView
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /users/forms/{formId} [patch]
func (h *UserFormHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	var req models.FieldUpdate

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	form, err := h.forms.SetField(r.Context(), chi.URLParam(r, "formId"), req)
	if err != nil {
		h.writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newFormView(form))
}

// ValidateForm checks the draft and stores the error map
// @Summary Validate add-user form
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Success 200 {object} FormView
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /users/forms/{formId}/validate [post]
func (h *UserFormHandler) ValidateForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.forms.Validate(r.Context(), chi.URLParam(r, "formId"))
	if err != nil {
		h.writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newFormView(form))
}

// SubmitForm validates the draft and saves the new user
// @Summary Submit add-user form
// @Description Validates, waits out the submit delay, saves the user and closes the form
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Success 201 {object} models.User
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /users/forms/{formId}/submit [post]
func (h *UserFormHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.AdminID(r.Context())

	user, err := h.forms.Submit(r.Context(), chi.URLParam(r, "formId"), actor)
	if err != nil {
		h.writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// CancelForm closes the form without saving
// @Summary Cancel add-user form
// @Tags users
// @Security BearerAuth
// @Param formId path string true "Form ID"
// @Success 204
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /users/forms/{formId} [delete]
func (h *UserFormHandler) CancelForm(w http.ResponseWriter, r *http.Request) {
	if err := h.forms.Cancel(r.Context(), chi.URLParam(r, "formId")); err != nil {
		h.writeFormError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUser returns a saved user
// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{id} [get]
func (h *UserFormHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserFormHandler) writeFormError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		services.SendErrorDetails(w, "Validation failed", http.StatusUnprocessableEntity, verr.Errors)
	case errors.Is(err, services.ErrFormNotFound):
		services.SendErrorResponse(w, "Form not found", http.StatusNotFound, nil)
	case errors.Is(err, services.ErrUserNotFound):
		services.SendErrorResponse(w, "User not found", http.StatusNotFound, nil)
	case errors.Is(err, services.ErrFormBusy):
		services.SendErrorResponse(w, "Form is being submitted", http.StatusConflict, nil)
	case errors.Is(err, models.ErrUnknownField), errors.Is(err, models.ErrFieldType):
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, services.ErrEmailExists):
		services.SendErrorDetails(w, "Failed to save user. Please try again.", http.StatusBadGateway,
			map[string]string{"email": "A user with this email already exists"})
	case errors.Is(err, services.ErrSaveFailed):
		services.SendErrorDetails(w, "Failed to save user. Please try again.", http.StatusBadGateway,
			map[string]string{"form": "Failed to save user. Please try again."})
	default:
		h.logger.Error("user form request failed", zap.Error(err))
		services.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

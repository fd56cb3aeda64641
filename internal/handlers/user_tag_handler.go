package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/wastewise/backend/internal/services"
	"go.uber.org/zap"
)

type UserTagHandler struct {
	service *services.QRService
	users   UserReader
	logger  *zap.Logger
}

func NewUserTagHandler(service *services.QRService, users UserReader, logger *zap.Logger) *UserTagHandler {
	return &UserTagHandler{service: service, users: users, logger: logger}
}

// GetTag renders the QR tag for a saved user
// @Summary User QR tag
// @Description PNG QR code encoding the user id and ward, printed on bin labels
// @Tags users
// @Produce png
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {file} binary
// @Failure 404 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /users/{id}/tag [get]
func (h *UserTagHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, services.ErrUserNotFound) {
		services.SendErrorResponse(w, "User not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		h.logger.Error("failed to load user for tag", zap.Error(err))
		services.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
		return
	}

	img, err := h.service.UserTagPNG(user.ID, user.Ward)
	if err != nil {
		h.logger.Error("failed to render user tag", zap.Error(err), zap.String("user_id", user.ID))
		services.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.Write(img)
}

package handlers

import (
	"net/http"

	"github.com/wastewise/backend/internal/middleware"
	"github.com/wastewise/backend/internal/services"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth   *middleware.Authenticator
	logger *zap.Logger
}

func NewAuthHandler(auth *middleware.Authenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Logout handles admin logout
// @Summary Logout admin
// @Description Blacklist the bearer token until it expires
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Logout successful"
// @Failure 401 {object} services.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.BearerToken(r.Header.Get("Authorization"))
	if err != nil {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	claims, err := h.auth.Parse(token)
	if err != nil {
		services.SendErrorResponse(w, "Invalid token", http.StatusUnauthorized, nil)
		return
	}

	if err := h.auth.Revoke(r.Context(), token, claims); err != nil {
		h.logger.Error("failed to blacklist token", zap.Error(err), zap.String("admin_id", claims.UserID))
		services.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/wastewise/backend/internal/config"
	"github.com/wastewise/backend/internal/middleware"
	"go.uber.org/zap"
)

// Router bundles what NewRouter mounts.
type Router struct {
	Server *config.ServerConfig
	Auth   *middleware.Authenticator
	Forms  *UserFormHandler
	Tags   *UserTagHandler
	Logout *AuthHandler
	Logger *zap.Logger
}

func NewRouter(deps Router) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(deps.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.Middleware)

			r.Post("/auth/logout", deps.Logout.Logout)

			r.Get("/users/form-options", deps.Forms.FormOptions)
			r.Post("/users/forms", deps.Forms.OpenForm)
			r.Get("/users/forms/{formId}", deps.Forms.GetForm)
			r.Patch("/users/forms/{formId}", deps.Forms.UpdateField)
			r.Delete("/users/forms/{formId}", deps.Forms.CancelForm)
			r.Post("/users/forms/{formId}/validate", deps.Forms.ValidateForm)
			r.Post("/users/forms/{formId}/submit", deps.Forms.SubmitForm)

			r.Get("/users/{id}", deps.Forms.GetUser)
			r.Get("/users/{id}/tag", deps.Tags.GetTag)
		})
	})

	return r
}

// internal/app/features/survey/routes.go
package survey

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSurvey)
	return r
}

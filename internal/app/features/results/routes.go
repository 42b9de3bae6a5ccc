// internal/app/features/results/routes.go
package results

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeResults)
	return r
}

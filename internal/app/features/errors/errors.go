// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"

	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/auth"
)

// pageData is the basic view model for error pages.
type pageData struct {
	Title      string
	IsLoggedIn bool
	Email      string
	Message    string
	BackURL    string
}

// Handler is the errors feature handler.
// No DB needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound renders the catch-all 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	email, signedIn := currentEmail(r)

	w.WriteHeader(http.StatusNotFound)
	data := pageData{
		Title:      "Page not found",
		IsLoggedIn: signedIn,
		Email:      email,
		Message:    "The page you're looking for doesn't exist.",
		BackURL:    "/",
	}
	templates.Render(w, r, "error_page", data)
}

func currentEmail(r *http.Request) (string, bool) {
	if m, ok := auth.CurrentMember(r); ok {
		return m.Email, true
	}
	return "", false
}

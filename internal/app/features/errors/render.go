// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it will default to /.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	email, signedIn := currentEmail(r)
	if backURL == "" {
		backURL = "/"
	}

	w.WriteHeader(http.StatusUnauthorized)
	data := pageData{
		Title:      "Sign in required",
		IsLoggedIn: signedIn,
		Email:      email,
		Message:    "Please sign in to continue.",
		BackURL:    backURL,
	}
	templates.Render(w, r, "error_page", data)
}

// RenderError shows a friendly error page with a message and status code.
// If backURL is empty, it resolves a safe back URL with a default fallback.
func RenderError(w http.ResponseWriter, r *http.Request, status int, msg, backURL string) {
	email, signedIn := currentEmail(r)
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	w.WriteHeader(status)
	data := pageData{
		Title:      http.StatusText(status),
		IsLoggedIn: signedIn,
		Email:      email,
		Message:    msg,
		BackURL:    backURL,
	}
	templates.Render(w, r, "error_page", data)
}

// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/auth"
)

// Handler clears the member's session.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// HandleLogout signs the member out and returns to the landing page.
// GET /logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Warn("sign out failed", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

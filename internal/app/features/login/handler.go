// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/CUInterface/CanopyAI-Survey/internal/app/features/errors"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/features/home"
	memberstore "github.com/CUInterface/CanopyAI-Survey/internal/app/store/members"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/auth"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/normalize"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/timeouts"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/viewdata"
)

// Handler signs members in by email. There is no password: the email is
// the whole identity, and an unknown address creates a member on the spot.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
	Members *memberstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		ErrLog:  errLog,
		Members: memberstore.New(db),
	}
}

// HandleLoginPost processes the sign-in form.
// POST /login
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Invalid form data.", "/")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	returnURL := r.FormValue("return")

	// The only validation the identity model needs: non-empty, has an "@".
	if email == "" || !strings.Contains(email, "@") {
		h.Log.Warn("login rejected", zap.String("email", email))
		w.WriteHeader(http.StatusBadRequest)
		data := home.PageData{
			BaseVM:    viewdata.NewBaseVM(r, "Welcome", "/"),
			Error:     "Please enter a valid email address.",
			Email:     r.FormValue("email"),
			ReturnURL: returnURL,
		}
		templates.Render(w, r, "home", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login resolve member")
	defer cancel()

	member, err := h.Members.Resolve(ctx, email)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "resolve member failed", err, "A database error occurred.", "/")
		return
	}

	if err := auth.SignIn(w, r, member.ID.Hex(), member.Email); err != nil {
		h.ErrLog.LogServerError(w, r, "create session failed", err, "Unable to sign you in.", "/")
		return
	}

	h.Log.Info("member signed in", zap.String("member_id", member.ID.Hex()))
	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/survey"), http.StatusSeeOther)
}

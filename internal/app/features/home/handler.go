// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/auth"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/viewdata"
)

// Handler holds dependencies needed to serve the landing page.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// PageData is the view model for the landing page. Exported so the login
// feature can re-render the page with a validation error.
type PageData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing / sign-in                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot renders the sign-in form, or sends members who already have a
// session straight to the survey.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentMember(r); ok {
		http.Redirect(w, r, "/survey", http.StatusSeeOther)
		return
	}

	data := PageData{
		BaseVM:    viewdata.NewBaseVM(r, "Welcome", "/"),
		ReturnURL: r.URL.Query().Get("return"),
	}

	templates.Render(w, r, "home", data)
}

// internal/app/features/suggest/handler.go
package suggest

import (
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/CUInterface/CanopyAI-Survey/internal/app/features/errors"
	questionstore "github.com/CUInterface/CanopyAI-Survey/internal/app/store/questions"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/authz"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/htmlsanitize"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/normalize"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/timeouts"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/viewdata"
)

// Handler takes member-submitted question suggestions.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	Questions *questionstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		ErrLog:    errLog,
		Questions: questionstore.New(db),
	}
}

type formData struct {
	viewdata.BaseVM
	Error           string
	QuestionText    string
	Category        string
	FollowUpExample string
	UseCase         string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /suggest – suggestion form                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := authz.MemberCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}

	data := formData{
		BaseVM: viewdata.NewBaseVM(r, "Suggest a Question", "/survey"),
	}
	templates.Render(w, r, "suggest", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /suggest – create the suggestion                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	_, memberID, ok := authz.MemberCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse suggest form failed", err, "Invalid form data.", "/suggest")
		return
	}

	// All free-text fields are stripped of markup before they can reach
	// storage or a page.
	questionText := normalize.Text(htmlsanitize.Strict(r.FormValue("question_text")))
	category := normalize.Category(htmlsanitize.Strict(r.FormValue("category")))
	followUp := normalize.Text(htmlsanitize.Strict(r.FormValue("follow_up_example")))
	useCase := normalize.Text(htmlsanitize.Strict(r.FormValue("use_case")))

	if category == "" {
		category = "general"
	}

	if questionText == "" {
		w.WriteHeader(http.StatusBadRequest)
		data := formData{
			BaseVM:          viewdata.NewBaseVM(r, "Suggest a Question", "/survey"),
			Error:           "Question text is required.",
			Category:        category,
			FollowUpExample: followUp,
			UseCase:         useCase,
		}
		templates.Render(w, r, "suggest", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create suggestion")
	defer cancel()

	q, err := h.Questions.CreateSuggestion(ctx, questionstore.Suggestion{
		QuestionText:    questionText,
		Category:        category,
		FollowUpExample: followUp,
		UseCase:         useCase,
		SuggestedBy:     memberID,
	})
	if err != nil {
		if errors.Is(err, questionstore.ErrConflict) {
			h.Log.Warn("suggestion id conflict", zap.String("member_id", memberID.Hex()))
			uierrors.RenderError(w, r, http.StatusConflict,
				"Your suggestion collided with another submission. Please try again.", "/suggest")
			return
		}
		h.ErrLog.LogServerError(w, r, "create suggestion failed", err, "Unable to save your suggestion.", "/suggest")
		return
	}

	h.Log.Info("suggestion created",
		zap.String("question_id", q.QuestionID),
		zap.String("member_id", memberID.Hex()))
	http.Redirect(w, r, "/survey", http.StatusSeeOther)
}

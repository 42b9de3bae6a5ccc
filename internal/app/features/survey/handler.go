// internal/app/features/survey/handler.go
package survey

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/CUInterface/CanopyAI-Survey/internal/app/features/errors"
	questionstore "github.com/CUInterface/CanopyAI-Survey/internal/app/store/questions"
	scorestore "github.com/CUInterface/CanopyAI-Survey/internal/app/store/scores"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/authz"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/timeouts"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/viewdata"
	"github.com/CUInterface/CanopyAI-Survey/internal/domain/models"
)

// Handler serves the voting page: the full catalog grouped by category
// with the member's current votes marked.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	Questions *questionstore.Store
	Scores    *scorestore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		ErrLog:    errLog,
		Questions: questionstore.New(db),
		Scores:    scorestore.New(db),
	}
}

// categoryGroup is one category section on the survey page.
type categoryGroup struct {
	Key       string
	Label     string
	Questions []models.Question
}

type pageData struct {
	viewdata.BaseVM
	Groups    []categoryGroup
	UserVotes map[string]string // question_id -> "upvote" | "downvote"
}

var categoryLabels = map[string]string{
	models.CategoryMarketing:        "Marketing",
	models.CategoryLoans:            "Loans",
	models.CategoryLiveTransactions: "Live Transactions",
	models.CategoryUserSuggested:    "Suggested by Members",
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /survey – the voting page                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeSurvey(w http.ResponseWriter, r *http.Request) {
	_, memberID, ok := authz.MemberCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "load survey page")
	defer cancel()

	var groups []categoryGroup
	for _, cat := range models.SeededCategories {
		qs, err := h.Questions.ByCategory(ctx, cat)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "load questions failed", err, "A database error occurred.", "/")
			return
		}
		groups = append(groups, categoryGroup{Key: cat, Label: categoryLabels[cat], Questions: qs})
	}

	suggested, err := h.Questions.SuggestedNewestFirst(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load suggested questions failed", err, "A database error occurred.", "/")
		return
	}
	groups = append(groups, categoryGroup{
		Key:       models.CategoryUserSuggested,
		Label:     categoryLabels[models.CategoryUserSuggested],
		Questions: suggested,
	})

	userVotes, err := h.Scores.MemberVotes(ctx, memberID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load member votes failed", err, "A database error occurred.", "/")
		return
	}

	data := pageData{
		BaseVM:    viewdata.NewBaseVM(r, "Survey", "/"),
		Groups:    groups,
		UserVotes: userVotes,
	}
	templates.Render(w, r, "survey", data)
}

// internal/app/features/results/handler.go
package results

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/CUInterface/CanopyAI-Survey/internal/app/features/errors"
	scorestore "github.com/CUInterface/CanopyAI-Survey/internal/app/store/scores"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/normalize"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/timeouts"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/viewdata"
	"github.com/CUInterface/CanopyAI-Survey/internal/domain/models"
)

// Handler serves the leaderboard and its CSV export. Both are public:
// results are meant to be shared without a sign-in.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Scores *scorestore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Scores: scorestore.New(db),
	}
}

type pageData struct {
	viewdata.BaseVM
	Questions     []scorestore.RankedQuestion
	Categories    []string
	CurrentFilter string
}

// filterCategories are the filter tabs shown on the results page.
var filterCategories = []string{
	models.CategoryMarketing,
	models.CategoryLoans,
	models.CategoryLiveTransactions,
	models.CategoryUserSuggested,
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /results – ranked leaderboard, optional ?category= filter               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeResults(w http.ResponseWriter, r *http.Request) {
	filter := normalize.Category(query.Get(r, "category"))
	if filter == "" {
		filter = "all"
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "rank questions")
	defer cancel()

	ranked, err := h.Scores.RankAll(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "rank questions failed", err, "A database error occurred.", "/")
		return
	}

	ranked = filterByCategory(ranked, filter)

	data := pageData{
		BaseVM:        viewdata.NewBaseVM(r, "Results", "/"),
		Questions:     ranked,
		Categories:    filterCategories,
		CurrentFilter: filter,
	}
	templates.Render(w, r, "results", data)
}

// filterByCategory keeps one category's rows. Filtering happens after
// ranking so positions match the unfiltered leaderboard; "all" passes the
// slice through untouched.
func filterByCategory(ranked []scorestore.RankedQuestion, category string) []scorestore.RankedQuestion {
	if category == "all" {
		return ranked
	}
	kept := ranked[:0]
	for _, q := range ranked {
		if q.Question.Category == category {
			kept = append(kept, q)
		}
	}
	return kept
}

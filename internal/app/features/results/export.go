// internal/app/features/results/export.go
package results

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/csvutil"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/timeouts"
)

// HandleExport streams the full ranked catalog as CSV.
// GET /export
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	exportID := uuid.NewString()

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "export results")
	defer cancel()

	ranked, err := h.Scores.RankAll(ctx)
	if err != nil {
		h.Log.Error("export: rank questions failed",
			zap.String("export_id", exportID),
			zap.Error(err))
		http.Error(w, "A database error occurred", http.StatusInternalServerError)
		return
	}

	rows := make([]csvutil.ResultRow, 0, len(ranked))
	for _, q := range ranked {
		rows = append(rows, csvutil.ResultRow{
			QuestionID:      q.Question.QuestionID,
			Category:        q.Question.Category,
			QuestionText:    q.Question.QuestionText,
			FollowUpExample: q.Question.FollowUpExample,
			UseCase:         q.Question.UseCase,
			Upvotes:         q.Upvotes,
			Downvotes:       q.Downvotes,
			NetScore:        q.NetScore,
			IsUserSuggested: q.Question.IsUserSuggested,
		})
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=survey_results.csv`)

	if err := csvutil.WriteResults(w, rows); err != nil {
		// Headers are gone by now; all we can do is log.
		h.Log.Error("export: write csv failed",
			zap.String("export_id", exportID),
			zap.Error(err))
		return
	}

	h.Log.Info("results exported",
		zap.String("export_id", exportID),
		zap.Int("rows", len(rows)))
}

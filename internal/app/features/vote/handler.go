// internal/app/features/vote/handler.go
package vote

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	questionstore "github.com/CUInterface/CanopyAI-Survey/internal/app/store/questions"
	scorestore "github.com/CUInterface/CanopyAI-Survey/internal/app/store/scores"
	votestore "github.com/CUInterface/CanopyAI-Survey/internal/app/store/votes"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/authz"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/normalize"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/timeouts"
)

// Handler is the JSON voting endpoint the survey page calls.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Questions *questionstore.Store
	Votes     *votestore.Store
	Scores    *scorestore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Questions: questionstore.New(db),
		Votes:     votestore.New(db),
		Scores:    scorestore.New(db),
	}
}

type voteRequest struct {
	QuestionID string `json:"question_id"`
	VoteType   string `json:"vote_type"` // "upvote", "downvote", or "remove"
}

// voteResponse carries the recomputed tallies plus the member's own
// disposition, so the page can repaint the row from one round trip.
type voteResponse struct {
	Upvotes   int     `json:"upvotes"`
	Downvotes int     `json:"downvotes"`
	NetScore  int     `json:"net_score"`
	UserVote  *string `json:"user_vote"` // null when no vote remains
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// HandleVote applies one vote intent and returns the fresh tallies.
// POST /vote
func (h *Handler) HandleVote(w http.ResponseWriter, r *http.Request) {
	_, memberID, ok := authz.MemberCtx(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not logged in"})
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
		return
	}

	questionID := normalize.Text(req.QuestionID)
	if questionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing question_id"})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "apply vote")
	defer cancel()

	// The question must exist before any vote state changes.
	if _, err := h.Questions.GetByQuestionID(ctx, questionID); err != nil {
		if errors.Is(err, questionstore.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Question not found"})
			return
		}
		h.Log.Error("load question failed", zap.String("question_id", questionID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "A database error occurred"})
		return
	}

	disposition, err := h.Votes.Apply(ctx, memberID, questionID, normalize.VoteType(req.VoteType))
	if err != nil {
		switch {
		case errors.Is(err, votestore.ErrInvalidVoteType):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid vote_type"})
		case errors.Is(err, votestore.ErrConflict):
			h.Log.Warn("vote conflict",
				zap.String("member_id", memberID.Hex()),
				zap.String("question_id", questionID))
			writeJSON(w, http.StatusConflict, errorResponse{Error: "Vote conflicted with a concurrent update, please retry"})
		default:
			h.Log.Error("apply vote failed", zap.String("question_id", questionID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "A database error occurred"})
		}
		return
	}

	tally, err := h.Scores.Tallies(ctx, questionID)
	if err != nil {
		h.Log.Error("recompute tallies failed", zap.String("question_id", questionID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "A database error occurred"})
		return
	}

	var userVote *string
	if disposition != "" {
		userVote = &disposition
	}
	writeJSON(w, http.StatusOK, voteResponse{
		Upvotes:   tally.Upvotes,
		Downvotes: tally.Downvotes,
		NetScore:  tally.Net(),
		UserVote:  userVote,
	})
}

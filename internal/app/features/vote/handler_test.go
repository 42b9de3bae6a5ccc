package vote_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/CUInterface/CanopyAI-Survey/internal/app/features/vote"
	"github.com/CUInterface/CanopyAI-Survey/internal/domain/models"
	"github.com/CUInterface/CanopyAI-Survey/internal/testutil"
)

func newTestHandler(t *testing.T) (*vote.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := vote.NewHandler(db, zap.NewNop())
	return handler, testutil.NewFixtures(t, db)
}

type voteResponse struct {
	Upvotes   int     `json:"upvotes"`
	Downvotes int     `json:"downvotes"`
	NetScore  int     `json:"net_score"`
	UserVote  *string `json:"user_vote"`
	Error     string  `json:"error"`
}

// userVote flattens the nullable field for assertions; null reads as "".
func (r voteResponse) userVote() string {
	if r.UserVote == nil {
		return ""
	}
	return *r.UserVote
}

func postVote(t *testing.T, handler *vote.Handler, member testutil.TestMember, body string) (*httptest.ResponseRecorder, voteResponse) {
	t.Helper()
	req := httptest.NewRequest("POST", "/vote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if member.ID != "" {
		req = testutil.WithMember(req, member)
	}
	rec := httptest.NewRecorder()
	handler.HandleVote(rec, req)

	var resp voteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v (body %q)", err, rec.Body.String())
	}
	return rec, resp
}

func TestHandleVote_NotSignedIn(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, resp := postVote(t, handler, testutil.TestMember{}, `{"question_id":"mkt_001","vote_type":"upvote"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if resp.Error == "" {
		t.Error("expected error message in response")
	}
}

func TestHandleVote_MissingQuestionID(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, _ := postVote(t, handler, testutil.SignedInMember(), `{"vote_type":"upvote"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandleVote_UnknownQuestion(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, _ := postVote(t, handler, testutil.SignedInMember(), `{"question_id":"mkt_999","vote_type":"upvote"}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestHandleVote_InvalidVoteType(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateQuestion(ctx, "mkt_001", models.CategoryMarketing, "Growth rate?")

	rec, _ := postVote(t, handler, testutil.SignedInMember(), `{"question_id":"mkt_001","vote_type":"sideways"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandleVote_FirstUpvote(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateQuestion(ctx, "mkt_001", models.CategoryMarketing, "Growth rate?")

	rec, resp := postVote(t, handler, testutil.SignedInMember(), `{"question_id":"mkt_001","vote_type":"upvote"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body %q)", rec.Code, rec.Body.String())
	}
	if resp.Upvotes != 1 || resp.Downvotes != 0 || resp.NetScore != 1 {
		t.Errorf("expected 1/0/+1, got %d/%d/%d", resp.Upvotes, resp.Downvotes, resp.NetScore)
	}
	if resp.userVote() != "upvote" {
		t.Errorf("expected user_vote upvote, got %q", resp.userVote())
	}
}

func TestHandleVote_ToggleOff(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateQuestion(ctx, "mkt_001", models.CategoryMarketing, "Growth rate?")
	member := testutil.SignedInMember()

	postVote(t, handler, member, `{"question_id":"mkt_001","vote_type":"upvote"}`)
	rec, resp := postVote(t, handler, member, `{"question_id":"mkt_001","vote_type":"upvote"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if resp.Upvotes != 0 || resp.NetScore != 0 {
		t.Errorf("expected toggle off to zero tallies, got %d/%d", resp.Upvotes, resp.NetScore)
	}
	if resp.UserVote != nil {
		t.Errorf("expected null user_vote, got %q", *resp.UserVote)
	}
	// The wire value is a JSON null, not an empty string.
	if !strings.Contains(rec.Body.String(), `"user_vote":null`) {
		t.Errorf("expected user_vote serialized as null, body %q", rec.Body.String())
	}
}

func TestHandleVote_FlipVote(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateQuestion(ctx, "mkt_001", models.CategoryMarketing, "Growth rate?")
	member := testutil.SignedInMember()

	postVote(t, handler, member, `{"question_id":"mkt_001","vote_type":"upvote"}`)
	rec, resp := postVote(t, handler, member, `{"question_id":"mkt_001","vote_type":"downvote"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if resp.Upvotes != 0 || resp.Downvotes != 1 || resp.NetScore != -1 {
		t.Errorf("expected 0/1/-1, got %d/%d/%d", resp.Upvotes, resp.Downvotes, resp.NetScore)
	}
	if resp.userVote() != "downvote" {
		t.Errorf("expected user_vote downvote, got %q", resp.userVote())
	}
}

func TestHandleVote_Remove(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateQuestion(ctx, "mkt_001", models.CategoryMarketing, "Growth rate?")
	member := testutil.SignedInMember()

	postVote(t, handler, member, `{"question_id":"mkt_001","vote_type":"downvote"}`)
	rec, resp := postVote(t, handler, member, `{"question_id":"mkt_001","vote_type":"remove"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if resp.Downvotes != 0 || resp.UserVote != nil {
		t.Errorf("expected removed vote, got downvotes=%d user_vote=%q", resp.Downvotes, resp.userVote())
	}
}

func TestHandleVote_RemoveWithoutVote(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateQuestion(ctx, "mkt_001", models.CategoryMarketing, "Growth rate?")

	rec, resp := postVote(t, handler, testutil.SignedInMember(), `{"question_id":"mkt_001","vote_type":"remove"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("remove of absent vote should be a 200 no-op, got %d", rec.Code)
	}
	if resp.UserVote != nil {
		t.Errorf("expected null user_vote, got %q", *resp.UserVote)
	}
}

func TestHandleVote_TalliesSpanMembers(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateQuestion(ctx, "mkt_001", models.CategoryMarketing, "Growth rate?")

	postVote(t, handler, testutil.SignedInMember(), `{"question_id":"mkt_001","vote_type":"upvote"}`)
	postVote(t, handler, testutil.SignedInMember(), `{"question_id":"mkt_001","vote_type":"upvote"}`)
	_, resp := postVote(t, handler, testutil.SignedInMember(), `{"question_id":"mkt_001","vote_type":"downvote"}`)

	if resp.Upvotes != 2 || resp.Downvotes != 1 || resp.NetScore != 1 {
		t.Errorf("expected 2/1/+1 across members, got %d/%d/%d", resp.Upvotes, resp.Downvotes, resp.NetScore)
	}
	if resp.userVote() != "downvote" {
		t.Errorf("expected caller's own vote downvote, got %q", resp.userVote())
	}
}

func TestHandleVote_BadJSON(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec, _ := postVote(t, handler, testutil.SignedInMember(), `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

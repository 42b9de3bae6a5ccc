package csvutil

import (
	"strings"
	"testing"
)

func TestWriteResults_HeaderOnly(t *testing.T) {
	var b strings.Builder
	if err := WriteResults(&b, nil); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}

	got := strings.TrimRight(b.String(), "\n")
	want := "Question ID,Category,Question,Follow-up Example,Use Case,Upvotes,Downvotes,Net Score,User Suggested"
	if got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
}

func TestWriteResults_Rows(t *testing.T) {
	rows := []ResultRow{
		{
			QuestionID:   "mkt_001",
			Category:     "marketing",
			QuestionText: "What's our member growth rate this year?",
			FollowUpExample: "compared to last year",
			UseCase:      "Acquisition tracking",
			Upvotes:      5,
			Downvotes:    2,
			NetScore:     3,
		},
		{
			QuestionID:      "user_001",
			Category:        "user_suggested",
			QuestionText:    "Branch wait times by hour",
			Upvotes:         1,
			Downvotes:       0,
			NetScore:        1,
			IsUserSuggested: true,
		},
	}

	var b strings.Builder
	if err := WriteResults(&b, rows); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	if !strings.HasPrefix(lines[1], "mkt_001,marketing,") {
		t.Errorf("row 1 = %q, want mkt_001 first", lines[1])
	}
	if !strings.HasSuffix(lines[1], ",5,2,3,No") {
		t.Errorf("row 1 = %q, want tallies 5,2,3 and No", lines[1])
	}
	if !strings.HasSuffix(lines[2], ",1,0,1,Yes") {
		t.Errorf("row 2 = %q, want User Suggested Yes", lines[2])
	}
}

func TestWriteResults_QuotesCommasInText(t *testing.T) {
	rows := []ResultRow{
		{
			QuestionID:   "live_002",
			Category:     "live_transactions",
			QuestionText: "Show large transactions today, over $10,000",
			Upvotes:      0,
			Downvotes:    0,
			NetScore:     0,
		},
	}

	var b strings.Builder
	if err := WriteResults(&b, rows); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}

	if !strings.Contains(b.String(), `"Show large transactions today, over $10,000"`) {
		t.Errorf("expected quoted field, got %q", b.String())
	}
}

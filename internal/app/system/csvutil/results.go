// internal/app/system/csvutil/results.go
package csvutil

import (
	"encoding/csv"
	"io"
	"strconv"
)

// ResultRow is one exported question with its recomputed tallies.
// Rows are written in the order given; callers sort before calling.
type ResultRow struct {
	QuestionID      string
	Category        string
	QuestionText    string
	FollowUpExample string
	UseCase         string
	Upvotes         int
	Downvotes       int
	NetScore        int
	IsUserSuggested bool
}

// ResultsHeader is the fixed column header for the results export.
// Downstream spreadsheets key on these exact names; do not reorder.
var ResultsHeader = []string{
	"Question ID", "Category", "Question", "Follow-up Example",
	"Use Case", "Upvotes", "Downvotes", "Net Score", "User Suggested",
}

// WriteResults writes the header plus one row per question to w.
func WriteResults(w io.Writer, rows []ResultRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ResultsHeader); err != nil {
		return err
	}

	for _, row := range rows {
		suggested := "No"
		if row.IsUserSuggested {
			suggested = "Yes"
		}
		rec := []string{
			row.QuestionID,
			row.Category,
			row.QuestionText,
			row.FollowUpExample,
			row.UseCase,
			strconv.Itoa(row.Upvotes),
			strconv.Itoa(row.Downvotes),
			strconv.Itoa(row.NetScore),
			suggested,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

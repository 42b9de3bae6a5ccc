// internal/app/system/seed/seed.go
package seed

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/CUInterface/CanopyAI-Survey/internal/domain/models"
)

type seedQuestion struct {
	QuestionID      string
	QuestionText    string
	FollowUpExample string
	UseCase         string
}

// Questions seeds the 30 pre-generated catalog questions.
// It is a no-op when the questions collection is non-empty, so partial
// catalogs from earlier runs are never mixed with a fresh seed.
func Questions(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	coll := db.Collection("questions")

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count questions: %w", err)
	}
	if count > 0 {
		logger.Info("question catalog already seeded", zap.Int64("existing", count))
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, 30)

	add := func(category string, qs []seedQuestion) {
		for _, q := range qs {
			docs = append(docs, models.Question{
				QuestionID:      q.QuestionID,
				Category:        category,
				QuestionText:    q.QuestionText,
				FollowUpExample: q.FollowUpExample,
				UseCase:         q.UseCase,
				IsUserSuggested: false,
				CreatedAt:       now,
			})
		}
	}

	add(models.CategoryMarketing, marketingQuestions)
	add(models.CategoryLoans, loansQuestions)
	add(models.CategoryLiveTransactions, liveTransactionsQuestions)

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert seed questions: %w", err)
	}

	logger.Info("seeded question catalog", zap.Int("count", len(docs)))
	return nil
}

var marketingQuestions = []seedQuestion{
	{"mkt_001", "What's our member growth rate this year?", "compared to last year", "Acquisition tracking"},
	{"mkt_002", "Show me members by age group", "who have auto loans", "Demographic segmentation"},
	{"mkt_003", "Which members have only one product with us?", "checking account only", "Cross-sell opportunity"},
	{"mkt_004", "How many members joined from each channel?", "online vs branch vs referral", "Channel attribution"},
	{"mkt_005", "Show members who haven't logged in recently", "over 90 days", "Engagement/retention"},
	{"mkt_006", "Which zip codes have the most members?", "with high loan balances", "Geographic targeting"},
	{"mkt_007", "Members approaching loan payoff", "within 6 months", "Refinance campaigns"},
	{"mkt_008", "Show members with high share balances but no loans", "over $50k in deposits", "Loan cross-sell"},
	{"mkt_009", "What's the average member tenure?", "by product type", "Retention analysis"},
	{"mkt_010", "New members this month by branch", "with their first products", "Onboarding tracking"},
}

var loansQuestions = []seedQuestion{
	{"loan_001", "What loans are maturing next month?", "auto loans only", "Retention/refinance"},
	{"loan_002", "Show my pipeline as a loan officer", "(by officer ID)", "Pipeline management"},
	{"loan_003", "Average time to fund a loan", "by loan type", "Process efficiency"},
	{"loan_004", "Loans originated this quarter", "by dollar volume", "Production tracking"},
	{"loan_005", "Which loans have rate adjustments coming up?", "ARMs in next 90 days", "Rate monitoring"},
	{"loan_006", "Show loans with high DTI ratios", "over 40%", "Risk assessment"},
	{"loan_007", "Members with loan payoff quotes", "requested this week", "Payoff tracking"},
	{"loan_008", "Compare our rates to origination volume", "are competitive rates driving volume?", "Pricing analysis"},
	{"loan_009", "Loans with multiple co-borrowers", "show guarantors", "Relationship mapping"},
	{"loan_010", "Which loan products have highest approval rates?", "by credit tier", "Product performance"},
}

var liveTransactionsQuestions = []seedQuestion{
	{"live_001", "What's happening right now?", "last 15 minutes", "Real-time monitoring"},
	{"live_002", "Show large transactions today", "over $10,000", "Unusual activity"},
	{"live_003", "Any declined transactions in the last hour?", "show reason codes", "Issue triage"},
	{"live_004", "Current pending ACH batches", "by dollar amount", "Settlement tracking"},
	{"live_005", "Card swipes happening now", "by merchant type", "Real-time card activity"},
	{"live_006", "Show wire transfers today", "outgoing only", "Wire monitoring"},
	{"live_007", "Any unusual account activity?", "multiple transactions same account", "Fraud detection"},
	{"live_008", "What's our transaction volume today vs yesterday?", "same time period", "Volume comparison"},
	{"live_009", "Show mobile deposit activity", "pending review", "Remote deposit capture"},
	{"live_010", "Current ATM network status", "any offline machines", "Operations monitoring"},
}

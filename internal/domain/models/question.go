// internal/domain/models/question.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question categories. Seeded questions belong to one of the first three;
// member-submitted questions always land in CategoryUserSuggested.
const (
	CategoryMarketing        = "marketing"
	CategoryLoans            = "loans"
	CategoryLiveTransactions = "live_transactions"
	CategoryUserSuggested    = "user_suggested"
)

// SeededCategories lists the catalog categories in display order.
var SeededCategories = []string{
	CategoryMarketing,
	CategoryLoans,
	CategoryLiveTransactions,
}

// IsValidCategory reports whether cat is a known category tag.
func IsValidCategory(cat string) bool {
	switch cat {
	case CategoryMarketing, CategoryLoans, CategoryLiveTransactions, CategoryUserSuggested:
		return true
	}
	return false
}

// Question is a catalog item that can be upvoted, downvoted, or ignored.
// QuestionID is the stable human-readable identifier (a seeded code like
// "mkt_001" or a generated suggestion code like "user_004") and is unique
// across the catalog. Questions are immutable once created.
type Question struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	QuestionID      string              `bson:"question_id" json:"question_id"`
	Category        string              `bson:"category" json:"category"`
	QuestionText    string              `bson:"question_text" json:"question_text"`
	FollowUpExample string              `bson:"follow_up_example,omitempty" json:"follow_up_example,omitempty"`
	UseCase         string              `bson:"use_case,omitempty" json:"use_case,omitempty"`
	IsUserSuggested bool                `bson:"is_user_suggested" json:"is_user_suggested"`
	SuggestedBy     *primitive.ObjectID `bson:"suggested_by,omitempty" json:"suggested_by,omitempty"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
}

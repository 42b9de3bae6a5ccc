// internal/domain/models/vote.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vote dispositions. There is no stored "neutral" value: the absence of a
// Vote document for a (member, question) pair is the neutral state.
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// Vote is a member's current disposition toward a question. At most one
// Vote exists per (member, question) pair, enforced by a unique compound
// index on (member_id, question_id).
type Vote struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID   primitive.ObjectID `bson:"member_id" json:"member_id"`
	QuestionID string             `bson:"question_id" json:"question_id"`
	VoteType   string             `bson:"vote_type" json:"vote_type"` // upvote | downvote
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

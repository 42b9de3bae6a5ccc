package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CUInterface/CanopyAI-Survey/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateMember inserts a member with the given email.
func (f *Fixtures) CreateMember(ctx context.Context, email string) models.Member {
	f.t.Helper()

	m := models.Member{
		ID:        primitive.NewObjectID(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	return m
}

// CreateQuestion inserts a catalog question with the given id, category,
// and text.
func (f *Fixtures) CreateQuestion(ctx context.Context, questionID, category, text string) models.Question {
	f.t.Helper()

	q := models.Question{
		ID:           primitive.NewObjectID(),
		QuestionID:   questionID,
		Category:     category,
		QuestionText: text,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := f.db.Collection("questions").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("failed to create test question: %v", err)
	}
	return q
}

// CreateSuggestedQuestion inserts a member-submitted question.
func (f *Fixtures) CreateSuggestedQuestion(ctx context.Context, questionID, text string, suggestedBy primitive.ObjectID) models.Question {
	f.t.Helper()

	q := models.Question{
		ID:              primitive.NewObjectID(),
		QuestionID:      questionID,
		Category:        models.CategoryUserSuggested,
		QuestionText:    text,
		IsUserSuggested: true,
		SuggestedBy:     &suggestedBy,
		CreatedAt:       time.Now().UTC(),
	}
	if _, err := f.db.Collection("questions").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("failed to create test question: %v", err)
	}
	return q
}

// CreateVote inserts a vote document directly.
func (f *Fixtures) CreateVote(ctx context.Context, memberID primitive.ObjectID, questionID, voteType string) models.Vote {
	f.t.Helper()

	v := models.Vote{
		ID:         primitive.NewObjectID(),
		MemberID:   memberID,
		QuestionID: questionID,
		VoteType:   voteType,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("votes").InsertOne(ctx, v); err != nil {
		f.t.Fatalf("failed to create test vote: %v", err)
	}
	return v
}

package questionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CUInterface/CanopyAI-Survey/internal/domain/models"
)

type Store struct {
	c        *mongo.Collection
	counters *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("questions"),
		counters: db.Collection("counters"),
	}
}

var (
	// ErrNotFound is returned when no question matches the given question_id.
	ErrNotFound = errors.New("question not found")
	// ErrEmptyText is returned when a suggestion's question text is blank.
	ErrEmptyText = errors.New("question text is required")
	// ErrConflict is returned when suggestion id generation keeps colliding
	// with concurrent submissions after the retry budget runs out.
	ErrConflict = errors.New("suggestion id conflict")
)

// GetByQuestionID loads a question by its stable identifier ("mkt_001",
// "user_004", ...). Returns ErrNotFound when no such question exists.
func (s *Store) GetByQuestionID(ctx context.Context, questionID string) (*models.Question, error) {
	var q models.Question
	if err := s.c.FindOne(ctx, bson.M{"question_id": questionID}).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// ByCategory lists one category's questions ordered by question_id.
func (s *Store) ByCategory(ctx context.Context, category string) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "question_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Question
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SuggestedNewestFirst lists member-submitted questions, newest first.
func (s *Store) SuggestedNewestFirst(ctx context.Context) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"is_user_suggested": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Question
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// All returns the full catalog, seeded and suggested alike.
func (s *Store) All(ctx context.Context) ([]models.Question, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Question
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// suggestionCounter is the _id of the counters document that hands out
// suggestion sequence numbers.
const suggestionCounter = "user_suggestion"

// nextSuggestionSeq atomically increments and returns the suggestion
// sequence. The upsert creates the counter on first use.
func (s *Store) nextSuggestionSeq(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": suggestionCounter},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// SeedSuggestionCounter initializes the counter from the number of
// suggestions already stored. Used at startup so databases created before
// the counter existed keep a monotonic sequence. SetOnInsert makes it a
// no-op when the counter document is already present.
func (s *Store) SeedSuggestionCounter(ctx context.Context) error {
	n, err := s.c.CountDocuments(ctx, bson.M{"is_user_suggested": true})
	if err != nil {
		return err
	}
	_, err = s.counters.UpdateOne(ctx,
		bson.M{"_id": suggestionCounter},
		bson.M{"$setOnInsert": bson.M{"seq": n}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Suggestion holds the member-supplied fields for a new question.
// Text fields are expected to be sanitized and trimmed by the caller.
type Suggestion struct {
	QuestionText    string
	Category        string
	FollowUpExample string
	UseCase         string
	SuggestedBy     primitive.ObjectID
}

// CreateSuggestion stores a member-submitted question under the
// user_suggested category with a generated "user_NNN" identifier.
//
// The submitted category is advisory only. Suggestions always land in the
// user_suggested bucket, and when no explicit use case is given the chosen
// category is kept there so the intent isn't lost.
//
// The sequence counter makes collisions on question_id practically
// impossible, but the unique index is still the arbiter: on a duplicate
// key we draw a fresh sequence number and retry a couple of times.
func (s *Store) CreateSuggestion(ctx context.Context, sug Suggestion) (*models.Question, error) {
	if sug.QuestionText == "" {
		return nil, ErrEmptyText
	}

	useCase := sug.UseCase
	if useCase == "" {
		useCase = sug.Category
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		seq, err := s.nextSuggestionSeq(ctx)
		if err != nil {
			return nil, err
		}

		suggestedBy := sug.SuggestedBy
		q := models.Question{
			ID:              primitive.NewObjectID(),
			QuestionID:      fmt.Sprintf("user_%03d", seq),
			Category:        models.CategoryUserSuggested,
			QuestionText:    sug.QuestionText,
			FollowUpExample: sug.FollowUpExample,
			UseCase:         useCase,
			IsUserSuggested: true,
			SuggestedBy:     &suggestedBy,
			CreatedAt:       time.Now(),
		}

		if _, err := s.c.InsertOne(ctx, q); err != nil {
			if wafflemongo.IsDup(err) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return &q, nil
	}
	return nil, fmt.Errorf("create suggestion: exhausted retries: %w: %v", ErrConflict, lastErr)
}

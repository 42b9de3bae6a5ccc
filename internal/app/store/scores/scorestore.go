package scorestore

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CUInterface/CanopyAI-Survey/internal/domain/models"
)

// Store derives tallies and rankings from the votes and questions
// collections. Counts are always recomputed from the vote documents;
// nothing here maintains cached counters, so a tally can never drift
// from the votes that back it.
type Store struct {
	votes     *mongo.Collection
	questions *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		votes:     db.Collection("votes"),
		questions: db.Collection("questions"),
	}
}

// Tally is the recomputed vote count for one question.
type Tally struct {
	Upvotes   int
	Downvotes int
}

// Net returns upvotes minus downvotes.
func (t Tally) Net() int { return t.Upvotes - t.Downvotes }

// Tallies recomputes the vote counts for a single question.
func (s *Store) Tallies(ctx context.Context, questionID string) (Tally, error) {
	grouped, err := s.groupCounts(ctx, bson.M{"question_id": questionID})
	if err != nil {
		return Tally{}, err
	}
	return grouped[questionID], nil
}

// CurrentDisposition returns the member's vote type for one question, or
// the empty string when the member has not voted on it.
func (s *Store) CurrentDisposition(ctx context.Context, memberID primitive.ObjectID, questionID string) (string, error) {
	var v models.Vote
	err := s.votes.FindOne(ctx, bson.M{
		"member_id":   memberID,
		"question_id": questionID,
	}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v.VoteType, nil
}

// MemberVotes returns a member's current dispositions keyed by
// question_id. Questions the member hasn't voted on are absent.
func (s *Store) MemberVotes(ctx context.Context, memberID primitive.ObjectID) (map[string]string, error) {
	cur, err := s.votes.Find(ctx, bson.M{"member_id": memberID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]string{}
	for cur.Next(ctx) {
		var v models.Vote
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out[v.QuestionID] = v.VoteType
	}
	return out, cur.Err()
}

// RankedQuestion pairs a question with its recomputed tallies.
type RankedQuestion struct {
	Question  models.Question
	Upvotes   int
	Downvotes int
	NetScore  int
}

// RankAll returns every question with its tallies, ordered by net score
// descending. Ties break on question_id ascending so the ordering is
// stable across requests and exports.
func (s *Store) RankAll(ctx context.Context) ([]RankedQuestion, error) {
	cur, err := s.questions.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}

	grouped, err := s.groupCounts(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedQuestion, 0, len(questions))
	for _, q := range questions {
		t := grouped[q.QuestionID]
		ranked = append(ranked, RankedQuestion{
			Question:  q,
			Upvotes:   t.Upvotes,
			Downvotes: t.Downvotes,
			NetScore:  t.Net(),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].NetScore != ranked[j].NetScore {
			return ranked[i].NetScore > ranked[j].NetScore
		}
		return ranked[i].Question.QuestionID < ranked[j].Question.QuestionID
	})
	return ranked, nil
}

// groupCounts aggregates vote documents matching filter into per-question
// tallies.
func (s *Store) groupCounts(ctx context.Context, filter bson.M) (map[string]Tally, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"question_id": "$question_id",
				"vote_type":   "$vote_type",
			},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := s.votes.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]Tally{}
	for cur.Next(ctx) {
		var row struct {
			ID struct {
				QuestionID string `bson:"question_id"`
				VoteType   string `bson:"vote_type"`
			} `bson:"_id"`
			Count int `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		t := out[row.ID.QuestionID]
		switch row.ID.VoteType {
		case models.VoteUp:
			t.Upvotes = row.Count
		case models.VoteDown:
			t.Downvotes = row.Count
		}
		out[row.ID.QuestionID] = t
	}
	return out, cur.Err()
}

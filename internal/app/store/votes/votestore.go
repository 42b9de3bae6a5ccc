package votestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CUInterface/CanopyAI-Survey/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("votes")}
}

// Vote intents accepted by Apply. "upvote" and "downvote" match the stored
// vote types; "remove" clears whatever vote exists.
const (
	IntentUp     = models.VoteUp
	IntentDown   = models.VoteDown
	IntentRemove = "remove"
)

var (
	// ErrInvalidVoteType is returned for an intent outside the accepted set.
	ErrInvalidVoteType = errors.New(`vote_type must be "upvote", "downvote", or "remove"`)
	// ErrConflict is returned when concurrent writers kept invalidating our
	// read and the retry budget ran out.
	ErrConflict = errors.New("vote conflicted with a concurrent update")
)

// Get returns the member's current vote for a question, or
// mongo.ErrNoDocuments if there is none.
func (s *Store) Get(ctx context.Context, memberID primitive.ObjectID, questionID string) (*models.Vote, error) {
	var v models.Vote
	err := s.c.FindOne(ctx, bson.M{"member_id": memberID, "question_id": questionID}).Decode(&v)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ByMember returns all of one member's current votes.
func (s *Store) ByMember(ctx context.Context, memberID primitive.ObjectID) ([]models.Vote, error) {
	cur, err := s.c.Find(ctx, bson.M{"member_id": memberID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Vote
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

/*
Apply moves the member's vote on a question through the transition table:

	current \ intent   upvote          downvote        remove
	none               create upvote   create downvote no-op
	upvote             delete (toggle) flip to down    delete
	downvote           flip to up      delete (toggle) delete

The returned string is the member's disposition after the write: "upvote",
"downvote", or "" when no vote remains.

Apply is read-then-write without a transaction. The unique
(member_id, question_id) index catches racing inserts as duplicate keys,
and each conditional write re-checks the state it read. When a write
lands on a state someone else already changed, we re-read and reapply,
up to three attempts, then give up with ErrConflict. Reapplying against
the fresh state keeps the operation idempotent per intent: two racing
identical requests settle on the same final disposition.
*/
func (s *Store) Apply(ctx context.Context, memberID primitive.ObjectID, questionID, intent string) (string, error) {
	switch intent {
	case IntentUp, IntentDown, IntentRemove:
	default:
		return "", ErrInvalidVoteType
	}

	filter := bson.M{"member_id": memberID, "question_id": questionID}

	for attempt := 0; attempt < 3; attempt++ {
		var current models.Vote
		err := s.c.FindOne(ctx, filter).Decode(&current)
		exists := err == nil
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return "", err
		}

		switch {
		case intent == IntentRemove:
			// Removing an absent vote is a no-op, not an error.
			if _, err := s.c.DeleteOne(ctx, filter); err != nil {
				return "", err
			}
			return "", nil

		case !exists:
			v := models.Vote{
				ID:         primitive.NewObjectID(),
				MemberID:   memberID,
				QuestionID: questionID,
				VoteType:   intent,
				CreatedAt:  time.Now(),
			}
			if _, err := s.c.InsertOne(ctx, v); err != nil {
				if wafflemongo.IsDup(err) {
					// Lost an insert race; re-read and reapply.
					continue
				}
				return "", err
			}
			return intent, nil

		case current.VoteType == intent:
			// Same vote again toggles it off. Guard on vote_type so we
			// only delete the state we actually read.
			res, err := s.c.DeleteOne(ctx, bson.M{
				"member_id":   memberID,
				"question_id": questionID,
				"vote_type":   current.VoteType,
			})
			if err != nil {
				return "", err
			}
			if res.DeletedCount == 0 {
				continue
			}
			return "", nil

		default:
			// Opposite intent replaces the existing vote in place.
			res, err := s.c.UpdateOne(ctx,
				bson.M{
					"member_id":   memberID,
					"question_id": questionID,
					"vote_type":   current.VoteType,
				},
				bson.M{"$set": bson.M{
					"vote_type":  intent,
					"created_at": time.Now(),
				}},
			)
			if err != nil {
				return "", err
			}
			if res.MatchedCount == 0 {
				continue
			}
			return intent, nil
		}
	}

	return "", ErrConflict
}

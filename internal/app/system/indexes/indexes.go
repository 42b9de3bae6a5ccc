// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The unique indexes here are load-bearing, not advisory: the vote engine
and suggestion intake rely on uniq_votes_member_question and
uniq_questions_qid to turn write races into retryable duplicate-key
conflicts.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureMembers(ctx, db); err != nil {
		problems = append(problems, "members: "+err.Error())
	}
	if err := ensureQuestions(ctx, db); err != nil {
		problems = append(problems, "questions: "+err.Error())
	}
	if err := ensureVotes(ctx, db); err != nil {
		problems = append(problems, "votes: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		zap.L().Info("ensuring index",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))

		// Load existing indexes so re-runs reuse instead of erroring.
		existing := map[string]existingIndex{} // sig -> index
		cur, err := coll.Indexes().List(ctx)
		if err == nil {
			for cur.Next(ctx) {
				var idx existingIndex
				if err := cur.Decode(&idx); err != nil {
					zap.L().Warn("failed to decode existing index",
						zap.String("collection", coll.Name()),
						zap.Error(err))
					continue
				}
				existing[keySig(idx.Key)] = idx
			}
			cur.Close(ctx)
		}

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig))
				continue
			}

			// Options mismatch (e.g. upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureMembers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("members")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email is the identity token; one member per normalized email.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_members_email"),
		},
	})
}

func ensureQuestions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("questions")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Human-readable question_id (seed code or user_NNN) must be unique.
		{
			Keys:    bson.D{{Key: "question_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_questions_qid"),
		},
		// Category listings ordered by question_id (survey page).
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "question_id", Value: 1},
			},
			Options: options.Index().SetName("idx_questions_category_qid"),
		},
		// Suggested questions listed newest-first.
		{
			Keys: bson.D{
				{Key: "is_user_suggested", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_questions_suggested_created"),
		},
	})
}

func ensureVotes(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("votes")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Core invariant: at most one vote per (member, question) pair.
		{
			Keys: bson.D{
				{Key: "member_id", Value: 1},
				{Key: "question_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_votes_member_question"),
		},
		// Tally recomputation per question.
		{
			Keys: bson.D{
				{Key: "question_id", Value: 1},
				{Key: "vote_type", Value: 1},
			},
			Options: options.Index().SetName("idx_votes_question_type"),
		},
		// A member's current votes (survey page render).
		{
			Keys:    bson.D{{Key: "member_id", Value: 1}},
			Options: options.Index().SetName("idx_votes_member"),
		},
	})
}

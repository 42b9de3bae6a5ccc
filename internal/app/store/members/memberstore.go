package memberstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/normalize"
	"github.com/CUInterface/CanopyAI-Survey/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("members")}
}

// ErrEmptyEmail is returned when the email normalizes to an empty string.
var ErrEmptyEmail = errors.New("email is required")

// GetByID loads a member by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByEmail looks up a member by case-insensitive email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Resolve returns the member for email, creating one if none exists.
// Email is the only identity we hold; there is no password step.
//
// Two concurrent first sign-ins for the same address race on the insert.
// The unique email index makes the loser's insert fail with a duplicate
// key, and we re-read the winner's document.
func (s *Store) Resolve(ctx context.Context, email string) (*models.Member, error) {
	norm := normalize.Email(email)
	if norm == "" {
		return nil, ErrEmptyEmail
	}

	var m models.Member
	err := s.c.FindOne(ctx, bson.M{"email": norm}).Decode(&m)
	if err == nil {
		return &m, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	m = models.Member{
		ID:        primitive.NewObjectID(),
		Email:     norm,
		CreatedAt: time.Now(),
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			var existing models.Member
			if rerr := s.c.FindOne(ctx, bson.M{"email": norm}).Decode(&existing); rerr != nil {
				return nil, rerr
			}
			return &existing, nil
		}
		return nil, err
	}
	return &m, nil
}

package memberstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	memberstore "github.com/CUInterface/CanopyAI-Survey/internal/app/store/members"
	"github.com/CUInterface/CanopyAI-Survey/internal/testutil"
)

func TestStore_Resolve_CreatesNewMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := store.Resolve(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if m.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if m.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %q", m.Email)
	}
	if m.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Resolve_ReturnsExistingMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Resolve(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}

	second, err := store.Resolve(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected same member, got %s and %s", first.ID.Hex(), second.ID.Hex())
	}
}

func TestStore_Resolve_NormalizesEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Resolve(ctx, "Carol@Example.COM")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if first.Email != "carol@example.com" {
		t.Errorf("expected lowered email, got %q", first.Email)
	}

	second, err := store.Resolve(ctx, "  carol@example.com  ")
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
	if first.ID != second.ID {
		t.Error("expected case/space variants to resolve to the same member")
	}
}

func TestStore_Resolve_EmptyEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Resolve(ctx, "   "); !errors.Is(err, memberstore.ErrEmptyEmail) {
		t.Errorf("expected ErrEmptyEmail, got %v", err)
	}
}

func TestStore_GetByEmail_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

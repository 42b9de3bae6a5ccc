package bootstrap

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/CUInterface/CanopyAI-Survey/internal/testutil"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureSchema_SeedsCatalogOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	appCfg := AppConfig{SeedQuestions: true}

	if err := EnsureSchema(ctx, nil, appCfg, deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	count, err := db.Collection("questions").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 30 {
		t.Errorf("expected 30 seeded questions, got %d", count)
	}

	// A second run must not duplicate the catalog.
	if err := EnsureSchema(ctx, nil, appCfg, deps, testLogger()); err != nil {
		t.Fatalf("second EnsureSchema failed: %v", err)
	}
	count, err = db.Collection("questions").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 30 {
		t.Errorf("expected catalog unchanged after re-run, got %d", count)
	}
}

func TestEnsureSchema_SeedDisabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	if err := EnsureSchema(ctx, nil, AppConfig{SeedQuestions: false}, deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	count, err := db.Collection("questions").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty catalog, got %d", count)
	}
}

func TestEnsureSchema_CreatesUniqueIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	cur, err := db.Collection("votes").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	found := false
	for cur.Next(ctx) {
		var idx struct {
			Name string `bson:"name"`
		}
		if err := cur.Decode(&idx); err != nil {
			t.Fatalf("decode index failed: %v", err)
		}
		if idx.Name == "uniq_votes_member_question" {
			found = true
		}
	}
	if !found {
		t.Error("expected uniq_votes_member_question index on votes")
	}
}

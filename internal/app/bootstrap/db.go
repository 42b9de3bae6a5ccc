// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	questionstore "github.com/CUInterface/CanopyAI-Survey/internal/app/store/questions"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/indexes"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/seed"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/validators"
)

// EnsureSchema prepares the database before the app takes traffic:
// collections with validators, the unique indexes the vote and suggestion
// paths depend on, the suggestion sequence counter, and (optionally) the
// starter question catalog. Every step is idempotent.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	if err := validators.EnsureAll(ctx, db); err != nil {
		logger.Error("collection validators failed", zap.Error(err))
		return err
	}

	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("index reconciliation failed", zap.Error(err))
		return err
	}

	if err := questionstore.New(db).SeedSuggestionCounter(ctx); err != nil {
		logger.Error("suggestion counter init failed", zap.Error(err))
		return err
	}

	if appCfg.SeedQuestions {
		if err := seed.Questions(ctx, db, logger); err != nil {
			logger.Error("question seed failed", zap.Error(err))
			return err
		}
	}

	return nil
}

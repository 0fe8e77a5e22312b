package bootstrap

import (
	"context"
	"fmt"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/config"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/database"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
)

// NewCacheBackend opens the cache for stage. TEST runs an in-process server.
func NewCacheBackend(ctx context.Context, stage config.Stage, cfg config.CacheConfig) (*database.RedisDB, error) {
	switch stage {
	case config.StageTest:
		cache, err := database.NewMemoryRedis(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to start test cache: %w", err)
		}
		return cache, nil

	case config.StageStaging, config.StageProduction:
		cache, err := database.NewRedis(ctx, cfg)
		if err != nil {
			return nil, apperrors.BackendConnectionFailure("cache", err)
		}
		return cache, nil
	}

	return nil, apperrors.UnknownDeploymentStage(string(stage))
}

package bootstrap

import (
	"context"
	"fmt"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/config"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/database"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/schema"
)

// NewStorageBackend opens the storage handle for stage and returns it with
// the metadata bound to it.
//
// TEST gets an in-process SQLite database and empty metadata; repositories
// declare their own tables. STAGING and PRODUCTION connect to the configured
// server and declare every known table up front.
func NewStorageBackend(ctx context.Context, stage config.Stage, cfg config.StorageConfig) (*database.StorageDB, *schema.Metadata, error) {
	switch stage {
	case config.StageTest:
		db, err := database.NewMemory(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open test storage: %w", err)
		}
		return db, schema.NewMetadata(db), nil

	case config.StageStaging, config.StageProduction:
		db, err := openNetworkStorage(ctx, cfg)
		if err != nil {
			return nil, nil, apperrors.BackendConnectionFailure("storage", err)
		}

		md := schema.NewMetadata(db)
		if err := schema.DeclareKnown(md); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		if err := md.CreateAll(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to create tables: %w", err)
		}
		return db, md, nil
	}

	return nil, nil, apperrors.UnknownDeploymentStage(string(stage))
}

func openNetworkStorage(ctx context.Context, cfg config.StorageConfig) (*database.StorageDB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return database.NewPostgres(ctx, cfg)
	case config.DriverMySQL, "":
		return database.NewMySQL(ctx, cfg)
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
}

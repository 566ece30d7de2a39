package container

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector/config"
	"github.com/oksasatya/devconnector/internal/infrastructure/memory"
	mongoinfra "github.com/oksasatya/devconnector/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/devconnector/internal/infrastructure/postgres"
)

// OpenStore connects the document store selected by cfg.StoreDriver and
// installs its repositories. The returned func releases the connection.
func OpenStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		m, err := mongoinfra.New(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		profiles := mongoinfra.NewProfileRepository(m)
		SetStore(mongoinfra.NewIdentityRepository(m), profiles, profiles)
		logger.Info("store: mongo")
		return func() { _ = m.Close(context.Background()) }, nil

	case config.StoreMemory:
		m := memory.NewStore()
		SetStore(m, m, m)
		logger.Warn("store: memory, data is not persisted")
		return func() {}, nil

	case config.StorePostgres, "":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		profiles := pginfra.NewProfileRepository(pool)
		SetStore(pginfra.NewIdentityRepository(pool), profiles, profiles)
		logger.Info("store: postgres")
		return pool.Close, nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

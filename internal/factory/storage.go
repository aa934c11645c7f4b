package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloomworks/bloom-practice/internal/config"
	storepkg "github.com/bloomworks/bloom-practice/internal/store"
	storepg "github.com/bloomworks/bloom-practice/internal/store/postgres"
	storesqlite "github.com/bloomworks/bloom-practice/internal/store/sqlite"
)

// NewStore returns a store.Store for the configured driver. The sqlite path
// opens and migrates synchronously; postgres opens synchronously and runs a
// bootstrap schema check in the background so startup stays fast.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		db, err := storesqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return storesqlite.NewWithDB(db), nil

	case "postgres":
		dsn := cfg.PostgresDSN
		if dsn == "" {
			return nil, fmt.Errorf("PRACTICE_BACKEND_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(dsn)
		if err != nil {
			return nil, err
		}
		go func() {
			bootstrapCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := storepg.Bootstrap(bootstrapCtx, dsn); err != nil {
				log.Warn().Err(err).Str("driver", cfg.DBDriver).Msg("store bootstrap check failed")
			} else {
				log.Debug().Str("driver", cfg.DBDriver).Msg("store bootstrap check completed")
			}
		}()
		return storepg.NewWithDB(db), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

package generator

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/gositemap/internal/config"
	"github.com/jonesrussell/gositemap/internal/discover"
	"github.com/jonesrussell/gositemap/internal/logger"
	"github.com/jonesrussell/gositemap/internal/source"
)

// Providers assembles the entry providers declared in the configuration,
// in the order they run: static file, database, site discovery. db may
// be nil when the Postgres provider is disabled.
func Providers(cfg *config.Config, log logger.Interface, db *sqlx.DB) ([]source.Provider, error) {
	var providers []source.Provider

	if cfg.Sources.File != "" {
		providers = append(providers, source.NewStaticProvider(cfg.Sources.File))
	}

	if cfg.Sources.Postgres.Enabled {
		if db == nil {
			return nil, fmt.Errorf("postgres source enabled but no database connection")
		}
		pg, err := source.NewPostgresProvider(db, cfg.Sources.Postgres.Table, log)
		if err != nil {
			return nil, fmt.Errorf("create postgres provider: %w", err)
		}
		providers = append(providers, pg)
	}

	for _, dc := range cfg.Sources.Discover {
		providers = append(providers, discover.NewProvider(dc, log))
	}

	return providers, nil
}

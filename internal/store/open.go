package store

import (
	"context"
	"fmt"

	"github.com/Tleuberdina/bot-project/internal/config"
)

// Open returns the repository selected by cfg.DBDriver.
func Open(ctx context.Context, cfg config.Config) (*SQLRepo, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.DBPath)
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
	}
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "pgx" driver.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// OpenPostgres connects to PostgreSQL through pgx, verifies the connection
// and runs migrations.
func OpenPostgres(ctx context.Context, dsn string) (*SQLRepo, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := RunMigrations(ctx, db, postgresDialect.name); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return newSQLRepo(db, postgresDialect), nil
}

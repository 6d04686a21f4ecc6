package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/ynxchain/ynx-indexer/internal/db"
	"github.com/ynxchain/ynx-indexer/internal/logger"
)

//go:embed 001_indexer_state.sql
var mig001 string

// All returns the checkpoint database migrations in order.
func All() []db.Migration {
	return []db.Migration{
		{
			ID:  "001_indexer_state.sql",
			SQL: mig001,
		},
	}
}

// RunMigrations brings the checkpoint database schema up to date.
func RunMigrations(log *logger.Logger, sqlDB *sql.DB) error {
	return db.RunMigrationsDB(log, sqlDB, All())
}

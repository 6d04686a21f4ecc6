package store

import (
	"database/sql"
	"fmt"

	"github.com/russross/meddler"
	"github.com/ynxchain/ynx-indexer/internal/db"
	"github.com/ynxchain/ynx-indexer/internal/logger"
	"github.com/ynxchain/ynx-indexer/internal/store/migrations"
	"github.com/ynxchain/ynx-indexer/internal/types"
	"github.com/ynxchain/ynx-indexer/pkg/config"
)

const stateTable = "indexer_state"

// Checkpoint persists the single IndexerState row.
type Checkpoint struct {
	db  *sql.DB
	log *logger.Logger
}

// OpenCheckpoint opens the checkpoint database at path and applies pending migrations.
func OpenCheckpoint(path string, cfg config.DatabaseConfig, log *logger.Logger) (*Checkpoint, error) {
	sqlDB, err := db.NewSQLiteDB(path, cfg)
	if err != nil {
		return nil, err
	}

	if err := migrations.RunMigrations(log, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &Checkpoint{db: sqlDB, log: log}, nil
}

// Load returns the persisted state.
func (c *Checkpoint) Load() (types.IndexerState, error) {
	var state types.IndexerState
	if err := meddler.SQLite.QueryRow(c.db, &state, `SELECT * FROM indexer_state WHERE id = 1`); err != nil {
		return types.IndexerState{}, fmt.Errorf("failed to load indexer state: %w", err)
	}

	return state, nil
}

// Save overwrites the persisted state.
func (c *Checkpoint) Save(state types.IndexerState) error {
	state.ID = 1

	if err := meddler.SQLite.Update(c.db, stateTable, &state); err != nil {
		return fmt.Errorf("failed to save indexer state: %w", err)
	}

	c.log.Debugf("saved checkpoint: height=%d, blocks=%d, txs=%d, offsets=%d/%d",
		state.LastHeight,
		state.BlocksIndexed,
		state.TxsIndexed,
		state.BlocksOffset,
		state.TxsOffset,
	)

	return nil
}

// Close closes the database connection.
func (c *Checkpoint) Close() error {
	return c.db.Close()
}

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/ynxchain/ynx-indexer/internal/logger"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// Migration is one embedded SQL file holding a "-- +migrate Down" and a
// "-- +migrate Up" section, in that order.
type Migration struct {
	ID  string
	SQL string
}

// toSource splits every migration into its down and up statements.
func toSource(migrations []Migration) (*migrate.MemoryMigrationSource, error) {
	src := &migrate.MemoryMigrationSource{}

	for _, m := range migrations {
		down, up, found := strings.Cut(m.SQL, upMarker)
		if !found {
			return nil, fmt.Errorf("migration %s missing '%s' separator", m.ID, upMarker)
		}

		if _, after, ok := strings.Cut(down, downMarker); ok {
			down = after
		}

		src.Migrations = append(src.Migrations, &migrate.Migration{
			Id:   m.ID,
			Up:   []string{strings.TrimSpace(up)},
			Down: []string{strings.TrimSpace(down)},
		})
	}

	return src, nil
}

// RunMigrationsDB applies all pending up migrations.
func RunMigrationsDB(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	return runMigrations(log, db, migrations, migrate.Up)
}

// RollbackMigrationsDB reverts all applied migrations.
func RollbackMigrationsDB(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	return runMigrations(log, db, migrations, migrate.Down)
}

func runMigrations(log *logger.Logger, db *sql.DB, migrations []Migration, dir migrate.MigrationDirection) error {
	src, err := toSource(migrations)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(src.Migrations))
	for _, m := range src.Migrations {
		ids = append(ids, m.Id)
	}

	n, err := migrate.Exec(db, "sqlite3", src, dir)
	if err != nil {
		return fmt.Errorf("error executing migrations [%s]: %w", strings.Join(ids, ", "), err)
	}

	log.Debugf("applied %d migrations from [%s]", n, strings.Join(ids, ", "))
	return nil
}

// filepath: internal/repository/migrate.go
package repository

import (
	"fmt"

	"mediatheque/internal/db/migrations"
	"mediatheque/internal/logging"

	"github.com/pressly/goose/v3"
)

// configureGoose points goose at the embedded migration files.
func configureGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// MigrateUp migrates the database to the most recent version.
func (s *Repository) MigrateUp() error {
	if err := configureGoose(); err != nil {
		return err
	}
	return goose.Up(s.DB, ".")
}

// MigrateDown rolls the database back by one version.
func (s *Repository) MigrateDown() error {
	if err := configureGoose(); err != nil {
		return err
	}
	return goose.Down(s.DB, ".")
}

// MigrationStatus prints the migration status for the current database.
func (s *Repository) MigrationStatus() error {
	if err := configureGoose(); err != nil {
		return err
	}
	return goose.Status(s.DB, ".")
}

// EnsureSchemaBootstrapped migrates a fresh database automatically. A
// database that already carries schema version data is left alone so that
// operators control upgrades via the migrate command.
func (s *Repository) EnsureSchemaBootstrapped() error {
	var name string
	err := s.DB.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='goose_db_version'",
	).Scan(&name)
	if err == nil {
		return nil // Versioned schema already present.
	}

	logging.Log.Info("Fresh database detected, applying migrations...")
	return s.MigrateUp()
}

// ValidateSchema verifies the database is at the newest embedded migration
// version.
func (s *Repository) ValidateSchema() error {
	if err := configureGoose(); err != nil {
		return err
	}

	current, err := goose.GetDBVersion(s.DB)
	if err != nil {
		return fmt.Errorf("database schema is outdated or unversioned: %w", err)
	}

	latest, err := latestMigrationVersion()
	if err != nil {
		return err
	}

	if current < latest {
		return fmt.Errorf("database schema is outdated: at version %d, expected %d (run 'mediatheque migrate up')", current, latest)
	}
	return nil
}

// latestMigrationVersion reads the highest version among the embedded
// migration files.
func latestMigrationVersion() (int64, error) {
	ms, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to collect embedded migrations: %w", err)
	}
	last, err := ms.Last()
	if err != nil {
		return 0, fmt.Errorf("no embedded migrations found: %w", err)
	}
	return last.Version, nil
}

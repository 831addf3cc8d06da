package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// migration is a single schema change with its target version and one
// statement list per supported dialect. Versions are sequential from 1.
type migration struct {
	version  int
	sqlite   []string
	postgres []string
}

// migrations is the ordered schema history of the mail store. The optional
// email columns (attachment, timestamp, is_spam) arrived after the base
// tables and are kept as separate steps so an old store upgrades cleanly.
var migrations = []migration{
	{
		version: 1,
		sqlite: []string{
			`CREATE TABLE IF NOT EXISTS users (
				username TEXT PRIMARY KEY,
				password TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS emails (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				recipient TEXT NOT NULL,
				sender TEXT NOT NULL,
				subject TEXT,
				body TEXT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_emails_recipient ON emails(recipient)`,
			`CREATE INDEX IF NOT EXISTS idx_emails_sender ON emails(sender)`,
		},
		postgres: []string{
			`CREATE TABLE IF NOT EXISTS users (
				username VARCHAR(255) PRIMARY KEY,
				password VARCHAR(255) NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS emails (
				id BIGSERIAL PRIMARY KEY,
				recipient VARCHAR(255) NOT NULL,
				sender VARCHAR(255) NOT NULL,
				subject TEXT,
				body TEXT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_emails_recipient ON emails(recipient)`,
			`CREATE INDEX IF NOT EXISTS idx_emails_sender ON emails(sender)`,
		},
	},
	{
		version:  2,
		sqlite:   []string{`ALTER TABLE emails ADD COLUMN attachment TEXT`},
		postgres: []string{`ALTER TABLE emails ADD COLUMN attachment TEXT`},
	},
	{
		version:  3,
		sqlite:   []string{`ALTER TABLE emails ADD COLUMN "timestamp" TEXT`},
		postgres: []string{`ALTER TABLE emails ADD COLUMN "timestamp" TEXT`},
	},
	{
		version:  4,
		sqlite:   []string{`ALTER TABLE emails ADD COLUMN is_spam BOOLEAN NOT NULL DEFAULT FALSE`},
		postgres: []string{`ALTER TABLE emails ADD COLUMN is_spam BOOLEAN NOT NULL DEFAULT FALSE`},
	},
}

// Migrate brings the store schema up to date. Each pending migration runs in
// its own transaction and bumps the recorded version, so a rerun after any
// outcome is a no-op for already-applied steps.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`).Error; err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	current, err := currentVersion(db)
	if err != nil {
		return err
	}

	dialect := db.Dialector.Name()
	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		statements := m.sqlite
		if dialect == DriverPostgres {
			statements = m.postgres
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, stmt := range statements {
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("migration %d failed: %w", m.version, err)
				}
			}
			if current == 0 && m.version == 1 {
				return tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, m.version).Error
			}
			return tx.Exec(`UPDATE schema_version SET version = ?`, m.version).Error
		})
		if err != nil {
			return err
		}

		slog.Info("Applied schema migration", slog.Int("version", m.version))
		current = m.version
	}

	return nil
}

// currentVersion reads the recorded schema version, zero for a fresh store.
func currentVersion(db *gorm.DB) (int, error) {
	var version int
	row := db.Raw(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Row()
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// SchemaVersion returns the version the store is currently migrated to.
func SchemaVersion(db *gorm.DB) (int, error) {
	return currentVersion(db)
}

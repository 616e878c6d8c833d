package database

import (
	"errors"
	"fmt"
	"net/url"

	"kasjer/db/migrations"
	"kasjer/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// migrateURL rewrites a postgres:// source for the pgx/v5 migrate driver and
// injects the credential.
func migrateURL(cfg config.DBConfig) (string, error) {
	u, err := url.Parse(cfg.Source)
	if err != nil {
		return "", fmt.Errorf("invalid db.source: %w", err)
	}
	switch u.Scheme {
	case "postgres", "postgresql", "pgx5":
	default:
		return "", fmt.Errorf("unsupported db.source scheme %q", u.Scheme)
	}
	u.Scheme = "pgx5"

	username := ""
	if u.User != nil {
		username = u.User.Username()
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(username, cfg.Password)
	}
	return u.String(), nil
}

func newMigrator(cfg config.DBConfig) (*migrate.Migrate, error) {
	if !cfg.Configured() {
		return nil, ErrUnavailable
	}

	dsn, err := migrateURL(cfg)
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return nil, fmt.Errorf("init migrator failed: %w", err)
	}
	return m, nil
}

func MigrateUp(cfg config.DBConfig) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up failed: %w", err)
	}
	return nil
}

func MigrateDown(cfg config.DBConfig) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down failed: %w", err)
	}
	return nil
}

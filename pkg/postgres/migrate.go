package postgres

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrate applies all pending up migrations from the given filesystem.
func Migrate(url string, migrations fs.FS, path string) error {
	src, err := iofs.New(migrations, path)
	if err != nil {
		return fmt.Errorf("Postgres - Migrate - iofs.New: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("Postgres - Migrate - migrate.NewWithSourceInstance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("Postgres - Migrate - m.Up: %w", err)
	}

	return nil
}

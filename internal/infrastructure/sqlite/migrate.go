package sqlite

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/easypresenter/easypresenter/internal/log"
)

//go:embed migrations
var migrationsFS embed.FS

// Schema selects the embedded migration set for a datastore.
type Schema struct {
	name string
	dir  string
}

var (
	// ScriptureSchema holds versiones and versiculos.
	ScriptureSchema = Schema{name: "scripture", dir: "migrations/scripture"}
	// SongsSchema holds cantos and diapositivas.
	SongsSchema = Schema{name: "songs", dir: "migrations/songs"}
)

// String returns the schema name.
func (s Schema) String() string {
	return s.name
}

func (db *DB) migrate(existed bool) error {
	src, err := iofs.New(migrationsFS, db.schema.dir)
	if err != nil {
		return fmt.Errorf("loading %s migrations: %w", db.schema.name, err)
	}
	latest, err := latestVersion(src)
	if err != nil {
		return fmt.Errorf("loading %s migrations: %w", db.schema.name, err)
	}

	driver, err := migratesqlite.WithInstance(db.conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("preparing %s migrations: %w", db.schema.name, err)
	}
	// Close is never called on m: it would close db.conn through the driver.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("preparing %s migrations: %w", db.schema.name, err)
	}

	current, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		current = 0
	case err != nil:
		return fmt.Errorf("reading %s schema version: %w", db.schema.name, err)
	case dirty:
		return fmt.Errorf("%s schema version %d is dirty", db.schema.name, current)
	}

	if current >= latest {
		return nil
	}
	if existed {
		if err := db.backup(); err != nil {
			return err
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrating %s schema: %w", db.schema.name, err)
	}
	log.Info(log.CatDB, "schema migrated", "schema", db.schema.name, "from", current, "to", latest)
	return nil
}

func latestVersion(src source.Driver) (uint, error) {
	version, err := src.First()
	if err != nil {
		return 0, err
	}
	for {
		next, err := src.Next(version)
		if err != nil {
			return version, nil
		}
		version = next
	}
}

package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Direction indica hacia dónde migrar.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Migrate aplica las migraciones embebidas. Abre su propia conexión porque
// golang-migrate la cierra al terminar.
func Migrate(dialect query.Dialect, url string, dir Direction) error {
	driverName, err := DriverName(dialect)
	if err != nil {
		return err
	}
	conn, err := sql.Open(driverName, url)
	if err != nil {
		return fmt.Errorf("open %s: %w", dialect, err)
	}

	m, err := newMigrator(conn, dialect)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer m.Close()

	switch dir {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", dir)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	return nil
}

func newMigrator(conn *sql.DB, dialect query.Dialect) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	var drv database.Driver
	switch dialect {
	case query.Postgres:
		drv, err = migratepgx.WithInstance(conn, &migratepgx.Config{})
	case query.SQLite:
		drv, err = migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	default:
		err = fmt.Errorf("unsupported database driver %q", dialect)
	}
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance("iofs", src, string(dialect), drv)
}

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx"
	_ "modernc.org/sqlite"             // driver "sqlite", sin cgo
)

// DriverName traduce el dialecto al nombre registrado en database/sql.
func DriverName(dialect query.Dialect) (string, error) {
	switch dialect {
	case query.Postgres:
		return "pgx", nil
	case query.SQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", dialect)
	}
}

// Open abre la conexión y espera a que la base responda, con backoff exponencial.
func Open(ctx context.Context, dialect query.Dialect, url string, log *zap.Logger) (*sql.DB, error) {
	driver, err := DriverName(dialect)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == query.SQLite {
		// SQLite serializa escrituras; una sola conexión evita SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	err = backoff.RetryNotify(func() error {
		return db.PingContext(ctx)
	}, b, func(err error, next time.Duration) {
		log.Warn("⚠️ Base de datos no disponible, reintentando", zap.String("driver", driver), zap.Duration("next", next), zap.Error(err))
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	return db, nil
}

// RunInTx ejecuta fn dentro de una transacción y hace commit si no hay error.
func RunInTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

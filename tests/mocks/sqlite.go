package mocks

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sharedDB "github.com/davicafu/hexacms/internal/shared/infra/platform/db"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

// NewSQLiteDB abre una base SQLite temporal con las migraciones aplicadas.
func NewSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()
	url := "file:" + filepath.Join(t.TempDir(), "cms.db") + "?_pragma=foreign_keys(1)"

	require.NoError(t, sharedDB.Migrate(query.SQLite, url, sharedDB.Up))

	conn, err := sharedDB.Open(context.Background(), query.SQLite, url, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

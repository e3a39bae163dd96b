package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/hexacms/internal/config"
	sharedDB "github.com/davicafu/hexacms/internal/shared/infra/platform/db"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

func testApp(t *testing.T) *app {
	t.Helper()
	url := "file:" + filepath.Join(t.TempDir(), "cms.db") + "?_pragma=foreign_keys(1)"
	require.NoError(t, sharedDB.Migrate(query.SQLite, url, sharedDB.Up))

	return &app{
		cfg: &config.Config{
			DatabaseDriver:     "sqlite",
			DatabaseURL:        url,
			JWTSecretKey:       "test",
			JWTAccessExpiresS:  60,
			JWTRefreshExpiresS: 120,
			CacheTTL:           time.Minute,
			MaxPerPage:         5,
		},
		log: zap.NewNop(),
	}
}

func TestSeed(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()

	svc, err := a.connect(ctx, nil)
	require.NoError(t, err)
	defer svc.close(a.log)

	require.NoError(t, seed(ctx, svc, 3, 7, "secret", a.log))

	users, err := svc.users.List(ctx, query.Map{})
	require.NoError(t, err)
	assert.Equal(t, 3, users.Total)

	// MAX_PER_PAGE se aplica a los listados
	articles, err := svc.articles.List(ctx, query.Map{"per_page": "100"}, query.Listing{DefaultPerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 7, articles.Total)
	assert.Equal(t, 5, articles.PerPage)
	assert.Len(t, articles.Items, 5)

	// las cuentas sembradas pueden iniciar sesión
	_, account, err := svc.auth.Login(ctx, users.Items[0].Role, users.Items[0].Email, "secret")
	require.NoError(t, err)
	assert.Equal(t, users.Items[0].ID, account.ID)
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"serve", "migrate", "create-admin", "seed"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	up, _, err := root.Find([]string{"migrate", "up"})
	require.NoError(t, err)
	assert.Equal(t, "up", up.Name())
}

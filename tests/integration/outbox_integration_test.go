package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	accountApp "github.com/davicafu/hexacms/internal/account/application"
	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	accountDB "github.com/davicafu/hexacms/internal/account/infra/outbound/db"
	articleApp "github.com/davicafu/hexacms/internal/article/application"
	articleDomain "github.com/davicafu/hexacms/internal/article/domain"
	articleDB "github.com/davicafu/hexacms/internal/article/infra/outbound/db"
	sharedEvents "github.com/davicafu/hexacms/internal/shared/domain/events"
	infraEvents "github.com/davicafu/hexacms/internal/shared/infra/events"
	sharedDB "github.com/davicafu/hexacms/internal/shared/infra/platform/db"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
	"github.com/davicafu/hexacms/internal/shared/infra/relayer"
	"github.com/davicafu/hexacms/tests/mocks"
)

func TestOutboxSQLiteIntegration_RelaysEveryMutation(t *testing.T) {
	ctx := context.Background()
	conn := mocks.NewSQLiteDB(t)
	log := zap.NewNop()

	adminRepo := accountDB.NewAccountRepo(conn, query.SQLite, accountDomain.RoleAdmin)
	userRepo := accountDB.NewAccountRepo(conn, query.SQLite, accountDomain.RoleUser)
	admins := accountApp.NewAccountService(adminRepo, userRepo, log)
	articles := articleApp.NewArticleService(articleDB.NewArticleRepo(conn, query.SQLite), nil, log, time.Minute)

	// Crear admin y artículo, actualizar y borrar el artículo
	admin, err := admins.Create(ctx, "ana@cms.io", "secreto", "Ana")
	require.NoError(t, err)
	article, err := articles.Create(ctx, admin.ID, articleApp.ArticleInput{Title: "Hola", Content: "Mundo"})
	require.NoError(t, err)
	_, err = articles.Update(ctx, article.ID, articleApp.ArticleInput{Content: "Otro"})
	require.NoError(t, err)
	require.NoError(t, articles.Delete(ctx, article.ID))

	bus := infraEvents.NewInMemoryEventBus("cms")
	messages := bus.Subscribe(16)
	registry := sharedEvents.MergeRegistries(accountDomain.NewEventRegistry(), articleDomain.NewEventRegistry())
	worker := relayer.NewOutboxWorker(sharedDB.NewOutboxRepo(conn, query.SQLite), bus, registry, time.Second, 10, log)

	assert.Equal(t, 4, worker.ProcessBatch(ctx))
	assert.Equal(t, 0, worker.ProcessBatch(ctx), "los eventos ya marcados no se reenvían")

	var types []string
	for i := 0; i < 4; i++ {
		var evt sharedEvents.IntegrationEvent
		require.NoError(t, json.Unmarshal(<-messages, &evt))
		types = append(types, evt.Type)
	}
	assert.Equal(t, []string{"admin.created", articleDomain.ArticleCreated, articleDomain.ArticleUpdated, articleDomain.ArticleDeleted}, types)
}

func TestOutboxSQLiteIntegration_FailedMutationLeavesNoEvent(t *testing.T) {
	ctx := context.Background()
	conn := mocks.NewSQLiteDB(t)
	log := zap.NewNop()

	articles := articleApp.NewArticleService(articleDB.NewArticleRepo(conn, query.SQLite), nil, log, time.Minute)

	// admin_id inexistente: la FK rechaza el insert y la transacción no deja outbox
	_, err := articles.Create(ctx, 42, articleApp.ArticleInput{Title: "Hola", Content: "Mundo"})
	require.Error(t, err)

	pending, err := sharedDB.NewOutboxRepo(conn, query.SQLite).FetchPendingOutbox(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

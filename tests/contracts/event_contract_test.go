package contracts

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	articleApp "github.com/davicafu/hexacms/internal/article/application"
	articleDomain "github.com/davicafu/hexacms/internal/article/domain"
	articleEvents "github.com/davicafu/hexacms/internal/article/infra/inbound/events"
	sharedEvents "github.com/davicafu/hexacms/internal/shared/domain/events"
	infraEvents "github.com/davicafu/hexacms/internal/shared/infra/events"
	"github.com/davicafu/hexacms/internal/shared/infra/relayer"
	"github.com/davicafu/hexacms/tests/mocks"
)

// wireEvent es lo que ve cualquier consumidor externo del topic de artículos.
type wireEvent struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

func TestArticleEvents_WireContract(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := mocks.NewInMemoryArticleRepo()
	cache := mocks.NewDummyCache()
	service := articleApp.NewArticleService(repo, cache, zap.NewNop(), time.Minute)

	created, err := service.Create(ctx, 3, articleApp.ArticleInput{Title: "Hola", Content: "Mundo", Tags: []string{"go"}})
	require.NoError(t, err)
	_, err = service.Update(ctx, created.ID, articleApp.ArticleInput{Title: "Hola de nuevo"})
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, created.ID))
	require.Len(t, repo.Outbox, 3)

	outbox := new(mocks.MockOutboxRepository)
	outbox.On("FetchPendingOutbox", mock.Anything, 10).Return(repo.Outbox, nil).Once()
	outbox.On("MarkOutboxProcessed", mock.Anything, mock.Anything).Return(nil)

	bus := infraEvents.NewInMemoryEventBus(articleDomain.ArticleTopic)
	messages := bus.Subscribe(8)

	worker := relayer.NewOutboxWorker(outbox, bus, articleDomain.NewEventRegistry(), time.Second, 10, zap.NewNop())
	require.Equal(t, 3, worker.ProcessBatch(ctx))

	var got []wireEvent
	for i := 0; i < 3; i++ {
		var evt wireEvent
		require.NoError(t, json.Unmarshal(<-messages, &evt))
		got = append(got, evt)
	}

	assert.Equal(t, articleDomain.ArticleCreated, got[0].Type)
	assert.Equal(t, articleDomain.ArticleUpdated, got[1].Type)
	assert.Equal(t, articleDomain.ArticleDeleted, got[2].Type)
	for _, evt := range got {
		assert.False(t, evt.Timestamp.IsZero())
	}

	var article articleDomain.Article
	require.NoError(t, json.Unmarshal(got[1].Data, &article))
	assert.Equal(t, "Hola de nuevo", article.Title)
	assert.Equal(t, []string{"go"}, article.Tags)

	assert.JSONEq(t, `{"id":1,"admin_id":3}`, string(got[2].Data))
	outbox.AssertNumberOfCalls(t, "MarkOutboxProcessed", 3)
}

func TestArticleEvents_ConsumerInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewInMemoryArticleRepo()
	cache := mocks.NewDummyCache()
	service := articleApp.NewArticleService(repo, cache, zap.NewNop(), time.Minute)
	consumer := articleEvents.NewArticleConsumer(service, zap.NewNop())

	key := articleDomain.CacheKeyByID(5)
	cache.SetForTest(key, articleDomain.Article{ID: 5, Title: "obsoleto"})

	raw, err := json.Marshal(articleDomain.Article{ID: 5, Title: "nuevo"})
	require.NoError(t, err)
	payload, err := json.Marshal(sharedEvents.IntegrationEvent{Type: articleDomain.ArticleUpdated, Timestamp: time.Now(), Data: raw})
	require.NoError(t, err)

	consumer.HandleMessage(ctx, "5", payload)

	assert.False(t, cache.Has(key))
}

package events

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/davicafu/hexacms/internal/article/domain"
	sharedEvents "github.com/davicafu/hexacms/internal/shared/domain/events"
	sharedUtils "github.com/davicafu/hexacms/internal/shared/infra/utils"
)

// CacheInvalidator es lo que el consumidor necesita del servicio.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, id int64)
}

// ArticleConsumer descarta la copia en caché de los artículos modificados en
// cualquier instancia, para que ninguna sirva datos obsoletos.
type ArticleConsumer struct {
	service CacheInvalidator
	log     *zap.Logger
}

func NewArticleConsumer(service CacheInvalidator, logger *zap.Logger) *ArticleConsumer {
	return &ArticleConsumer{service: service, log: logger}
}

type articleRef struct {
	ID int64 `json:"id"`
}

// HandleMessage es el punto de entrada para un nuevo mensaje/evento.
func (c *ArticleConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Error al deserializar el evento de artículo", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case domain.ArticleUpdated, domain.ArticleDeleted:
		sharedUtils.UnmarshalAndHandle(c.log, base.Data, func(ref articleRef) {
			if ref.ID == 0 {
				c.log.Warn("Evento de artículo sin id", zap.String("type", base.Type))
				return
			}
			c.service.Invalidate(ctx, ref.ID)
			c.log.Debug("Caché de artículo invalidada por evento", zap.Int64("article_id", ref.ID), zap.String("type", base.Type))
		})
	case domain.ArticleCreated:
		// Nada que invalidar.
	default:
		c.log.Debug("Evento ignorado", zap.String("type", base.Type), zap.String("key", key))
	}
}

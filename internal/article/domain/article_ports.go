package domain

import (
	"context"
	"errors"
	"fmt"

	sharedDomain "github.com/davicafu/hexacms/internal/shared/domain"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

// ---------- Errores de dominio ----------
var (
	ErrArticleNotFound      = errors.New("article not found")
	ErrTitleContentRequired = errors.New("title and content are required")
	ErrInvalidArticle       = errors.New("invalid article")
)

// ---------- Interfaces (Ports) ----------

// EventFactory construye el evento outbox una vez asignado el ID.
type EventFactory func(a *Article) sharedDomain.OutboxEvent

type ArticleRepository interface {
	// Create asigna a.ID y guarda el evento en la misma transacción.
	Create(ctx context.Context, a *Article, event EventFactory) error

	// Debe devolver ErrArticleNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*Article, error)

	// Debe devolver ErrArticleNotFound si no existe.
	Update(ctx context.Context, a *Article, evt sharedDomain.OutboxEvent) error

	// Debe devolver ErrArticleNotFound si no existe.
	DeleteByID(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error

	List(ctx context.Context, params query.Params, l query.Listing, opts ...query.Option) (query.Page[*Article], error)
}

// ---------- Helpers comunes ----------

// CacheKeyByID forma la key de caché de un artículo.
func CacheKeyByID(id int64) string {
	return fmt.Sprintf("article:id:%d", id)
}

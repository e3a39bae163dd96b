package mocks

import (
	"context"
	"sort"
	"sync"

	articleDomain "github.com/davicafu/hexacms/internal/article/domain"
	sharedDomain "github.com/davicafu/hexacms/internal/shared/domain"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

// InMemoryArticleRepo simula ArticleRepository con outbox incluido.
// GetCalls cuenta las lecturas por ID; FailGet fuerza errores transitorios.
type InMemoryArticleRepo struct {
	Articles map[int64]*articleDomain.Article
	Outbox   []sharedDomain.OutboxEvent
	GetCalls int
	FailGet  []error
	nextID   int64
	mu       sync.Mutex
}

var _ articleDomain.ArticleRepository = (*InMemoryArticleRepo)(nil)

func NewInMemoryArticleRepo() *InMemoryArticleRepo {
	return &InMemoryArticleRepo{Articles: make(map[int64]*articleDomain.Article)}
}

func (r *InMemoryArticleRepo) Create(ctx context.Context, a *articleDomain.Article, event articleDomain.EventFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	copied := *a
	r.Articles[a.ID] = &copied
	r.Outbox = append(r.Outbox, event(a))
	return nil
}

func (r *InMemoryArticleRepo) GetByID(ctx context.Context, id int64) (*articleDomain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.GetCalls++
	if len(r.FailGet) > 0 {
		err := r.FailGet[0]
		r.FailGet = r.FailGet[1:]
		return nil, err
	}
	a, ok := r.Articles[id]
	if !ok {
		return nil, articleDomain.ErrArticleNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *InMemoryArticleRepo) Update(ctx context.Context, a *articleDomain.Article, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Articles[a.ID]; !ok {
		return articleDomain.ErrArticleNotFound
	}
	copied := *a
	r.Articles[a.ID] = &copied
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryArticleRepo) DeleteByID(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Articles[id]; !ok {
		return articleDomain.ErrArticleNotFound
	}
	delete(r.Articles, id)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryArticleRepo) List(ctx context.Context, params query.Params, l query.Listing, opts ...query.Option) (query.Page[*articleDomain.Article], error) {
	r.mu.Lock()
	all := make([]*articleDomain.Article, 0, len(r.Articles))
	for _, a := range r.Articles {
		copied := *a
		all = append(all, &copied)
	}
	r.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	exec := func(_ context.Context, _ *query.Select, p query.OffsetPagination) ([]*articleDomain.Article, int, error) {
		return window(all, p), len(all), nil
	}
	return query.Paginate(ctx, query.From(articleDomain.Articles, query.SQLite), exec, params, l.DefaultPerPage, opts...)
}

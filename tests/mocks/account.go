package mocks

import (
	"context"
	"sort"
	"sync"

	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	sharedDomain "github.com/davicafu/hexacms/internal/shared/domain"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

// InMemoryAccountRepo simula AccountRepository con outbox incluido.
// List pagina por ID y no interpreta filtros.
type InMemoryAccountRepo struct {
	Accounts map[int64]*accountDomain.Account
	Outbox   []sharedDomain.OutboxEvent
	role     accountDomain.Role
	nextID   int64
	mu       sync.Mutex
}

var _ accountDomain.AccountRepository = (*InMemoryAccountRepo)(nil)

func NewInMemoryAccountRepo(role accountDomain.Role) *InMemoryAccountRepo {
	return &InMemoryAccountRepo{
		Accounts: make(map[int64]*accountDomain.Account),
		role:     role,
	}
}

func (r *InMemoryAccountRepo) Role() accountDomain.Role {
	return r.role
}

func (r *InMemoryAccountRepo) Create(ctx context.Context, a *accountDomain.Account, event accountDomain.EventFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	copied := *a
	r.Accounts[a.ID] = &copied
	r.Outbox = append(r.Outbox, event(a))
	return nil
}

func (r *InMemoryAccountRepo) GetByID(ctx context.Context, id int64) (*accountDomain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Accounts[id]
	if !ok {
		return nil, accountDomain.ErrAccountNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *InMemoryAccountRepo) GetByEmail(ctx context.Context, email string) (*accountDomain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.Accounts {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, accountDomain.ErrAccountNotFound
}

func (r *InMemoryAccountRepo) EmailExists(ctx context.Context, email string, exceptID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.Accounts {
		if a.Email == email && id != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryAccountRepo) Update(ctx context.Context, a *accountDomain.Account, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Accounts[a.ID]; !ok {
		return accountDomain.ErrAccountNotFound
	}
	copied := *a
	r.Accounts[a.ID] = &copied
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryAccountRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Accounts[id]
	if !ok {
		return accountDomain.ErrAccountNotFound
	}
	a.PasswordHash = hash
	return nil
}

func (r *InMemoryAccountRepo) DeleteByID(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Accounts[id]; !ok {
		return accountDomain.ErrAccountNotFound
	}
	delete(r.Accounts, id)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryAccountRepo) List(ctx context.Context, params query.Params, l query.Listing, opts ...query.Option) (query.Page[*accountDomain.Account], error) {
	r.mu.Lock()
	all := make([]*accountDomain.Account, 0, len(r.Accounts))
	for _, a := range r.Accounts {
		copied := *a
		all = append(all, &copied)
	}
	r.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	exec := func(_ context.Context, _ *query.Select, p query.OffsetPagination) ([]*accountDomain.Account, int, error) {
		return window(all, p), len(all), nil
	}
	return query.Paginate(ctx, query.From(accountDomain.EntityFor(r.role), query.SQLite), exec, params, l.DefaultPerPage, opts...)
}

// Seed inserta una cuenta con contraseña, sin evento.
func (r *InMemoryAccountRepo) Seed(email, name, password string) *accountDomain.Account {
	a, err := accountDomain.NewAccount(r.role, email, name, password)
	if err != nil {
		panic(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	copied := *a
	r.Accounts[a.ID] = &copied
	return a
}

func window[T any](items []T, p query.OffsetPagination) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end]
}

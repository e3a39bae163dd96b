package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/davicafu/hexacms/internal/account/domain"
	accountDB "github.com/davicafu/hexacms/internal/account/infra/outbound/db"
	"github.com/davicafu/hexacms/internal/article/domain"
	sharedDomain "github.com/davicafu/hexacms/internal/shared/domain"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
	"github.com/davicafu/hexacms/tests/mocks"
)

func event(eventType string) domain.EventFactory {
	return func(a *domain.Article) sharedDomain.OutboxEvent {
		return sharedDomain.NewOutboxEvent("article", a.PartitionKey(), eventType, a)
	}
}

func seedAdmin(t *testing.T, conn *sql.DB, email, name string) int64 {
	t.Helper()
	repo := accountDB.NewAccountRepo(conn, query.SQLite, accountDomain.RoleAdmin)
	a, err := accountDomain.NewAccount(accountDomain.RoleAdmin, email, name, "pw")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), a, func(a *accountDomain.Account) sharedDomain.OutboxEvent {
		return sharedDomain.NewOutboxEvent("admin", a.PartitionKey(), "admin.created", accountDomain.PayloadOf(a))
	}))
	return a.ID
}

type fixture struct {
	repo        *ArticleRepo
	ana, bruno  int64
	first, last *domain.Article
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	conn := mocks.NewSQLiteDB(t)
	f := fixture{repo: NewArticleRepo(conn, query.SQLite)}
	f.ana = seedAdmin(t, conn, "ana@cms.io", "Ana Pérez")
	f.bruno = seedAdmin(t, conn, "bruno@news.io", "Bruno")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []struct {
		admin  int64
		title  string
		status domain.Status
		tags   []string
	}{
		{f.ana, "Go en producción", domain.StatusPublished, []string{"go", "backend"}},
		{f.ana, "Borrador secreto", domain.StatusDraft, []string{"draft"}},
		{f.bruno, "Noticias de Python", domain.StatusPublished, []string{"python"}},
		{f.bruno, "Archivo 2023", domain.StatusArchived, nil},
	}
	for i, r := range rows {
		a := domain.NewArticle(r.admin, r.title, "contenido "+r.title, r.status, r.tags)
		a.CreatedAt = base.AddDate(0, i, 0)
		a.UpdatedAt = a.CreatedAt
		require.NoError(t, f.repo.Create(ctx, a, event(domain.ArticleCreated)))
		if i == 0 {
			f.first = a
		}
		f.last = a
	}
	return f
}

func titles(page query.Page[*domain.Article]) []string {
	out := make([]string, 0, len(page.Items))
	for _, a := range page.Items {
		out = append(out, a.Title)
	}
	return out
}

func TestArticleRepo_AdminListing(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		params query.Map
		want   []string
	}{
		{"orden por defecto -created_at", query.Map{}, []string{"Archivo 2023", "Noticias de Python", "Borrador secreto", "Go en producción"}},
		{"relación por email del autor", query.Map{"author_email": "NEWS.io", "sort_by": "title"}, []string{"Archivo 2023", "Noticias de Python"}},
		{"relación email y nombre con un único join", query.Map{"author_email": "ana", "author_name": "pérez", "sort_by": "title"}, []string{"Borrador secreto", "Go en producción"}},
		{"enum de estados", query.Map{"status": "draft,archived", "sort_by": "title"}, []string{"Archivo 2023", "Borrador secreto"}},
		{"tags como array OR", query.Map{"tags": "python, backend", "sort_by": "title"}, []string{"Go en producción", "Noticias de Python"}},
		{"rango de fechas", query.Map{"created_at_min": "2024-02-01", "created_at_max": "2024-03-15", "sort_by": "created_at"}, []string{"Borrador secreto", "Noticias de Python"}},
		{"rango de admin_id con basura", query.Map{"admin_id_min": "abc", "admin_id_max": "1", "sort_by": "title"}, []string{"Borrador secreto", "Go en producción"}},
		{"búsqueda OR", query.Map{"title": "python", "content": "secreto", "search_logic": "or", "sort_by": "title"}, []string{"Borrador secreto", "Noticias de Python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.repo.List(context.Background(), tt.params, domain.AdminListing)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(page))
			assert.Equal(t, len(tt.want), page.Total)
		})
	}
}

func TestArticleRepo_UserListingIgnoresAuthorFilters(t *testing.T) {
	f := newFixture(t)

	page, err := f.repo.List(context.Background(), query.Map{"author_email": "ana"}, domain.UserListing)

	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
}

func TestArticleRepo_Pagination(t *testing.T) {
	f := newFixture(t)

	page, err := f.repo.List(context.Background(), query.Map{"per_page": "3", "page": "2"}, domain.AdminListing)

	require.NoError(t, err)
	assert.Equal(t, []string{"Go en producción"}, titles(page))
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, []string{"go", "backend"}, page.Items[0].Tags)
}

func TestArticleRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	got, err := f.repo.GetByID(ctx, f.first.ID)
	require.NoError(t, err)
	assert.Equal(t, f.first.Title, got.Title)
	assert.Equal(t, f.ana, got.AdminID)

	got.Title = "Go en producción (2ª ed.)"
	got.Tags = []string{"go"}
	require.NoError(t, f.repo.Update(ctx, got, sharedDomain.NewOutboxEvent("article", got.PartitionKey(), domain.ArticleUpdated, got)))

	got, err = f.repo.GetByID(ctx, f.first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go en producción (2ª ed.)", got.Title)
	assert.Equal(t, []string{"go"}, got.Tags)

	require.NoError(t, f.repo.DeleteByID(ctx, f.last.ID, sharedDomain.NewOutboxEvent("article", f.last.PartitionKey(), domain.ArticleDeleted, domain.ArticleDeletedPayload{ID: f.last.ID})))
	_, err = f.repo.GetByID(ctx, f.last.ID)
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)
	assert.ErrorIs(t, f.repo.Update(ctx, f.last, sharedDomain.OutboxEvent{}), domain.ErrArticleNotFound)
}

func TestArticleRepo_ListQuery_Postgres(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM articles JOIN admins ON admins.id = articles.admin_id WHERE \(admins.email ILIKE \$1\)`).
		WithArgs("%ana%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	page, err := NewArticleRepo(conn, query.Postgres).List(context.Background(), query.Map{"author_email": "ana"}, domain.AdminListing)

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Pages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

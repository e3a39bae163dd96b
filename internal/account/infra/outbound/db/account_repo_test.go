package db

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/hexacms/internal/account/domain"
	sharedDomain "github.com/davicafu/hexacms/internal/shared/domain"
	sharedDB "github.com/davicafu/hexacms/internal/shared/infra/platform/db"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
	"github.com/davicafu/hexacms/tests/mocks"
)

func created(a *domain.Account) sharedDomain.OutboxEvent {
	return sharedDomain.NewOutboxEvent(string(a.Role), a.PartitionKey(), domain.EventType(a.Role, domain.ActionCreated), domain.PayloadOf(a))
}

func seed(t *testing.T, repo *AccountRepo, email string, at time.Time) *domain.Account {
	t.Helper()
	a, err := domain.NewAccount(repo.Role(), email, "", "pw")
	require.NoError(t, err)
	a.CreatedAt, a.UpdatedAt = at, at
	require.NoError(t, repo.Create(context.Background(), a, created))
	return a
}

func TestAccountRepo_SQLiteCRUD(t *testing.T) {
	ctx := context.Background()
	conn := mocks.NewSQLiteDB(t)
	repo := NewAccountRepo(conn, query.SQLite, domain.RoleUser)

	a := seed(t, repo, "ana@cms.io", time.Now().UTC())
	assert.NotZero(t, a.ID)

	got, err := repo.GetByEmail(ctx, "ana@cms.io")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, domain.RoleUser, got.Role)
	assert.True(t, got.CheckPassword("pw"))

	exists, err := repo.EmailExists(ctx, "ana@cms.io", 0)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.EmailExists(ctx, "ana@cms.io", a.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	got.Name = "Ana"
	require.NoError(t, repo.Update(ctx, got, sharedDomain.NewOutboxEvent("user", got.PartitionKey(), "user.updated", domain.PayloadOf(got))))
	got, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	require.NoError(t, repo.UpdatePassword(ctx, a.ID, "newhash"))
	got, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", got.PasswordHash)

	require.NoError(t, repo.DeleteByID(ctx, a.ID, sharedDomain.NewOutboxEvent("user", got.PartitionKey(), "user.deleted", domain.PayloadOf(got))))
	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.ErrorIs(t, repo.DeleteByID(ctx, a.ID, sharedDomain.OutboxEvent{}), domain.ErrAccountNotFound)

	pending, err := sharedDB.NewOutboxRepo(conn, query.SQLite).FetchPendingOutbox(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, "user.created", pending[0].EventType)
}

func TestAccountRepo_SQLiteList(t *testing.T) {
	ctx := context.Background()
	conn := mocks.NewSQLiteDB(t)
	repo := NewAccountRepo(conn, query.SQLite, domain.RoleUser)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed(t, repo, "alpha@cms.io", base)
	seed(t, repo, "beta@cms.io", base.AddDate(0, 1, 0))
	seed(t, repo, "gamma@other.io", base.AddDate(0, 2, 0))

	page, err := repo.List(ctx, query.Map{"email": "CMS.IO", "sort_by": "email"}, domain.UserListing)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "alpha@cms.io", page.Items[0].Email)

	page, err = repo.List(ctx, query.Map{}, domain.UserListing)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "gamma@other.io", page.Items[0].Email, "el orden por defecto es -created_at")

	page, err = repo.List(ctx, query.Map{"per_page": "2", "page": "5"}, domain.UserListing)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Pages)
}

func TestAccountRepo_GetByIDNotFound_Postgres(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(`SELECT admins.id, admins.email, admins.name, admins.password_hash, admins.created_at, admins.updated_at FROM admins WHERE admins.id = \$1 LIMIT 1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}))

	_, err = NewAccountRepo(conn, query.Postgres, domain.RoleAdmin).GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_EmailExistsExcludesSelf_Postgres(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email = \$1 AND id <> \$2`).
		WithArgs("a@cms.io", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := NewAccountRepo(conn, query.Postgres, domain.RoleUser).EmailExists(context.Background(), "a@cms.io", 3)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/davicafu/hexacms/internal/account/domain"
	sharedDomain "github.com/davicafu/hexacms/internal/shared/domain"
	sharedDB "github.com/davicafu/hexacms/internal/shared/infra/platform/db"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

// AccountRepo guarda las cuentas de un rol en su tabla (admins o users).
type AccountRepo struct {
	db      *sql.DB
	dialect query.Dialect
	role    domain.Role
	table   string
}

var _ domain.AccountRepository = (*AccountRepo)(nil)

func NewAccountRepo(db *sql.DB, dialect query.Dialect, role domain.Role) *AccountRepo {
	return &AccountRepo{db: db, dialect: dialect, role: role, table: role.Table()}
}

func (r *AccountRepo) Role() domain.Role {
	return r.role
}

// ------------------ Helpers ------------------

func (r *AccountRepo) columns() []string {
	cols := []string{"id", "email", "name", "password_hash", "created_at", "updated_at"}
	for i, c := range cols {
		cols[i] = r.table + "." + c
	}
	return cols
}

func (r *AccountRepo) scan(row sharedDB.RowScanner) (*domain.Account, error) {
	a := domain.Account{Role: r.role}
	if err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) getOne(ctx context.Context, pred sq.Sqlizer) (*domain.Account, error) {
	sqlStr, args, err := sq.Select(r.columns()...).
		From(r.table).
		Where(pred).
		Limit(1).
		PlaceholderFormat(r.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return nil, err
	}

	a, err := r.scan(r.db.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.role, err)
	}
	return a, nil
}

// execAffecting ejecuta b en tx y traduce "0 filas" a ErrAccountNotFound.
func execAffecting(ctx context.Context, tx *sql.Tx, b sq.Sqlizer) error {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// ------------------ Métodos ------------------

// Create inserta la cuenta y su evento en transacción.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account, event domain.EventFactory) error {
	return sharedDB.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		sqlStr, args, err := sq.Insert(r.table).
			Columns("email", "name", "password_hash", "created_at", "updated_at").
			Values(a.Email, a.Name, a.PasswordHash, a.CreatedAt, a.UpdatedAt).
			Suffix("RETURNING id").
			PlaceholderFormat(r.dialect.Placeholder()).
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, sqlStr, args...).Scan(&a.ID); err != nil {
			return fmt.Errorf("insert %s: %w", r.role, err)
		}
		return sharedDB.InsertOutboxTx(ctx, tx, r.dialect, event(a))
	})
}

func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.getOne(ctx, sq.Eq{r.table + ".id": id})
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getOne(ctx, sq.Eq{r.table + ".email": email})
}

func (r *AccountRepo) EmailExists(ctx context.Context, email string, exceptID int64) (bool, error) {
	b := sq.Select("COUNT(*)").
		From(r.table).
		Where(sq.Eq{"email": email}).
		PlaceholderFormat(r.dialect.Placeholder())
	if exceptID > 0 {
		b = b.Where(sq.NotEq{"id": exceptID})
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return false, err
	}

	var n int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("email lookup in %s: %w", r.table, err)
	}
	return n > 0, nil
}

// Update actualiza email y nombre y guarda el evento en transacción.
func (r *AccountRepo) Update(ctx context.Context, a *domain.Account, evt sharedDomain.OutboxEvent) error {
	return sharedDB.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		update := sq.Update(r.table).
			Set("email", a.Email).
			Set("name", a.Name).
			Set("password_hash", a.PasswordHash).
			Set("updated_at", a.UpdatedAt).
			Where(sq.Eq{"id": a.ID}).
			PlaceholderFormat(r.dialect.Placeholder())
		if err := execAffecting(ctx, tx, update); err != nil {
			return err
		}
		return sharedDB.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

func (r *AccountRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return sharedDB.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		return execAffecting(ctx, tx, sq.Update(r.table).
			Set("password_hash", hash).
			Set("updated_at", time.Now().UTC()).
			Where(sq.Eq{"id": id}).
			PlaceholderFormat(r.dialect.Placeholder()))
	})
}

// DeleteByID elimina la cuenta y guarda el evento en transacción.
func (r *AccountRepo) DeleteByID(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	return sharedDB.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		del := sq.Delete(r.table).
			Where(sq.Eq{"id": id}).
			PlaceholderFormat(r.dialect.Placeholder())
		if err := execAffecting(ctx, tx, del); err != nil {
			return err
		}
		return sharedDB.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

// List resuelve el listado con el núcleo de consultas sobre la tabla del rol.
func (r *AccountRepo) List(ctx context.Context, params query.Params, l query.Listing, opts ...query.Option) (query.Page[*domain.Account], error) {
	q := query.From(domain.EntityFor(r.role), r.dialect, r.columns()...)
	exec := sharedDB.Executor(r.db, func(row sharedDB.RowScanner) (*domain.Account, error) {
		return r.scan(row)
	})
	return query.List(ctx, q, exec, params, l, opts...)
}

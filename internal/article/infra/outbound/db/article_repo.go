package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/davicafu/hexacms/internal/article/domain"
	sharedDomain "github.com/davicafu/hexacms/internal/shared/domain"
	sharedDB "github.com/davicafu/hexacms/internal/shared/infra/platform/db"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

// ArticleRepo implementa domain.ArticleRepository sobre Postgres o SQLite.
type ArticleRepo struct {
	db      *sql.DB
	dialect query.Dialect
}

var _ domain.ArticleRepository = (*ArticleRepo)(nil)

func NewArticleRepo(db *sql.DB, dialect query.Dialect) *ArticleRepo {
	return &ArticleRepo{db: db, dialect: dialect}
}

var articleColumns = domain.Articles.Columns("id", "title", "content", "status", "tags", "admin_id", "created_at", "updated_at")

func scanArticle(row sharedDB.RowScanner) (*domain.Article, error) {
	var a domain.Article
	var tags string
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Status, &tags, &a.AdminID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Tags = domain.SplitTags(tags)
	return &a, nil
}

// ------------------ Métodos ------------------

// Create inserta el artículo y su evento en transacción.
func (r *ArticleRepo) Create(ctx context.Context, a *domain.Article, event domain.EventFactory) error {
	return sharedDB.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		sqlStr, args, err := sq.Insert("articles").
			Columns("title", "content", "status", "tags", "admin_id", "created_at", "updated_at").
			Values(a.Title, a.Content, string(a.Status), domain.JoinTags(a.Tags), a.AdminID, a.CreatedAt, a.UpdatedAt).
			Suffix("RETURNING id").
			PlaceholderFormat(r.dialect.Placeholder()).
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, sqlStr, args...).Scan(&a.ID); err != nil {
			return fmt.Errorf("insert article: %w", err)
		}
		return sharedDB.InsertOutboxTx(ctx, tx, r.dialect, event(a))
	})
}

func (r *ArticleRepo) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	sqlStr, args, err := sq.Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"articles.id": id}).
		PlaceholderFormat(r.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return nil, err
	}

	a, err := scanArticle(r.db.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// Update reescribe los campos editables y guarda el evento en transacción.
func (r *ArticleRepo) Update(ctx context.Context, a *domain.Article, evt sharedDomain.OutboxEvent) error {
	return sharedDB.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		sqlStr, args, err := sq.Update("articles").
			Set("title", a.Title).
			Set("content", a.Content).
			Set("status", string(a.Status)).
			Set("tags", domain.JoinTags(a.Tags)).
			Set("updated_at", a.UpdatedAt).
			Where(sq.Eq{"id": a.ID}).
			PlaceholderFormat(r.dialect.Placeholder()).
			ToSql()
		if err != nil {
			return err
		}
		if err := execOne(ctx, tx, sqlStr, args); err != nil {
			return err
		}
		return sharedDB.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

// DeleteByID elimina el artículo y guarda el evento en transacción.
func (r *ArticleRepo) DeleteByID(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	return sharedDB.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		sqlStr, args, err := sq.Delete("articles").
			Where(sq.Eq{"id": id}).
			PlaceholderFormat(r.dialect.Placeholder()).
			ToSql()
		if err != nil {
			return err
		}
		if err := execOne(ctx, tx, sqlStr, args); err != nil {
			return err
		}
		return sharedDB.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

// List resuelve filtros, orden y paginación con el núcleo de consultas.
func (r *ArticleRepo) List(ctx context.Context, params query.Params, l query.Listing, opts ...query.Option) (query.Page[*domain.Article], error) {
	q := query.From(domain.Articles, r.dialect, articleColumns...)
	return query.List(ctx, q, sharedDB.Executor(r.db, scanArticle), params, l, opts...)
}

func execOne(ctx context.Context, tx *sql.Tx, sqlStr string, args []interface{}) error {
	res, err := tx.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if n == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

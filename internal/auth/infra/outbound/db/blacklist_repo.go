package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/davicafu/hexacms/internal/auth/domain"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

// BlacklistRepo persiste los tokens revocados en token_blacklist.
type BlacklistRepo struct {
	db      *sql.DB
	dialect query.Dialect
}

var _ domain.BlacklistRepository = (*BlacklistRepo)(nil)

func NewBlacklistRepo(db *sql.DB, dialect query.Dialect) *BlacklistRepo {
	return &BlacklistRepo{db: db, dialect: dialect}
}

// Add inserta el jti. Si ya estaba revocado no hace nada.
func (r *BlacklistRepo) Add(ctx context.Context, t domain.RevokedToken) error {
	sqlStr, args, err := sq.Insert("token_blacklist").
		Columns("jti", "token_type", "user_id", "user_type", "revoked_at", "expires_at").
		Values(t.JTI, string(t.TokenType), t.UserID, string(t.UserType), t.RevokedAt.UTC(), t.ExpiresAt.UTC()).
		Suffix("ON CONFLICT (jti) DO NOTHING").
		PlaceholderFormat(r.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (r *BlacklistRepo) Exists(ctx context.Context, jti string) (bool, error) {
	sqlStr, args, err := sq.Select("COUNT(*)").
		From("token_blacklist").
		Where(sq.Eq{"jti": jti}).
		PlaceholderFormat(r.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return false, err
	}

	var n int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("blacklist lookup: %w", err)
	}
	return n > 0, nil
}

func (r *BlacklistRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	sqlStr, args, err := sq.Delete("token_blacklist").
		Where(sq.Lt{"expires_at": cutoff.UTC()}).
		PlaceholderFormat(r.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("blacklist cleanup: %w", err)
	}
	return res.RowsAffected()
}

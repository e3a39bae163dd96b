package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

// RowScanner lo cumplen *sql.Row y *sql.Rows.
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// Executor ejecuta un query.Select paginado contra conn: primero el COUNT(*)
// sobre el conjunto filtrado y después la ventana de filas.
func Executor[T any](conn *sql.DB, scan func(RowScanner) (T, error)) query.Executor[T] {
	return func(ctx context.Context, q *query.Select, p query.OffsetPagination) ([]T, int, error) {
		countSQL, countArgs, err := q.CountSQL()
		if err != nil {
			return nil, 0, err
		}

		var total int
		if err := conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count %s: %w", q.Entity().Table, err)
		}
		if total == 0 {
			return []T{}, 0, nil
		}

		rowsSQL, rowsArgs, err := q.ToSQL(p)
		if err != nil {
			return nil, 0, err
		}

		rows, err := conn.QueryContext(ctx, rowsSQL, rowsArgs...)
		if err != nil {
			return nil, 0, fmt.Errorf("list %s: %w", q.Entity().Table, err)
		}
		defer rows.Close()

		size := total
		if p.Limit > 0 && p.Limit < size {
			size = p.Limit
		}
		items := make([]T, 0, size)
		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return nil, 0, err
			}
			items = append(items, item)
		}
		return items, total, rows.Err()
	}
}

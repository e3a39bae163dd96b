package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/hexacms/internal/shared/domain"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
)

// OutboxRepo implementa sharedDomain.OutboxRepository para Postgres y SQLite.
type OutboxRepo struct {
	db      *sql.DB
	dialect query.Dialect
}

var _ sharedDomain.OutboxRepository = (*OutboxRepo)(nil)

func NewOutboxRepo(db *sql.DB, dialect query.Dialect) *OutboxRepo {
	return &OutboxRepo{db: db, dialect: dialect}
}

// FetchPendingOutbox devuelve los eventos no procesados más antiguos primero.
func (r *OutboxRepo) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	sqlStr, args, err := sq.Select("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at").
		From("outbox").
		Where(sq.Eq{"processed": false}).
		OrderBy("created_at").
		Limit(uint64(limit)).
		PlaceholderFormat(r.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch outbox: %w", err)
	}
	defer rows.Close()

	var events []sharedDomain.OutboxEvent
	for rows.Next() {
		var evt sharedDomain.OutboxEvent
		var payload []byte

		if err := rows.Scan(&evt.ID, &evt.AggregateType, &evt.AggregateID, &evt.EventType, &payload, &evt.CreatedAt); err != nil {
			return nil, err
		}

		var decoded map[string]interface{}
		if err := json.Unmarshal(payload, &decoded); err != nil {
			return nil, fmt.Errorf("invalid JSON payload in outbox row %s: %w", evt.ID, err)
		}
		evt.Payload = decoded
		events = append(events, evt)
	}
	return events, rows.Err()
}

// MarkOutboxProcessed marca el evento como publicado.
func (r *OutboxRepo) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	sqlStr, args, err := sq.Update("outbox").
		Set("processed", true).
		Where(sq.Eq{"id": id.String()}).
		PlaceholderFormat(r.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("outbox event not found: %s", id)
	}
	return nil
}

// InsertOutboxTx guarda el evento dentro de la transacción del agregado.
func InsertOutboxTx(ctx context.Context, tx *sql.Tx, dialect query.Dialect, evt sharedDomain.OutboxEvent) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}

	sqlStr, args, err := sq.Insert("outbox").
		Columns("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at", "processed").
		Values(evt.ID.String(), evt.AggregateType, evt.AggregateID, evt.EventType, string(payload), evt.CreatedAt, false).
		PlaceholderFormat(dialect.Placeholder()).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert outbox: %w", err)
	}
	return nil
}

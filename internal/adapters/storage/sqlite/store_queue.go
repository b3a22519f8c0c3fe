package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/riftwatch/internal/domain"
	"github.com/oklog/ulid/v2"
)

const eventColumns = `id, summoner_id, kind, correlation_key, payload_json, processed, created_at, processed_at`

// EnqueueEvent appends an unprocessed notification event.
func (s *Store) EnqueueEvent(ctx context.Context, event domain.NotificationEvent) (domain.NotificationEvent, error) {
	if err := ctx.Err(); err != nil {
		return domain.NotificationEvent{}, storageErr("enqueue event", err)
	}

	if event.ID == "" {
		event.ID = ulid.Make().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.now()
	}
	event.Processed = false
	event.ProcessedAt = nil

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return domain.NotificationEvent{}, storageErr("encode event payload", err)
	}

	if _, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO notification_queue (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, 0, ?, NULL)`,
		event.ID,
		string(event.SummonerID),
		string(event.Kind),
		event.CorrelationKey,
		string(payload),
		toMillis(event.CreatedAt),
	); err != nil {
		return domain.NotificationEvent{}, storageErr("enqueue event", err)
	}

	event.CreatedAt = event.CreatedAt.UTC().Truncate(timeResolution)
	return event, nil
}

// ListPendingEvents returns unprocessed events ordered by creation time.
func (s *Store) ListPendingEvents(ctx context.Context) ([]domain.NotificationEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageErr("list pending events", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM notification_queue WHERE processed = 0 ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, storageErr("list pending events", err)
	}
	defer rows.Close()

	var events []domain.NotificationEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, storageErr("scan event", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate events", err)
	}
	return events, nil
}

// MarkEventsProcessed flags every id as processed in a single transaction.
func (s *Store) MarkEventsProcessed(ctx context.Context, ids []string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return storageErr("mark processed", err)
	}
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin mark processed", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE notification_queue SET processed = 1, processed_at = ? WHERE id = ? AND processed = 0`,
	)
	if err != nil {
		_ = tx.Rollback()
		return storageErr("prepare mark processed", err)
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, toMillis(at), id); err != nil {
			_ = tx.Rollback()
			return storageErr(fmt.Sprintf("mark event %s processed", id), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit mark processed", err)
	}
	return nil
}

func scanEvent(row rowScanner) (domain.NotificationEvent, error) {
	var (
		event       domain.NotificationEvent
		summonerID  string
		kind        string
		payload     string
		processed   int
		createdAt   int64
		processedAt sql.NullInt64
	)
	if err := row.Scan(&event.ID, &summonerID, &kind, &event.CorrelationKey, &payload, &processed, &createdAt, &processedAt); err != nil {
		return domain.NotificationEvent{}, err
	}
	if err := json.Unmarshal([]byte(payload), &event.Payload); err != nil {
		return domain.NotificationEvent{}, err
	}
	event.SummonerID = domain.SummonerID(summonerID)
	event.Kind = domain.EventKind(kind)
	event.Processed = processed != 0
	event.CreatedAt = fromMillis(createdAt)
	if processedAt.Valid {
		at := fromMillis(processedAt.Int64)
		event.ProcessedAt = &at
	}
	return event, nil
}

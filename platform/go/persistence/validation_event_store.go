package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ValidationEventsTable = "validation_events"

// ValidationEvent represents a row in the validation journal.
type ValidationEvent struct {
	EventID   uuid.UUID `db:"event_id" json:"id"`
	Kind      string    `db:"kind" json:"kind"`
	Reason    string    `db:"reason" json:"reason"`
	Digest    string    `db:"digest" json:"digest"`
	Caller    string    `db:"caller" json:"caller"`
	RequestID string    `db:"request_id" json:"requestId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ValidationEventStore exposes persistence helpers for the validation journal.
type ValidationEventStore struct {
	pool *pgxpool.Pool
}

// NewValidationEventStore returns a store bound to pool. Call Bootstrap once beforehand
// so the table exists.
func NewValidationEventStore(ctx context.Context, pool *pgxpool.Pool) (*ValidationEventStore, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	return &ValidationEventStore{pool: pool}, nil
}

// InsertValidationEventParams captures the fields required to append a journal row.
type InsertValidationEventParams struct {
	EventID   uuid.UUID
	Kind      string
	Reason    string
	Digest    string
	Caller    string
	RequestID string
}

// ListValidationEventsParams captures filters and pagination for ListEvents.
type ListValidationEventsParams struct {
	Page     int
	PageSize int
	Kind     *string
}

// ListValidationEventsResult includes the rows and the total count for pagination metadata.
type ListValidationEventsResult struct {
	Events     []ValidationEvent
	TotalItems int
}

// InsertEvent appends a journal row and returns the persisted record.
func (s *ValidationEventStore) InsertEvent(ctx context.Context, params InsertValidationEventParams) (ValidationEvent, error) {
	if params.EventID == uuid.Nil {
		return ValidationEvent{}, errors.New("event id is required")
	}
	if strings.TrimSpace(params.Kind) == "" || strings.TrimSpace(params.Reason) == "" {
		return ValidationEvent{}, errors.New("kind and reason are required")
	}

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (event_id, kind, reason, digest, caller, request_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING event_id, kind, reason, digest, caller, request_id, created_at
    `, ValidationEventsTable),
		params.EventID,
		params.Kind,
		params.Reason,
		params.Digest,
		params.Caller,
		params.RequestID,
	)

	event, err := scanValidationEvent(row)
	if err != nil {
		return ValidationEvent{}, fmt.Errorf("insert validation event: %w", err)
	}
	return event, nil
}

// ListEvents returns journal rows, newest first, with pagination applied.
func (s *ValidationEventStore) ListEvents(ctx context.Context, params ListValidationEventsParams) (ListValidationEventsResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = 20
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}

	whereParts := []string{"1=1"}
	var args []any

	if params.Kind != nil && strings.TrimSpace(*params.Kind) != "" {
		args = append(args, strings.TrimSpace(*params.Kind))
		whereParts = append(whereParts, fmt.Sprintf("kind = $%d", len(args)))
	}

	whereSQL := strings.Join(whereParts, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", ValidationEventsTable, whereSQL)
	var total int
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return ListValidationEventsResult{}, fmt.Errorf("count validation events: %w", err)
	}

	result := ListValidationEventsResult{Events: []ValidationEvent{}, TotalItems: total}
	if total == 0 {
		return result, nil
	}

	dataArgs := append([]any{}, args...)
	dataArgs = append(dataArgs, params.PageSize, (params.Page-1)*params.PageSize)

	query := fmt.Sprintf(`
        SELECT event_id, kind, reason, digest, caller, request_id, created_at
        FROM %s
        WHERE %s
        ORDER BY created_at DESC, event_id
        LIMIT $%d OFFSET $%d
    `, ValidationEventsTable, whereSQL, len(dataArgs)-1, len(dataArgs))

	rows, err := s.pool.Query(ctx, query, dataArgs...)
	if err != nil {
		return ListValidationEventsResult{}, fmt.Errorf("list validation events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		event, scanErr := scanValidationEvent(rows)
		if scanErr != nil {
			return ListValidationEventsResult{}, fmt.Errorf("scan validation event: %w", scanErr)
		}
		result.Events = append(result.Events, event)
	}

	if err := rows.Err(); err != nil {
		return ListValidationEventsResult{}, fmt.Errorf("iterate validation events: %w", err)
	}

	return result, nil
}

func scanValidationEvent(row pgx.Row) (ValidationEvent, error) {
	var event ValidationEvent
	if err := row.Scan(
		&event.EventID,
		&event.Kind,
		&event.Reason,
		&event.Digest,
		&event.Caller,
		&event.RequestID,
		&event.CreatedAt,
	); err != nil {
		return ValidationEvent{}, err
	}
	return event, nil
}

package repo

import (
	"context"

	"github.com/zenGate-Global/palmyra-idcheck/domains/validations/be/service"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/persistence"
)

type postgresJournal struct {
	store *persistence.ValidationEventStore
}

// NewPostgresJournal constructs a journal backed by the shared persistence layer.
func NewPostgresJournal(store *persistence.ValidationEventStore) service.Journal {
	if store == nil {
		panic("validation event store is required")
	}
	return &postgresJournal{store: store}
}

func (r *postgresJournal) Append(ctx context.Context, event service.NewEvent) (service.Event, error) {
	row, err := r.store.InsertEvent(ctx, persistence.InsertValidationEventParams{
		EventID:   event.ID,
		Kind:      event.Kind,
		Reason:    event.Reason,
		Digest:    event.Digest,
		Caller:    event.Caller,
		RequestID: event.RequestID,
	})
	if err != nil {
		return service.Event{}, err
	}
	return toServiceEvent(row), nil
}

func (r *postgresJournal) List(ctx context.Context, opts service.ListOptions) (service.EventPage, error) {
	result, err := r.store.ListEvents(ctx, persistence.ListValidationEventsParams{
		Page:     opts.Page,
		PageSize: opts.PageSize,
		Kind:     opts.Kind,
	})
	if err != nil {
		return service.EventPage{}, err
	}

	events := make([]service.Event, 0, len(result.Events))
	for _, row := range result.Events {
		events = append(events, toServiceEvent(row))
	}
	return newPage(events, opts.Page, opts.PageSize, result.TotalItems), nil
}

func toServiceEvent(row persistence.ValidationEvent) service.Event {
	return service.Event{
		ID:        row.EventID,
		Kind:      row.Kind,
		Reason:    row.Reason,
		Digest:    row.Digest,
		Caller:    row.Caller,
		RequestID: row.RequestID,
		CreatedAt: row.CreatedAt,
	}
}

func newPage(events []service.Event, page, pageSize, totalItems int) service.EventPage {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}
	return service.EventPage{
		Events:     events,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

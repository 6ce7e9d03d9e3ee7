package repo

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zenGate-Global/palmyra-idcheck/domains/validations/be/service"
)

// DefaultMemoryCapacity bounds the in-memory journal when no capacity is given.
const DefaultMemoryCapacity = 10_000

// MemoryJournal keeps the most recent events in process memory. It backs the API when
// no database is configured. Events live in a ring: once full, Append overwrites the
// oldest slot.
type MemoryJournal struct {
	mu       sync.RWMutex
	events   []service.Event
	oldest   int
	capacity int
	now      func() time.Time
}

// NewMemoryJournal returns a journal retaining at most capacity events.
func NewMemoryJournal(capacity int) *MemoryJournal {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryJournal{capacity: capacity, now: time.Now}
}

func (j *MemoryJournal) Append(_ context.Context, event service.NewEvent) (service.Event, error) {
	if event.ID == uuid.Nil {
		return service.Event{}, errors.New("event id is required")
	}
	if event.Kind == "" || event.Reason == "" {
		return service.Event{}, errors.New("kind and reason are required")
	}

	stored := service.Event{
		ID:        event.ID,
		Kind:      event.Kind,
		Reason:    event.Reason,
		Digest:    event.Digest,
		Caller:    event.Caller,
		RequestID: event.RequestID,
		CreatedAt: j.now().UTC(),
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.events) < j.capacity {
		j.events = append(j.events, stored)
		return stored, nil
	}
	j.events[j.oldest] = stored
	j.oldest = (j.oldest + 1) % j.capacity
	return stored, nil
}

func (j *MemoryJournal) List(_ context.Context, opts service.ListOptions) (service.EventPage, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	j.mu.RLock()
	matched := make([]service.Event, 0, len(j.events))
	for i := range j.events {
		event := j.events[(j.oldest+i)%len(j.events)]
		if opts.Kind != nil && event.Kind != *opts.Kind {
			continue
		}
		matched = append(matched, event)
	}
	j.mu.RUnlock()

	// Newest first; insertion order breaks timestamp ties.
	for i, k := 0, len(matched)-1; i < k; i, k = i+1, k-1 {
		matched[i], matched[k] = matched[k], matched[i]
	}
	sort.SliceStable(matched, func(a, b int) bool {
		return matched[a].CreatedAt.After(matched[b].CreatedAt)
	})

	total := len(matched)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return newPage(matched[start:end], page, pageSize, total), nil
}

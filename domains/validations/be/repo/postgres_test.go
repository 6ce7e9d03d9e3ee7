package repo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/palmyra-idcheck/platform/go/persistence"
)

func TestNewPostgresJournalRequiresStore(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { NewPostgresJournal(nil) })
}

func TestToServiceEvent(t *testing.T) {
	t.Parallel()

	row := persistence.ValidationEvent{
		EventID:   uuid.New(),
		Kind:      "cif",
		Reason:    "checksum_mismatch",
		Digest:    "abc",
		Caller:    "organization-registration",
		RequestID: "req-9",
		CreatedAt: time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC),
	}

	event := toServiceEvent(row)
	require.Equal(t, row.EventID, event.ID)
	require.Equal(t, row.Kind, event.Kind)
	require.Equal(t, row.Reason, event.Reason)
	require.Equal(t, row.Digest, event.Digest)
	require.Equal(t, row.Caller, event.Caller)
	require.Equal(t, row.RequestID, event.RequestID)
	require.Equal(t, row.CreatedAt, event.CreatedAt)
}

package requesttrace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForCaller(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		caller string
		want   string
	}{
		{name: "declared caller", caller: "organization-registration", want: "organization-registration"},
		{name: "trimmed and lowercased", caller: "  Patient.Signup ", want: "patient.signup"},
		{name: "empty", caller: "", want: CallerAnonymous},
		{name: "invalid characters", caller: "drop table;", want: CallerAnonymous},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			trace := ForCaller(tt.caller, "req-1")
			require.Equal(t, tt.want, trace.Caller)
			require.Equal(t, "req-1", trace.RequestID)
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	_, ok := FromContext(context.Background())
	require.False(t, ok)
	require.Equal(t, CallerAnonymous, FromContextOrAnonymous(context.Background()).Caller)

	ctx := IntoContext(context.Background(), System("job-7"))
	trace, ok := FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, CallerSystem, trace.Caller)
	require.Equal(t, "job-7", trace.RequestID)
}

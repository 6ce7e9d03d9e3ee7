package requesttrace

import (
	"context"
	"regexp"
	"strings"
)

type contextKey string

const (
	ctxTrace contextKey = "IDCHECK_REQUEST_TRACE"

	// CallerHeader names the upstream workflow invoking the validation API
	// (e.g. "organization-registration").
	CallerHeader = "X-Caller"

	CallerAnonymous = "anonymous"
	CallerSystem    = "system"
)

var callerPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{0,63}$`)

// Trace captures request-scoped metadata stamped on journal events and log lines.
type Trace struct {
	Caller    string
	RequestID string
}

// IntoContext stores the Trace in the provided context.
func IntoContext(ctx context.Context, trace Trace) context.Context {
	return context.WithValue(ctx, ctxTrace, trace)
}

// FromContext extracts the Trace from context, returning false when not present.
func FromContext(ctx context.Context) (Trace, bool) {
	if ctx == nil {
		return Trace{}, false
	}
	trace, ok := ctx.Value(ctxTrace).(Trace)
	return trace, ok
}

// FromContextOrAnonymous returns the Trace stored on the context, or an anonymous record when absent.
func FromContextOrAnonymous(ctx context.Context) Trace {
	if trace, ok := FromContext(ctx); ok {
		return trace
	}
	return Anonymous("")
}

// ForCaller builds a Trace for the declared caller. Callers that are empty or do not
// match the allowed pattern are recorded as anonymous.
func ForCaller(caller, requestID string) Trace {
	normalized := strings.ToLower(strings.TrimSpace(caller))
	if !callerPattern.MatchString(normalized) {
		return Anonymous(requestID)
	}
	return Trace{Caller: normalized, RequestID: requestID}
}

// Anonymous builds a Trace for requests that did not declare a caller.
func Anonymous(requestID string) Trace {
	return Trace{Caller: CallerAnonymous, RequestID: requestID}
}

// System builds a Trace for CLI and background operations.
func System(requestID string) Trace {
	return Trace{Caller: CallerSystem, RequestID: requestID}
}

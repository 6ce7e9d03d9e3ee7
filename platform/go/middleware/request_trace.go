package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	platformlogging "github.com/zenGate-Global/palmyra-idcheck/platform/go/logging"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/requesttrace"
)

// RequestTrace populates the context with the request Trace so services can stamp journal events.
// It should run after chi's RequestID and the request logger so both are available.
func RequestTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trace := requesttrace.ForCaller(r.Header.Get(requesttrace.CallerHeader), middleware.GetReqID(r.Context()))
		ctx := requesttrace.IntoContext(r.Context(), trace)

		if logger, ok := platformlogging.FromContext(ctx); ok {
			ctx = platformlogging.WithLogger(ctx, logger.With(zap.String("caller_service", trace.Caller)))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package logging

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type contextKey string

const traceIDKey contextKey = "trace_id"

// GetOrGenerateTraceID returns the trace ID stored in ctx, generating a new
// ULID when none is present.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return ulid.Make().String()
}

// ContextWithTraceID returns a copy of ctx carrying the given trace ID.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext returns the trace ID stored in ctx, or "" when absent.
func TraceIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey).(string); ok {
		return id
	}
	return ""
}

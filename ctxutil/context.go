package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	// TraceIDKey is the log field and context key of the per-call trace id.
	TraceIDKey = "trace_id"
	// ScreenKey is the log field and context key of the active screen.
	ScreenKey = "screen"

	traceIDKey ctxKey = TraceIDKey
	screenKey  ctxKey = ScreenKey
)

// GetTraceID gets trace id from context.Context.
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// SetTraceID sets trace id to context.Context.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}

// SetScreen records the screen a call originates from.
func SetScreen(ctx context.Context, screen string) context.Context {
	return context.WithValue(ctx, screenKey, screen)
}

// GetScreen gets the originating screen from context.Context.
func GetScreen(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if s, ok := ctx.Value(screenKey).(string); ok {
		return s
	}
	return ""
}

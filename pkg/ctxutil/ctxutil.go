// Package ctxutil carries run-scoped values through a context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	runIDKey   ctxKey = "run_id"
	commandKey ctxKey = "command"
)

// WithRunID stores the batch run ID in the context.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromCtx extracts the run ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func RunIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// EnsureRunID returns ctx unchanged when it already carries a run ID,
// otherwise a child context with a fresh one.
func EnsureRunID(ctx context.Context) (context.Context, uuid.UUID) {
	if id, ok := RunIDFromCtx(ctx); ok {
		return ctx, id
	}
	id := uuid.New()
	return WithRunID(ctx, id), id
}

// WithCommand stores the CLI command name in the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// CommandFromCtx extracts the CLI command name from the context.
// Returns an empty string if absent.
func CommandFromCtx(ctx context.Context) string {
	name, _ := ctx.Value(commandKey).(string)
	return name
}

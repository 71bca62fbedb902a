package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-apidocs/internal/logging"
	"github.com/goliatone/go-apidocs/pkg/interfaces"
)

// DefaultCommandTimeout bounds a command unless WithTimeout overrides it.
// README batches install their own, longer budget.
const DefaultCommandTimeout = 30 * time.Second

// EnsureContext falls back to context.Background for nil contexts.
func EnsureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// WithCommandTimeout bounds ctx by timeout. A zero or negative timeout
// disables the bound, and a parent that expires sooner keeps its own
// deadline, e.g. a cron run shorter than the sync budget.
func WithCommandTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// RemainingBudget reports the time left before ctx expires, zero when ctx
// has no deadline.
func RemainingBudget(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	if left := time.Until(deadline); left > 0 {
		return left
	}
	return 0
}

// EnsureLogger falls back to a no-op logger.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}

package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-apidocs/pkg/interfaces"
	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
)

// TelemetryStatus is the outcome of one command run.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to the telemetry callback once a run finishes.
// Fields holds the same structured fields the run was logged with, such as
// the command type and module_count for README batches.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry replaces the handler's own outcome logging when set.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs one entry per run. Failures carry the go-errors
// category and text code, so a rejected command and a batch that could not
// write its files are distinguishable in the logs. Cancelled runs, usually a
// host shutting down mid sync, are logged at warn.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = EnsureLogger(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logger
		if len(info.Fields) > 0 {
			entry = entry.WithFields(info.Fields)
		}

		args := []any{"status", string(info.Status), "duration_ms", info.Duration.Milliseconds()}
		if info.Error != nil {
			args = append(args, "error", info.Error)
			var categorized *goerrors.Error
			if goerrors.As(info.Error, &categorized) {
				args = append(args, "error_category", categorized.Category, "error_code", categorized.TextCode)
			}
		}

		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("command.execute.success", args...)
		case TelemetryStatusContextError:
			entry.Warn("command.execute.context_error", args...)
		default:
			entry.Error("command.execute.failed", args...)
		}
	}
}

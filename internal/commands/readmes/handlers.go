package readmescmd

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-apidocs/internal/commands"
	"github.com/goliatone/go-apidocs/internal/logging"
	"github.com/goliatone/go-apidocs/internal/readmesync"
	"github.com/goliatone/go-apidocs/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const syncOperation = "readmes.sync"

// DefaultSyncTimeout bounds a whole batch. Individual fetches carry their own timeout.
const DefaultSyncTimeout = 5 * time.Minute

// ErrSynchronizerRequired is returned when no synchronizer is supplied.
var ErrSynchronizerRequired = errors.New("readmes command: synchronizer is required")

var _ command.Commander[SyncReadmesCommand] = (*SyncReadmesHandler)(nil)

// Synchronizer runs a README synchronisation batch.
type Synchronizer interface {
	Synchronize(ctx context.Context, req readmesync.Request) (*readmesync.Report, error)
}

// HandlerOption customises the sync handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	cronConfig  command.HandlerConfig
	timeout     time.Duration
	onReport    func(*readmesync.Report)
	handlerOpts []commands.HandlerOption[SyncReadmesCommand]
}

// WithCronExpression overrides the cron expression used by CronOptions.
func WithCronExpression(expression string) HandlerOption {
	return func(cfg *handlerConfig) {
		if trimmed := strings.TrimSpace(expression); trimmed != "" {
			cfg.cronConfig.Expression = trimmed
		}
	}
}

// WithSyncTimeout overrides DefaultSyncTimeout.
func WithSyncTimeout(timeout time.Duration) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.timeout = timeout
	}
}

// WithReportHook receives every report, including runs with write failures
// and the partial report of an interrupted run.
func WithReportHook(fn func(*readmesync.Report)) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.onReport = fn
	}
}

// WithHandlerOptions forwards options to the shared command handler.
func WithHandlerOptions(opts ...commands.HandlerOption[SyncReadmesCommand]) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.handlerOpts = append(cfg.handlerOpts, opts...)
	}
}

// SyncReadmesHandler runs the README synchronizer through the shared command handler.
type SyncReadmesHandler struct {
	inner      *commands.Handler[SyncReadmesCommand]
	cronConfig command.HandlerConfig
}

// NewSyncReadmesHandler binds the handler to sync and the base request built
// from configuration.
func NewSyncReadmesHandler(sync Synchronizer, base readmesync.Request, logger interfaces.Logger, opts ...HandlerOption) (*SyncReadmesHandler, error) {
	if sync == nil {
		return nil, ErrSynchronizerRequired
	}

	cfg := handlerConfig{
		cronConfig: command.HandlerConfig{
			Expression: "@daily",
		},
		timeout: DefaultSyncTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SyncReadmesCommand) error {
		req := base
		if len(msg.Modules) > 0 {
			req.Modules = append([]string(nil), msg.Modules...)
		}

		report, err := sync.Synchronize(ctx, req)
		if report != nil && cfg.onReport != nil {
			cfg.onReport(report)
		}
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"run_id":         report.RunID,
			"written_count":  len(report.Written()),
			"fetch_failures": len(report.FetchFailures()),
			"write_failures": len(report.WriteFailures()),
		}).Info("readmes.command.sync.completed")

		return report.Err()
	}

	handlerOpts := []commands.HandlerOption[SyncReadmesCommand]{
		commands.WithLogger[SyncReadmesCommand](baseLogger),
		commands.WithOperation[SyncReadmesCommand](syncOperation),
		commands.WithTimeout[SyncReadmesCommand](cfg.timeout),
		commands.WithMessageFields(func(msg SyncReadmesCommand) map[string]any {
			count := len(msg.Modules)
			if count == 0 {
				count = len(base.Modules)
			}
			return map[string]any{commands.FieldModuleCount: count}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncReadmesCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, cfg.handlerOpts...)

	return &SyncReadmesHandler{
		inner:      commands.NewHandler(exec, handlerOpts...),
		cronConfig: cfg.cronConfig,
	}, nil
}

// Execute satisfies command.Commander[SyncReadmesCommand].
func (h *SyncReadmesHandler) Execute(ctx context.Context, msg SyncReadmesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CronHandler satisfies command.CronCommand by running a full sync.
func (h *SyncReadmesHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), SyncReadmesCommand{})
	}
}

// CronOptions satisfies command.CronCommand.
func (h *SyncReadmesHandler) CronOptions() command.HandlerConfig {
	return h.cronConfig
}

// CLIHandler exposes the handler to CLI integrations.
func (h *SyncReadmesHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for the sync command.
func (h *SyncReadmesHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"readmes", "sync"},
		Group:       "readmes",
		Description: "Download module READMEs, rewrite relative links and write them to the documentation directory",
	}
}

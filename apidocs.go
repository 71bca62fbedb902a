// Package apidocs delivers API module documentation to a host framework. It
// registers the documentation directory as an asset path, serves the
// mirrored module READMEs and keeps them fresh through the readme
// synchronizer.
package apidocs

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	readmescmd "github.com/goliatone/go-apidocs/internal/commands/readmes"
	"github.com/goliatone/go-apidocs/internal/di"
	"github.com/goliatone/go-apidocs/internal/readmesync"
	"github.com/goliatone/go-apidocs/pkg/interfaces"
)

const (
	// ConfigKeyAssetManager is the config block consumed by the host asset manager.
	ConfigKeyAssetManager = "asset_manager"
	configKeyResolvers    = "resolver_configs"
	configKeyPaths        = "paths"
	configKeyPath         = "path"
)

type (
	// SyncRequest describes a README synchronisation run.
	SyncRequest = readmesync.Request
	// SyncReport aggregates the per-module outcomes of a run.
	SyncReport = readmesync.Report
	// SyncOutcome records what happened to one module.
	SyncOutcome = readmesync.Outcome
	// SyncReadmesCommand is the command message accepted by the sync handler.
	SyncReadmesCommand = readmescmd.SyncReadmesCommand
	// CommandRegistry receives command handlers for CLI or dispatcher exposure.
	CommandRegistry = readmescmd.CommandRegistry
	// CronRegistrar schedules command handlers.
	CronRegistrar = readmescmd.CronRegistrar
	// Option customises the module container.
	Option = di.Option
)

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithDocumentsFS    = di.WithDocumentsFS
	WithMarkdownParser = di.WithMarkdownParser
	WithFetcher        = di.WithFetcher
	WithWriter         = di.WithWriter
)

// Module represents the documentation module façade.
type Module struct {
	container *di.Container
}

// New constructs the module. Without Config.Documents.Dir or WithDocumentsFS
// the embedded documentation is served.
func New(cfg Config, opts ...Option) (*Module, error) {
	all := make([]Option, 0, len(opts)+1)
	if strings.TrimSpace(cfg.Documents.Dir) == "" {
		all = append(all, di.WithDocumentsFS(embeddedDocs))
	}
	all = append(all, opts...)

	container, err := di.NewContainer(cfg, all...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Path returns the absolute documentation root, Config.Documents.Dir. When
// Dir is empty the embedded documents are served, yet Path and Config still
// report the working directory: that is where the synchronizer writes and
// where the host asset manager resolves the asset directory. Set Dir when
// the host needs a real on-disk documentation root.
func (m *Module) Path() string {
	dir := m.container.DocumentsDir()
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// AssetPath returns the directory registered with the host asset manager.
func (m *Module) AssetPath() string {
	return filepath.Join(m.Path(), m.container.Config.Documents.AssetDir)
}

// ModulesPath returns the directory the synchronizer writes into.
func (m *Module) ModulesPath() string {
	return filepath.Join(m.Path(), m.container.Config.Documents.ModulesDir)
}

// Config returns the configuration block the host framework merges into its
// own: the asset resolver path and the documentation path under ConfigKey.
func (m *Module) Config() map[string]any {
	return map[string]any{
		ConfigKeyAssetManager: map[string]any{
			configKeyResolvers: map[string]any{
				configKeyPaths: []string{m.AssetPath()},
			},
		},
		m.container.Config.Documents.ConfigKey: map[string]any{
			configKeyPath: m.Path(),
		},
	}
}

// DocumentsFS returns the filesystem documents are served from.
func (m *Module) DocumentsFS() fs.FS {
	return m.container.DocumentsFS()
}

// Documents returns the documentation catalog.
func (m *Module) Documents() interfaces.MarkdownService {
	return m.container.MarkdownService()
}

// DocumentedModules lists the modules with a README in the documentation directory.
func (m *Module) DocumentedModules(ctx context.Context) ([]string, error) {
	return m.container.MarkdownService().Modules(ctx, m.container.Config.Documents.ModulesDir)
}

// Synchronizer returns the README synchronizer wired from configuration.
func (m *Module) Synchronizer() *readmesync.Synchronizer {
	return m.container.Synchronizer()
}

// SyncRequest returns the request built from configuration.
func (m *Module) SyncRequest() SyncRequest {
	return m.container.SyncRequest()
}

// SyncHandler returns the command handler that runs the synchronizer.
func (m *Module) SyncHandler() *readmescmd.SyncReadmesHandler {
	return m.container.ReadmeCommands().Sync
}

// SyncReadmes refreshes the configured READMEs, or only modules when given.
// Fetch failures are logged and tolerated. Write failures are returned.
func (m *Module) SyncReadmes(ctx context.Context, modules ...string) error {
	return m.SyncHandler().Execute(ctx, SyncReadmesCommand{Modules: modules})
}

// RegisterCommands exposes the command handlers to the host registry and,
// when a sync cron is configured, to the cron registrar. It is a no-op while
// commands are disabled.
func (m *Module) RegisterCommands(reg CommandRegistry, cron CronRegistrar) error {
	cfg := m.container.Config.Commands
	if !cfg.Enabled {
		return nil
	}
	handler := m.SyncHandler()
	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return err
		}
	}
	if strings.TrimSpace(cfg.SyncCron) != "" {
		return readmescmd.RegisterReadmeCron(cron, handler)
	}
	return nil
}

// LoggerProvider returns the configured logger provider.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

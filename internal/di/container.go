package di

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	readmescmd "github.com/goliatone/go-apidocs/internal/commands/readmes"
	"github.com/goliatone/go-apidocs/internal/logging"
	"github.com/goliatone/go-apidocs/internal/logging/console"
	"github.com/goliatone/go-apidocs/internal/logging/gologger"
	"github.com/goliatone/go-apidocs/internal/markdown"
	"github.com/goliatone/go-apidocs/internal/readmesync"
	"github.com/goliatone/go-apidocs/internal/runtimeconfig"
	"github.com/goliatone/go-apidocs/pkg/interfaces"
)

// ErrDocumentsUnavailable is returned when neither a documents filesystem nor a
// documentation directory is available.
var ErrDocumentsUnavailable = errors.New("di: documentation filesystem is unavailable")

// Container wires the documentation module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	documents      fs.FS
	parser         interfaces.MarkdownParser
	fetcher        readmesync.Fetcher
	writer         readmesync.Writer

	markdownSvc  *markdown.Service
	synchronizer *readmesync.Synchronizer
	syncRequest  readmesync.Request
	readmeCmds   *readmescmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithDocumentsFS serves documentation from filesystem instead of Config.Documents.Dir.
func WithDocumentsFS(filesystem fs.FS) Option {
	return func(c *Container) {
		if filesystem != nil {
			c.documents = filesystem
		}
	}
}

// WithMarkdownParser overrides the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		if parser != nil {
			c.parser = parser
		}
	}
}

// WithFetcher overrides the HTTP fetcher used by the synchronizer.
func WithFetcher(fetcher readmesync.Fetcher) Option {
	return func(c *Container) {
		if fetcher != nil {
			c.fetcher = fetcher
		}
	}
}

// WithWriter overrides the file writer used by the synchronizer.
func WithWriter(writer readmesync.Writer) Option {
	return func(c *Container) {
		if writer != nil {
			c.writer = writer
		}
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureMarkdown(); err != nil {
		return nil, err
	}
	if err := c.configureSync(); err != nil {
		return nil, err
	}
	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "apidocs").Debug("container.configured",
		"modules", len(c.syncRequest.Modules),
		"rules", len(c.syncRequest.Rules),
		"documents_dir", c.DocumentsDir(),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureMarkdown() error {
	if c.documents == nil {
		dir := strings.TrimSpace(c.Config.Documents.Dir)
		if dir == "" {
			return ErrDocumentsUnavailable
		}
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("%w: %v", ErrDocumentsUnavailable, err)
		}
		c.documents = os.DirFS(dir)
	}

	mdCfg := c.Config.Markdown
	svc, err := markdown.NewService(markdown.Config{
		FS:        c.documents,
		Pattern:   mdCfg.Pattern,
		Recursive: mdCfg.Recursive,
		Parser: interfaces.ParseOptions{
			Extensions: append([]string(nil), mdCfg.Parser.Extensions...),
			Sanitize:   mdCfg.Parser.Sanitize,
			HardWraps:  mdCfg.Parser.HardWraps,
			SafeMode:   mdCfg.Parser.SafeMode,
		},
	}, c.parser, markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)))
	if err != nil {
		return err
	}
	c.markdownSvc = svc
	return nil
}

func (c *Container) configureSync() error {
	cfg := c.Config.Sync

	rules, err := readmesync.CompileRules(cfg.RuleSpecs())
	if err != nil {
		return err
	}
	c.syncRequest = readmesync.Request{
		Modules:      append([]string(nil), cfg.Modules...),
		URITemplate:  cfg.URITemplate,
		PathTemplate: cfg.PathTemplate,
		Rules:        rules,
	}

	if c.fetcher == nil {
		c.fetcher = readmesync.NewHTTPFetcher(
			readmesync.WithTimeout(cfg.Timeout),
			readmesync.WithUserAgent(cfg.UserAgent),
			readmesync.WithMaxBodyBytes(cfg.MaxBodyBytes),
		)
	}
	if c.writer == nil {
		c.writer = readmesync.NewFileWriter(c.ModulesDir())
	}

	c.synchronizer = readmesync.NewSynchronizer(
		readmesync.WithFetcher(c.fetcher),
		readmesync.WithWriter(c.writer),
		readmesync.WithLogger(logging.SyncLogger(c.loggerProvider)),
	)
	return nil
}

func (c *Container) configureCommands() error {
	var opts []readmescmd.HandlerOption
	if expr := strings.TrimSpace(c.Config.Commands.SyncCron); expr != "" {
		opts = append(opts, readmescmd.WithCronExpression(expr))
	}
	set, err := readmescmd.RegisterReadmeCommands(nil, c.synchronizer, c.syncRequest, c.loggerProvider, opts...)
	if err != nil {
		return err
	}
	c.readmeCmds = set
	return nil
}

// LoggerProvider returns the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DocumentsFS returns the filesystem documents are read from.
func (c *Container) DocumentsFS() fs.FS {
	return c.documents
}

// DocumentsDir returns the documentation root on disk, "." when unset.
func (c *Container) DocumentsDir() string {
	if dir := strings.TrimSpace(c.Config.Documents.Dir); dir != "" {
		return filepath.Clean(dir)
	}
	return "."
}

// ModulesDir returns the directory the synchronizer writes into.
func (c *Container) ModulesDir() string {
	return filepath.Join(c.DocumentsDir(), c.Config.Documents.ModulesDir)
}

// MarkdownService returns the documentation catalog.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

// Synchronizer returns the configured README synchronizer.
func (c *Container) Synchronizer() *readmesync.Synchronizer {
	return c.synchronizer
}

// SyncRequest returns a copy of the request built from configuration.
func (c *Container) SyncRequest() readmesync.Request {
	req := c.syncRequest
	req.Modules = append([]string(nil), c.syncRequest.Modules...)
	req.Rules = append([]readmesync.Rule(nil), c.syncRequest.Rules...)
	return req
}

// ReadmeCommands returns the readme command handlers.
func (c *Container) ReadmeCommands() *readmescmd.HandlerSet {
	return c.readmeCmds
}

package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-apidocs/internal/readmesync"
)

var ErrDocumentsPathRequired = errors.New("apidocs config: documentation path is required")
var ErrAssetDirRequired = errors.New("apidocs config: asset directory is required")
var ErrConfigKeyRequired = errors.New("apidocs config: config key is required")

// ErrSyncModulesRequired is returned when the sync module list is empty.
var ErrSyncModulesRequired = errors.New("apidocs config: at least one sync module is required")
var ErrSyncTemplateInvalid = errors.New("apidocs config: sync template is invalid")
var ErrSyncRuleInvalid = errors.New("apidocs config: sync rule is invalid")
var ErrSyncTimeoutInvalid = errors.New("apidocs config: sync timeout must be zero or positive")
var ErrSyncBodyLimitInvalid = errors.New("apidocs config: sync body limit must be zero or positive")
var ErrCronRequiresCommands = errors.New("apidocs config: cron schedule requires commands to be enabled")
var ErrLoggingProviderRequired = errors.New("apidocs config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("apidocs config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("apidocs config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("apidocs config: logging format is invalid")

// Config aggregates everything the documentation module needs at runtime.
// Fields use simple types so hosts can decode them from their own config files.
type Config struct {
	Documents DocumentsConfig
	Sync      SyncConfig
	Markdown  MarkdownConfig
	Commands  CommandsConfig
	Logging   LoggingConfig
}

// DocumentsConfig describes where the documentation lives and how the host
// framework refers to it.
type DocumentsConfig struct {
	// Dir is the documentation root on disk. When empty the embedded copy is served.
	Dir string
	// ModulesDir is the directory, relative to Dir, holding one markdown file per module.
	ModulesDir string
	// AssetDir is the directory, relative to Dir, registered with the asset manager.
	AssetDir string
	// ConfigKey names the config block that carries the documentation path.
	ConfigKey string
}

// SyncConfig drives the README synchronizer.
type SyncConfig struct {
	Modules      []string
	URITemplate  string
	PathTemplate string
	LinkTemplate string
	// Rules replaces the default rule set when non-empty.
	Rules        []RuleConfig
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

// RuleConfig mirrors readmesync.RuleSpec for runtime configuration.
type RuleConfig struct {
	Name        string
	Pattern     string
	Replacement string
	IgnoreCase  bool
	Multiline   bool
	Singleline  bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
	// SyncCron schedules the sync command when set, e.g. "@daily".
	SyncCron string
}

// MarkdownConfig captures filesystem and parser behaviour for the documentation catalog.
type MarkdownConfig struct {
	Pattern   string
	Recursive bool
	Parser    MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the zfcampus defaults.
func DefaultConfig() Config {
	return Config{
		Documents: DocumentsConfig{
			ModulesDir: "modules",
			AssetDir:   "asset",
			ConfigKey:  "apigility-documentation",
		},
		Sync: SyncConfig{
			Modules:      append([]string(nil), readmesync.DefaultModules...),
			URITemplate:  readmesync.DefaultURITemplate,
			PathTemplate: readmesync.DefaultPathTemplate,
			LinkTemplate: readmesync.DefaultLinkTemplate,
			Timeout:      readmesync.DefaultFetchTimeout,
			UserAgent:    readmesync.DefaultUserAgent,
			MaxBodyBytes: readmesync.DefaultMaxBodyBytes,
		},
		Markdown: MarkdownConfig{
			Pattern:   "*.md",
			Recursive: false,
			Parser: MarkdownParserConfig{
				Extensions: []string{"gfm"},
			},
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// RuleSpecs converts the configured rules, falling back to the defaults
// built from LinkTemplate.
func (cfg SyncConfig) RuleSpecs() []readmesync.RuleSpec {
	if len(cfg.Rules) == 0 {
		return readmesync.DefaultRuleSpecs(cfg.LinkTemplate)
	}
	specs := make([]readmesync.RuleSpec, 0, len(cfg.Rules))
	for _, rule := range cfg.Rules {
		specs = append(specs, readmesync.RuleSpec{
			Name:        rule.Name,
			Pattern:     rule.Pattern,
			Replacement: rule.Replacement,
			IgnoreCase:  rule.IgnoreCase,
			Multiline:   rule.Multiline,
			Singleline:  rule.Singleline,
		})
	}
	return specs
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Documents.ModulesDir) == "" {
		return ErrDocumentsPathRequired
	}
	if strings.TrimSpace(cfg.Documents.AssetDir) == "" {
		return ErrAssetDirRequired
	}
	if strings.TrimSpace(cfg.Documents.ConfigKey) == "" {
		return ErrConfigKeyRequired
	}
	if err := cfg.Sync.validate(); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Commands.SyncCron) != "" && !cfg.Commands.Enabled {
		return ErrCronRequiresCommands
	}
	return cfg.Logging.validate()
}

func (cfg SyncConfig) validate() error {
	if len(cfg.Modules) == 0 {
		return ErrSyncModulesRequired
	}
	if err := readmesync.ValidateTemplate(cfg.URITemplate); err != nil {
		return fmt.Errorf("%w: uri: %v", ErrSyncTemplateInvalid, err)
	}
	if err := readmesync.ValidateTemplate(cfg.PathTemplate); err != nil {
		return fmt.Errorf("%w: path: %v", ErrSyncTemplateInvalid, err)
	}
	if len(cfg.Rules) == 0 {
		if err := readmesync.ValidateTemplate(cfg.LinkTemplate); err != nil {
			return fmt.Errorf("%w: link: %v", ErrSyncTemplateInvalid, err)
		}
	}
	if _, err := readmesync.CompileRules(cfg.RuleSpecs()); err != nil {
		return fmt.Errorf("%w: %v", ErrSyncRuleInvalid, err)
	}
	if cfg.Timeout < 0 {
		return ErrSyncTimeoutInvalid
	}
	if cfg.MaxBodyBytes < 0 {
		return ErrSyncBodyLimitInvalid
	}
	return nil
}

func (cfg LoggingConfig) validate() error {
	provider := normalizeProvider(cfg.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

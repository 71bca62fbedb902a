package bootstrap

import (
	"strings"

	"github.com/goliatone/go-apidocs"
	"github.com/goliatone/go-apidocs/pkg/interfaces"
)

// Options captures configuration shared by the command-line tools.
type Options struct {
	// Dir is the documentation root. Empty means the current directory.
	Dir            string
	Modules        []string
	LogProvider    string
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
	ModuleOptions  []apidocs.Option
}

// BuildModule constructs the documentation module rooted at opts.Dir.
func BuildModule(opts Options) (*apidocs.Module, error) {
	cfg := apidocs.DefaultConfig()

	cfg.Documents.Dir = strings.TrimSpace(opts.Dir)
	if cfg.Documents.Dir == "" {
		cfg.Documents.Dir = "."
	}
	if len(opts.Modules) > 0 {
		cfg.Sync.Modules = append([]string(nil), opts.Modules...)
	}
	if provider := strings.TrimSpace(opts.LogProvider); provider != "" {
		cfg.Logging.Provider = provider
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}

	moduleOpts := append([]apidocs.Option(nil), opts.ModuleOptions...)
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, apidocs.WithLoggerProvider(opts.LoggerProvider))
	}
	return apidocs.New(cfg, moduleOpts...)
}

// SplitList parses a comma separated flag value, dropping blanks.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

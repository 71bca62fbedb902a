package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-apidocs/pkg/interfaces"
)

const (
	rootModule     = "apidocs"
	syncModule     = "apidocs.sync"
	markdownModule = "apidocs.markdown"
)

const (
	fieldReadmeModule = "readme_module"
	fieldReadmeURI    = "readme_uri"
	fieldReadmePath   = "readme_path"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return logger.WithFields(map[string]any{
		"module": module,
	})
}

// SyncLogger returns the logger namespace reserved for README synchronisation.
func SyncLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, syncModule)
}

// MarkdownLogger returns the logger namespace reserved for documentation reads.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithReadmeContext enriches the logger with the remote module identifier,
// its source URI and destination path. Empty values are ignored.
func WithReadmeContext(logger interfaces.Logger, module, uri, path string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(module); trimmed != "" {
		fields[fieldReadmeModule] = trimmed
	}
	if trimmed := strings.TrimSpace(uri); trimmed != "" {
		fields[fieldReadmeURI] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldReadmePath] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}

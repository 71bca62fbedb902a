package commands

import (
	"strings"

	"github.com/goliatone/go-apidocs/internal/logging"
	"github.com/goliatone/go-apidocs/pkg/interfaces"
)

const commandModuleRoot = "apidocs.commands"

// Field keys attached to every command run.
const (
	FieldCommand     = "command"
	FieldOperation   = "operation"
	FieldModuleCount = "module_count"
	FieldBudgetMS    = "budget_ms"
)

// CommandLogger returns the logger for a command group. The "readmes" group
// logs under apidocs.commands.readmes.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	name := strings.ToLower(strings.TrimSpace(group))
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":     "command",
		"command_group": name,
	})
}

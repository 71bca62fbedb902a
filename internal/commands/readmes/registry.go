package readmescmd

import (
	"github.com/goliatone/go-apidocs/internal/commands"
	"github.com/goliatone/go-apidocs/internal/readmesync"
	"github.com/goliatone/go-apidocs/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the handlers produced by RegisterReadmeCommands.
type HandlerSet struct {
	Sync *SyncReadmesHandler
}

// RegisterReadmeCommands builds the readme handlers and registers them with reg
// when it is non-nil.
func RegisterReadmeCommands(reg CommandRegistry, sync Synchronizer, base readmesync.Request, provider interfaces.LoggerProvider, opts ...HandlerOption) (*HandlerSet, error) {
	handler, err := NewSyncReadmesHandler(sync, base, commands.CommandLogger(provider, "readmes"), opts...)
	if err != nil {
		return nil, err
	}

	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{Sync: handler}, nil
}

// RegisterReadmeCron wires the sync handler into a cron registrar using its
// own cron metadata.
func RegisterReadmeCron(reg CronRegistrar, handler *SyncReadmesHandler) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(handler.CronOptions(), handler.CronHandler())
}

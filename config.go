package apidocs

import "github.com/goliatone/go-apidocs/internal/runtimeconfig"

var (
	ErrDocumentsPathRequired   = runtimeconfig.ErrDocumentsPathRequired
	ErrAssetDirRequired        = runtimeconfig.ErrAssetDirRequired
	ErrConfigKeyRequired       = runtimeconfig.ErrConfigKeyRequired
	ErrSyncModulesRequired     = runtimeconfig.ErrSyncModulesRequired
	ErrSyncTemplateInvalid     = runtimeconfig.ErrSyncTemplateInvalid
	ErrSyncRuleInvalid         = runtimeconfig.ErrSyncRuleInvalid
	ErrSyncTimeoutInvalid      = runtimeconfig.ErrSyncTimeoutInvalid
	ErrSyncBodyLimitInvalid    = runtimeconfig.ErrSyncBodyLimitInvalid
	ErrCronRequiresCommands    = runtimeconfig.ErrCronRequiresCommands
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	DocumentsConfig      = runtimeconfig.DocumentsConfig
	SyncConfig           = runtimeconfig.SyncConfig
	RuleConfig           = runtimeconfig.RuleConfig
	CommandsConfig       = runtimeconfig.CommandsConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

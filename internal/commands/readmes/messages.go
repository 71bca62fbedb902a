package readmescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
)

const syncReadmesMessageType = "apidocs.readmes.sync"

// SyncReadmesCommand refreshes the mirrored module READMEs. When Modules is
// empty the configured module list is used.
type SyncReadmesCommand struct {
	// Modules restricts the run to the listed identifiers.
	Modules []string `json:"modules,omitempty"`
}

// Type implements command.Message.
func (SyncReadmesCommand) Type() string { return syncReadmesMessageType }

// Validate ensures any module override is a list of distinct slugs.
func (cmd SyncReadmesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Modules, validation.By(func(value any) error {
			modules, _ := value.([]string)
			seen := make(map[string]struct{}, len(modules))
			for _, module := range modules {
				if strings.TrimSpace(module) == "" || !slug.IsValid(module) {
					return validation.NewError("apidocs.readmes.sync.module_invalid", "module identifiers must be slugs")
				}
				if _, ok := seen[module]; ok {
					return validation.NewError("apidocs.readmes.sync.module_duplicate", "module identifiers must be distinct")
				}
				seen[module] = struct{}{}
			}
			return nil
		})),
	)
}

package readmesync

import (
	"errors"
	"fmt"
	"strings"
)

// Slot is the placeholder substituted with a module identifier.
const Slot = "%s"

// ErrTemplateSlot is returned when a URI or path template does not contain
// exactly one Slot.
var ErrTemplateSlot = errors.New("readmesync: template must contain exactly one %s slot")

// Render substitutes identifier into template. Templates hold at most one
// Slot; a template without a Slot is returned unchanged. Identifiers are
// inserted verbatim, with no escaping.
func Render(template, identifier string) string {
	return strings.Replace(template, Slot, identifier, 1)
}

// ValidateTemplate reports whether template honours the single-slot contract
// required for URI and destination path templates.
func ValidateTemplate(template string) error {
	if count := strings.Count(template, Slot); count != 1 {
		return fmt.Errorf("%w: %q has %d", ErrTemplateSlot, template, count)
	}
	return nil
}

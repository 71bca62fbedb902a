package apidocs

import "embed"

// embeddedDocs holds the mirrored READMEs shipped with the module.
//
//go:embed all:modules
var embeddedDocs embed.FS

// EmbeddedDocuments returns the documentation shipped with the module. The
// filesystem root contains the modules directory.
func EmbeddedDocuments() embed.FS {
	return embeddedDocs
}

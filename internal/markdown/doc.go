// Package markdown reads the mirrored module READMEs back from a filesystem
// and renders them to HTML so the host framework can serve them.
package markdown

package markdown

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-apidocs/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. Sources without front matter are returned as-is
// with empty metadata.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content and modification time. BodyHTML is left empty so callers can
// render lazily.
func BuildDocument(filePath string, source []byte, modified time.Time) (*interfaces.Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     filePath,
		Module:       ModuleName(filePath),
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

// ModuleName derives the module identifier from a documentation file path:
// "modules/zf-hal.md" yields "zf-hal".
func ModuleName(filePath string) string {
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

type frontMatterEnvelope struct {
	Title   string         `yaml:"title"`
	Summary string         `yaml:"summary"`
	Tags    []string       `yaml:"tags"`
	Custom  map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	raw := make(map[string]any, len(env.Custom)+3)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Summary != "" {
		raw["summary"] = env.Summary
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}

	return interfaces.FrontMatter{
		Title:   env.Title,
		Summary: env.Summary,
		Tags:    append([]string(nil), env.Tags...),
		Custom:  cloneMap(env.Custom),
		Raw:     raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}

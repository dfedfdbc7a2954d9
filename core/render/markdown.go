// Package render turns pipeline output into the formats the CLI writes.
package render

import (
	"github.com/gaurav-prasanna/finpipe/core"
)

// MarkdownRenderer writes the markdown unchanged. Records are ignored.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the markdown followed by a newline, or nothing when empty.
func (r *MarkdownRenderer) Render(out core.Output) ([]byte, error) {
	if out.Markdown == "" {
		return nil, nil
	}
	return []byte(out.Markdown + "\n"), nil
}

// Extension implements core.Renderer.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

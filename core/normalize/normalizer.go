// Package normalize implements the Normalizer interface.
// It converts HTML fragments into Markdown, which serves as the
// canonical format returned to every caller.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// blankRun matches two or more blank (or whitespace-only) lines in a row.
var blankRun = regexp.MustCompile(`\n\s*\n\s*\n`)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown
// with ATX headings and GFM tables.
type MarkdownNormalizer struct {
	conv *converter.Converter
}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
			),
			table.NewTablePlugin(),
		),
	)
	return &MarkdownNormalizer{conv: conv}
}

// Normalize converts an HTML fragment into Markdown. Empty input yields "".
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	markdown, err := n.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return CollapseBlankLines(markdown), nil
}

// CollapseBlankLines squeezes runs of blank lines to a single blank line
// and trims the result.
func CollapseBlankLines(markdown string) string {
	return strings.TrimSpace(blankRun.ReplaceAllString(markdown, "\n\n"))
}

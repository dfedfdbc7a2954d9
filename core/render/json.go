package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/finpipe/core"
)

// Heading is one markdown heading.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is one markdown link.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Table is one markdown table split into cells.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Structure is what the JSON renderer reads back out of the markdown.
type Structure struct {
	Headings []Heading `json:"headings"`
	Links    []Link    `json:"links"`
	Tables   []Table   `json:"tables"`
}

// Document is the JSON shape of one output.
type Document struct {
	Meta      core.OutputMeta `json:"meta"`
	Markdown  string          `json:"markdown,omitempty"`
	Structure *Structure      `json:"structure,omitempty"`
	Records   any             `json:"records,omitempty"`
}

// JSONRenderer writes the output with the markdown's structure extracted.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render implements core.Renderer.
func (r *JSONRenderer) Render(out core.Output) ([]byte, error) {
	doc := Document{
		Meta:     out.Meta,
		Markdown: out.Markdown,
		Records:  out.Records,
	}
	if out.Markdown != "" {
		s := Parse(out.Markdown)
		doc.Structure = &s
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension implements core.Renderer.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

var (
	headingRegex   = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)
	linkRegex      = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)\)`)
	separatorRegex = regexp.MustCompile(`^\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)*\|?$`)
)

// Parse extracts headings, links and tables from md.
func Parse(md string) Structure {
	return Structure{
		Headings: extractHeadings(md),
		Links:    extractLinks(md),
		Tables:   extractTables(md),
	}
}

func extractHeadings(md string) []Heading {
	matches := headingRegex.FindAllStringSubmatch(md, -1)
	headings := make([]Heading, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, Heading{Level: len(m[1]), Text: strings.TrimSpace(m[2])})
	}
	return headings
}

func extractLinks(md string) []Link {
	matches := linkRegex.FindAllStringSubmatch(md, -1)
	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, Link{Text: m[1], Href: m[2]})
	}
	return links
}

// extractTables reads pipe tables: a header row, a separator row, then data
// rows until the first line without a pipe.
func extractTables(md string) []Table {
	lines := strings.Split(md, "\n")
	tables := []Table{}
	for i := 0; i+1 < len(lines); i++ {
		head := strings.TrimSpace(lines[i])
		if !strings.Contains(head, "|") || !separatorRegex.MatchString(strings.TrimSpace(lines[i+1])) {
			continue
		}
		t := Table{Header: cells(head), Rows: [][]string{}}
		j := i + 2
		for ; j < len(lines); j++ {
			row := strings.TrimSpace(lines[j])
			if !strings.Contains(row, "|") {
				break
			}
			t.Rows = append(t.Rows, cells(row))
		}
		tables = append(tables, t)
		i = j - 1
	}
	return tables
}

func cells(row string) []string {
	row = strings.TrimPrefix(strings.TrimSuffix(row, "|"), "|")
	parts := strings.Split(row, "|")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer lays markdown out on A4 pages: headings, paragraphs and pipe
// tables as bordered grids.
//
// Only the core Helvetica and Courier fonts are used, so text outside
// Windows-1252 (Korean names, for one) prints as '?'.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

var (
	emphasis   = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`)
	inlineCode = regexp.MustCompile("`([^`]+)`")
	inlineLink = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// Render implements core.Renderer.
func (r *PDFRenderer) Render(out core.Output) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(latin(s)) }

	title := out.Meta.Source + " / " + out.Meta.Operation
	if out.Meta.Param != "" {
		title += " (" + out.Meta.Param + ")"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, text(title), "", "L", false)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, text("Fetched: "+out.Meta.FetchedAt), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	lines := strings.Split(out.Markdown, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case line == "":
			pdf.Ln(3)
		case strings.HasPrefix(line, "#"):
			level := len(line) - len(strings.TrimLeft(line, "#"))
			renderHeading(pdf, text(cleanInline(strings.TrimLeft(line, "# "))), level)
		case strings.Contains(line, "|"):
			j := i
			var rows [][]string
			for ; j < len(lines) && strings.Contains(lines[j], "|"); j++ {
				row := strings.TrimSpace(lines[j])
				if separatorRegex.MatchString(row) {
					continue
				}
				cs := cells(row)
				for k := range cs {
					cs[k] = text(cleanInline(cs[k]))
				}
				rows = append(rows, cs)
			}
			renderTable(pdf, rows)
			i = j - 1
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, text(cleanInline(line)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension implements core.Renderer.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func renderHeading(pdf *gofpdf.Fpdf, s string, level int) {
	sizes := map[int]float64{1: 16, 2: 14, 3: 12}
	size, ok := sizes[level]
	if !ok {
		size = 11
	}
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, s, "", "L", false)
	pdf.Ln(1)
}

// renderTable splits the printable width evenly across the widest row.
func renderTable(pdf *gofpdf.Fpdf, rows [][]string) {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return
	}
	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	w := (pageW - left - right) / float64(cols)

	for i, r := range rows {
		style := ""
		if i == 0 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 8)
		for c := 0; c < cols; c++ {
			var v string
			if c < len(r) {
				v = r[c]
			}
			pdf.CellFormat(w, 5, fit(pdf, v, w), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(2)
}

// fit shortens s until it fits in width w.
func fit(pdf *gofpdf.Fpdf, s string, w float64) string {
	for s != "" && pdf.GetStringWidth(s) > w-1 {
		s = s[:len(s)-1]
	}
	return s
}

func cleanInline(s string) string {
	s = inlineLink.ReplaceAllString(s, "$1")
	s = emphasis.ReplaceAllString(s, "$1")
	s = inlineCode.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// latin replaces runes the core fonts cannot encode.
func latin(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, s)
}

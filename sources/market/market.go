// Package market reads domestic market overview pages from Naver Finance.
package market

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/urls"
	"github.com/gaurav-prasanna/finpipe/sources"
)

// Page selects one market overview page.
type Page int

const (
	Indices Page = iota
	Sectors
	Gainers
	Losers
	Volume
)

// Pages lists every page kind.
func Pages() []Page { return []Page{Indices, Sectors, Gainers, Losers, Volume} }

func (p Page) String() string {
	switch p {
	case Indices:
		return "indices"
	case Sectors:
		return "sectors"
	case Gainers:
		return "gainers"
	case Losers:
		return "losers"
	case Volume:
		return "volume"
	default:
		return fmt.Sprintf("page(%d)", int(p))
	}
}

var (
	indicesBody = core.MustQuery("#content > div:nth-of-type(2)")
	contentArea = core.MustQuery("#contentarea")
	rankTable   = core.MustQuery("#contentarea > div:nth-of-type(3) > table")

	itemLinks = regexp.MustCompile(`\(/item/main\.naver\?code=\d+\)`)

	// rowMarkers are the words present on every ranking data row or header.
	rowMarkers = []string{"상승", "하락", "종목명", "N"}
)

const (
	sectorLines  = 50
	rankingLines = 25
)

// layout is where one page lives and how many table lines survive cleaning.
// maxLines of zero keeps the fragment as converted.
type layout struct {
	path     string
	query    core.PathQuery
	maxLines int
}

func layoutOf(p Page) (layout, bool) {
	switch p {
	case Indices:
		return layout{path: "/sise/", query: indicesBody}, true
	case Sectors:
		return layout{path: "/sise/sise_group.naver?type=upjong", query: contentArea, maxLines: sectorLines}, true
	case Gainers:
		return layout{path: "/sise/sise_rise.naver", query: rankTable, maxLines: rankingLines}, true
	case Losers:
		return layout{path: "/sise/sise_fall.naver", query: rankTable, maxLines: rankingLines}, true
	case Volume:
		return layout{path: "/sise/sise_quant.naver", query: rankTable, maxLines: rankingLines}, true
	}
	return layout{}, false
}

// Parser reads market overview pages.
type Parser struct {
	sources.Scraper
	base string
}

// New creates a Parser.
func New(tk sources.Toolkit) *Parser {
	return &Parser{
		Scraper: sources.NewScraper(sources.Market, tk),
		base:    tk.Endpoints.NaverFinance,
	}
}

// Source implements sources.Parser.
func (p *Parser) Source() sources.ID { return sources.Market }

// Get returns one page as markdown.
func (p *Parser) Get(ctx context.Context, page Page) string {
	l, ok := layoutOf(page)
	if !ok {
		return ""
	}
	sec := sources.Section{
		URL:   urls.Join(p.base, l.path),
		Mode:  core.EUCKR,
		Query: l.query,
	}
	if l.maxLines > 0 {
		sec.Clean = func(md string) string { return CleanTable(md, l.maxLines) }
	}
	return p.Section(ctx, sec)
}

// CleanTable strips item links and keeps at most maxLines table rows that
// carry a ranking marker. Blank and pipe-only rows are dropped.
func CleanTable(md string, maxLines int) string {
	md = itemLinks.ReplaceAllString(md, "")
	kept := make([]string, 0, maxLines)
	for _, line := range strings.Split(md, "\n") {
		if len(kept) == maxLines {
			break
		}
		if emptyRow(line) || !strings.Contains(line, "|") {
			continue
		}
		if containsAny(line, rowMarkers) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func emptyRow(line string) bool {
	return strings.Trim(line, "| \t") == ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Package yahoo reads global market data from Yahoo Finance.
package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/urls"
	"github.com/gaurav-prasanna/finpipe/sources"
)

// Board selects one Yahoo Finance overview.
type Board int

const (
	WorldIndices Board = iota
	Treasury
	VIX
	Commodities
	Forex
	AsianIndices
	EuropeanIndices
	Sectors
)

// Boards lists every board kind.
func Boards() []Board {
	return []Board{WorldIndices, Treasury, VIX, Commodities, Forex, AsianIndices, EuropeanIndices, Sectors}
}

func (b Board) String() string {
	switch b {
	case WorldIndices:
		return "world_indices"
	case Treasury:
		return "treasury"
	case VIX:
		return "vix"
	case Commodities:
		return "commodities"
	case Forex:
		return "forex"
	case AsianIndices:
		return "asian_indices"
	case EuropeanIndices:
		return "european_indices"
	case Sectors:
		return "sectors"
	default:
		return fmt.Sprintf("board(%d)", int(b))
	}
}

const (
	maxTableLines  = 20
	maxRegionLines = 15
)

var (
	firstTable = core.MustQuery("table")
	quoteBlock = core.MustQuery(`div[class*="quote"]`)

	quoteLinks = regexp.MustCompile(`\(/quote/[^)]+\)`)

	asianMarkers    = []string{"Nikkei", "Hang Seng", "Shanghai", "KOSPI", "Taiwan", "BSE"}
	europeanMarkers = []string{"FTSE", "DAX", "CAC", "IBEX", "AEX", "SMI"}
)

type layout struct {
	path  string
	query core.PathQuery
	clean func(string) string
}

func layoutOf(b Board) (layout, bool) {
	switch b {
	case WorldIndices:
		return layout{"/world-indices/", firstTable, CleanTable}, true
	case Treasury:
		return layout{"/bonds/", firstTable, CleanTable}, true
	case VIX:
		return layout{"/quote/%5EVIX/", quoteBlock, CleanTable}, true
	case Commodities:
		return layout{"/commodities/", firstTable, CleanTable}, true
	case Forex:
		return layout{"/currencies/", firstTable, CleanTable}, true
	case AsianIndices:
		return layout{"/world-indices/", firstTable, regionFilter(asianMarkers)}, true
	case EuropeanIndices:
		return layout{"/world-indices/", firstTable, regionFilter(europeanMarkers)}, true
	case Sectors:
		return layout{"/sectors/", firstTable, CleanTable}, true
	}
	return layout{}, false
}

// Parser reads Yahoo Finance pages.
type Parser struct {
	sources.Scraper
	base string
}

// New creates a Parser.
func New(tk sources.Toolkit) *Parser {
	return &Parser{
		Scraper: sources.NewScraper(sources.Yahoo, tk),
		base:    tk.Endpoints.Yahoo,
	}
}

// Source implements sources.Parser.
func (p *Parser) Source() sources.ID { return sources.Yahoo }

// Get returns one board as markdown.
func (p *Parser) Get(ctx context.Context, b Board) string {
	l, ok := layoutOf(b)
	if !ok {
		return ""
	}
	return p.Section(ctx, sources.Section{
		URL:   urls.Join(p.base, l.path),
		Mode:  core.AutoDetect,
		Query: l.query,
		Clean: l.clean,
	})
}

func (p *Parser) quoteURL(symbol string) string {
	return urls.Join(p.base, "/quote/"+url.PathEscape(symbol)+"/")
}

// CleanTable drops quote links and keeps the first table rows.
func CleanTable(md string) string {
	md = quoteLinks.ReplaceAllString(md, "")
	var kept []string
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "|") {
			continue
		}
		kept = append(kept, line)
		if len(kept) == maxTableLines {
			break
		}
	}
	return strings.Join(kept, "\n")
}

func regionFilter(markers []string) func(string) string {
	return func(md string) string {
		var kept []string
		for _, line := range strings.Split(md, "\n") {
			if !containsAny(line, markers) {
				continue
			}
			kept = append(kept, line)
			if len(kept) == maxRegionLines {
				break
			}
		}
		return strings.Join(kept, "\n")
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Package materials reads commodity boards from Naver Finance: the materials
// tab (energy, non-ferrous metals, agriculture) and the gold tab (oil,
// precious metals).
package materials

import (
	"context"
	"fmt"
	"regexp"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/urls"
	"github.com/gaurav-prasanna/finpipe/sources"
)

// Board selects one commodity board.
type Board int

const (
	Energy Board = iota
	NonFerrous
	Agriculture
	Oil
	PreciousMetals
)

// Boards lists every board kind.
func Boards() []Board { return []Board{Energy, NonFerrous, Agriculture, Oil, PreciousMetals} }

func (b Board) String() string {
	switch b {
	case Energy:
		return "energy"
	case NonFerrous:
		return "non_ferrous"
	case Agriculture:
		return "agriculture"
	case Oil:
		return "oil"
	case PreciousMetals:
		return "precious_metals"
	default:
		return fmt.Sprintf("board(%d)", int(b))
	}
}

const (
	materialsTab = "/marketindex/?tabSel=materials"
	goldTab      = "/marketindex/?tabSel=gold"
)

var (
	contentDiv3Table = core.MustQuery("#content > div:nth-of-type(3) > table")
	contentDiv3      = core.MustQuery("#content > div:nth-of-type(3)")
	contentDiv4      = core.MustQuery("#content > div:nth-of-type(4)")
	contentDiv5      = core.MustQuery("#content > div:nth-of-type(5)")

	materialLinks = regexp.MustCompile(`\(/marketindex/materialDetail\.naver\?marketindexCd=[^)]+\)`)
	oilLinks      = regexp.MustCompile(`\(/marketindex/oilDetail\.naver\?marketindexCd=[^)]+\)`)
)

type location struct {
	tab   string
	query core.PathQuery
	links *regexp.Regexp
}

func locate(b Board) (location, bool) {
	switch b {
	case Energy:
		return location{materialsTab, contentDiv3Table, materialLinks}, true
	case NonFerrous:
		return location{materialsTab, contentDiv4, materialLinks}, true
	case Agriculture:
		return location{materialsTab, contentDiv5, materialLinks}, true
	case Oil:
		return location{goldTab, contentDiv3, oilLinks}, true
	case PreciousMetals:
		return location{goldTab, contentDiv4, oilLinks}, true
	}
	return location{}, false
}

// Parser reads commodity boards.
type Parser struct {
	sources.Scraper
	base string
}

// New creates a Parser.
func New(tk sources.Toolkit) *Parser {
	return &Parser{
		Scraper: sources.NewScraper(sources.Materials, tk),
		base:    tk.Endpoints.NaverFinance,
	}
}

// Source implements sources.Parser.
func (p *Parser) Source() sources.ID { return sources.Materials }

// Get returns one board as markdown.
func (p *Parser) Get(ctx context.Context, b Board) string {
	loc, ok := locate(b)
	if !ok {
		return ""
	}
	return p.Section(ctx, sources.Section{
		URL:   urls.Join(p.base, loc.tab),
		Mode:  core.EUCKR,
		Query: loc.query,
		Clean: func(md string) string { return loc.links.ReplaceAllString(md, "") },
	})
}

// Tab returns every board of the tab b belongs to, reading the page once.
// Keys are board names.
func (p *Parser) Tab(ctx context.Context, b Board) map[string]string {
	loc, ok := locate(b)
	if !ok {
		return map[string]string{}
	}
	var boards []Board
	for _, other := range Boards() {
		if l, _ := locate(other); l.tab == loc.tab {
			boards = append(boards, other)
		}
	}
	queries := make([]core.PathQuery, len(boards))
	for i, other := range boards {
		l, _ := locate(other)
		queries[i] = l.query
	}
	out := make(map[string]string, len(boards))
	for i, md := range p.Sections(ctx, urls.Join(p.base, loc.tab), core.EUCKR, queries...) {
		if md != "" {
			md = loc.links.ReplaceAllString(md, "")
		}
		out[boards[i].String()] = md
	}
	return out
}

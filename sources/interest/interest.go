// Package interest reads policy rates and bond yields from Naver Finance.
package interest

import (
	"context"
	"fmt"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/urls"
	"github.com/gaurav-prasanna/finpipe/sources"
)

// Table selects one rate table.
type Table int

const (
	Rates Table = iota
	Bonds
	CD
	Corporate
)

// Tables lists every table kind.
func Tables() []Table { return []Table{Rates, Bonds, CD, Corporate} }

func (t Table) String() string {
	switch t {
	case Rates:
		return "rates"
	case Bonds:
		return "bonds"
	case CD:
		return "cd"
	case Corporate:
		return "corporate"
	default:
		return fmt.Sprintf("table(%d)", int(t))
	}
}

var (
	content     = core.MustQuery("#content")
	contentArea = core.MustQuery("#contentarea")
)

func location(t Table) (string, core.PathQuery, bool) {
	switch t {
	case Rates:
		return "/marketindex/?tabSel=interest", content, true
	case Bonds:
		return "/marketindex/bondDayList.naver?bondType=A", contentArea, true
	case CD:
		return "/marketindex/interestDayList.naver?marketindexCd=IRR_CD91&page=1", contentArea, true
	case Corporate:
		return "/marketindex/bondDayList.naver?bondType=B", contentArea, true
	}
	return "", core.PathQuery{}, false
}

// Parser reads rate tables.
type Parser struct {
	sources.Scraper
	base string
}

// New creates a Parser.
func New(tk sources.Toolkit) *Parser {
	return &Parser{
		Scraper: sources.NewScraper(sources.Interest, tk),
		base:    tk.Endpoints.NaverFinance,
	}
}

// Source implements sources.Parser.
func (p *Parser) Source() sources.ID { return sources.Interest }

// Get returns one table as markdown.
func (p *Parser) Get(ctx context.Context, t Table) string {
	path, q, ok := location(t)
	if !ok {
		return ""
	}
	return p.Section(ctx, sources.Section{URL: urls.Join(p.base, path), Mode: core.EUCKR, Query: q})
}

package yahoo

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/extract"
	"github.com/gaurav-prasanna/finpipe/core/urls"
)

const (
	lookupRows   = 10
	maxTickerLen = 10
)

var tableRows = core.MustQuery("table tr")

// Lookup searches overseas tickers. Matches keep page order; failures yield
// an empty slice.
func (p *Parser) Lookup(ctx context.Context, query string) []core.TickerMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		return []core.TickerMatch{}
	}
	page := p.Page(ctx, urls.WithQuery(p.base, "/lookup", "s", query), core.AutoDetect)
	if page == nil {
		return []core.TickerMatch{}
	}
	return LookupRows(page.Document)
}

// LookupRows reads up to ten data rows after the header row. A row needs a
// ticker link in its first cell and a name cell.
func LookupRows(doc *goquery.Document) []core.TickerMatch {
	matches := []core.TickerMatch{}
	rows := extract.All(doc, tableRows)
	if rows.Length() < 2 {
		return matches
	}
	rows.Slice(1, min(rows.Length(), lookupRows+1)).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		link := cells.First().Find("a").First()
		if link.Length() == 0 {
			return
		}
		ticker := strings.TrimSpace(link.Text())
		if ticker == "" || len(ticker) >= maxTickerLen {
			return
		}
		matches = append(matches, core.TickerMatch{
			Code:   ticker,
			Name:   strings.TrimSpace(cells.Eq(1).Text()),
			Market: core.MarketOverseas,
		})
	})
	return matches
}

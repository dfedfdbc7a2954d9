// Package quote reads domestic stock quotes from Naver Finance item pages.
package quote

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/extract"
	"github.com/gaurav-prasanna/finpipe/core/urls"
	"github.com/gaurav-prasanna/finpipe/sources"
	"github.com/shopspring/decimal"
)

const (
	itemPath    = "/item/main.naver"
	volumeLabel = "거래량"
)

var (
	priceField      = core.MustQuery("p.no_today > em > span.blind")
	changeField     = core.MustQuery("p.no_exday > em > span.blind")
	changeRateField = core.MustQuery("p.no_exday > em:nth-of-type(2) > span.blind")
	cells           = core.MustQuery("td")
)

// Quote holds the fields read from an item page. Empty fields were absent
// or not numeric.
type Quote struct {
	Price      string `json:"price,omitempty"`
	Change     string `json:"change,omitempty"`
	ChangeRate string `json:"change_rate,omitempty"`
	Volume     string `json:"volume,omitempty"`
}

// Empty reports whether no field was found.
func (q Quote) Empty() bool {
	return q.Price == "" && q.Change == "" && q.ChangeRate == "" && q.Volume == ""
}

// String renders the present fields as "Label: value" pairs joined by " | ".
func (q Quote) String() string {
	var parts []string
	add := func(label, v string) {
		if v != "" {
			parts = append(parts, label+": "+v)
		}
	}
	add("Price", q.Price)
	add("Change", q.Change)
	add("Change rate", q.ChangeRate)
	add("Volume", q.Volume)
	return strings.Join(parts, " | ")
}

// Parser reads item pages.
type Parser struct {
	sources.Scraper
	base string
}

// New creates a Parser.
func New(tk sources.Toolkit) *Parser {
	return &Parser{
		Scraper: sources.NewScraper(sources.Quote, tk),
		base:    tk.Endpoints.NaverFinance,
	}
}

// Source implements sources.Parser.
func (p *Parser) Source() sources.ID { return sources.Quote }

// Domestic returns a one-line quote for code. When none of the quote fields
// are on the page, numbers scraped from the page text are returned instead.
func (p *Parser) Domestic(ctx context.Context, code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	page := p.Page(ctx, urls.WithQuery(p.base, itemPath, "code", code), core.EUCKR)
	if page == nil {
		return ""
	}
	q := Read(page.Document)
	if !q.Empty() {
		return q.String()
	}
	return Summarize(page.Document.Text())
}

// Read extracts the quote fields from an item page.
func Read(doc *goquery.Document) Quote {
	return Quote{
		Price:      numericText(doc, priceField),
		Change:     numericText(doc, changeField),
		ChangeRate: numericText(doc, changeRateField),
		Volume:     volume(doc),
	}
}

func numericText(doc *goquery.Document, q core.PathQuery) string {
	sel := extract.First(doc, q)
	if sel == nil {
		return ""
	}
	return numeric(sel.Text())
}

// volume reads the cell following the one labelled with the volume marker.
func volume(doc *goquery.Document) string {
	var out string
	extract.All(doc, cells).EachWithBreak(func(_ int, td *goquery.Selection) bool {
		if !strings.Contains(ownText(td), volumeLabel) {
			return true
		}
		next := td.NextAllFiltered("td").First()
		if next.Length() == 0 {
			return true
		}
		out = numeric(ownText(next))
		return out == ""
	})
	return out
}

// ownText is the text of the direct text children of s.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		}
	})
	return strings.TrimSpace(b.String())
}

// numeric returns s trimmed when it parses as a number once thousands
// separators, a sign and a trailing percent are removed.
func numeric(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	raw := strings.TrimSuffix(strings.ReplaceAll(s, ",", ""), "%")
	raw = strings.TrimLeft(raw, "+-")
	if _, err := decimal.NewFromString(raw); err != nil {
		return ""
	}
	return s
}

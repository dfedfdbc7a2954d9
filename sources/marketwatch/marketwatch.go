// Package marketwatch assembles overseas disclosure links: SEC EDGAR filing
// searches, earnings links scraped from a MarketWatch stock page and a few
// fixed entry points.
package marketwatch

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/extract"
	"github.com/gaurav-prasanna/finpipe/core/urls"
	"github.com/gaurav-prasanna/finpipe/sources"
)

const (
	maxEarningsLinks = 8
	minTitleLen      = 10
	maxTitleLen      = 100
	shownTitleLen    = 80
)

// forms are the EDGAR form types linked for every symbol.
var forms = []struct{ title, code string }{
	{"10-K Annual Report", "10-K"},
	{"10-Q Quarterly Report", "10-Q"},
	{"8-K Current Report", "8-K"},
	{"DEF 14A Proxy Statement", "DEF%2014A"},
	{"S-1 Registration Statement", "S-1"},
	{"4 Statement of Changes", "4"},
}

var anchors = core.MustQuery("a[href]")

// Link is one titled URL.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Disclosures groups the links assembled for one symbol.
type Disclosures struct {
	Symbol   string `json:"symbol"`
	Filings  []Link `json:"filings"`
	Earnings []Link `json:"earnings"`
	Base     []Link `json:"base"`
}

// Markdown renders the groups as headed link lists.
func (d Disclosures) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s disclosures and earnings calls\n", d.Symbol)
	section := func(title string, links []Link) {
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		for _, l := range links {
			fmt.Fprintf(&b, "[%s](%s)\n", l.Title, l.URL)
		}
	}
	section("SEC filings", d.Filings)
	if len(d.Earnings) > 0 {
		section("Earnings calls", d.Earnings)
	}
	section("Links", d.Base)
	return strings.TrimRight(b.String(), "\n")
}

// Parser assembles disclosure links.
type Parser struct {
	sources.Scraper
	base  string
	edgar string
}

// New creates a Parser.
func New(tk sources.Toolkit) *Parser {
	return &Parser{
		Scraper: sources.NewScraper(sources.MarketWatch, tk),
		base:    tk.Endpoints.MarketWatch,
		edgar:   tk.Endpoints.SECEdgar,
	}
}

// Source implements sources.Parser.
func (p *Parser) Source() sources.ID { return sources.MarketWatch }

// Overseas returns the disclosure links for symbol as markdown. The filing
// and base links are always present; earnings links need the MarketWatch page.
func (p *Parser) Overseas(ctx context.Context, symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ""
	}
	return p.Collect(ctx, symbol).Markdown()
}

// Collect assembles the link groups for symbol.
func (p *Parser) Collect(ctx context.Context, symbol string) Disclosures {
	stock := p.stockURL(symbol)
	d := Disclosures{Symbol: symbol, Earnings: []Link{}}

	for _, f := range forms {
		d.Filings = append(d.Filings, Link{Title: f.title, URL: p.edgarSearch(symbol) + "&forms=" + f.code})
	}
	if page := p.Page(ctx, stock, core.AutoDetect); page != nil {
		d.Earnings = EarningsLinks(page.Document, page.URL)
	}
	d.Base = []Link{
		{Title: "SEC EDGAR search", URL: p.edgarSearch(symbol)},
		{Title: "MarketWatch " + symbol, URL: stock},
		{Title: "MarketWatch Earnings", URL: stock + "/earnings"},
	}
	return d
}

func (p *Parser) stockURL(symbol string) string {
	return urls.Join(p.base, "/investing/stock/"+strings.ToLower(symbol))
}

func (p *Parser) edgarSearch(symbol string) string {
	return urls.Join(p.edgar, "/edgar/search/") + "?r=el#/q=" + symbol
}

// EarningsLinks returns up to eight earnings-related anchors in page order,
// resolved against pageURL.
func EarningsLinks(doc *goquery.Document, pageURL string) []Link {
	links := []Link{}
	extract.All(doc, anchors).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		title := strings.TrimSpace(a.Text())
		if !isEarnings(href, title) {
			return true
		}
		target := urls.Resolve(pageURL, href)
		if target == "" {
			return true
		}
		if r := []rune(title); len(r) > shownTitleLen {
			title = string(r[:shownTitleLen])
		}
		links = append(links, Link{Title: title, URL: target})
		return len(links) < maxEarningsLinks
	})
	return links
}

func isEarnings(href, title string) bool {
	if n := utf8.RuneCountInString(title); n <= minTitleLen || n >= maxTitleLen {
		return false
	}
	h := strings.ToLower(href)
	t := strings.ToLower(title)
	return strings.Contains(h, "/earnings") ||
		strings.Contains(h, "earnings-call") ||
		(strings.Contains(t, "earnings") && strings.Contains(t, "call"))
}

// Package exchange reads foreign exchange rates from Naver Finance.
package exchange

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/urls"
	"github.com/gaurav-prasanna/finpipe/sources"
)

const (
	domesticPath = "/marketindex/?tabSel=exchange"
	worldPath    = "/marketindex/worldExchangeList.naver"

	// WorldPages is how many world list pages are concatenated.
	WorldPages = 4

	pageSeparator = "\n\n---\n\n"
)

var (
	bodyDiv = core.MustQuery("body > div")
	body    = core.MustQuery("body")

	detailText = regexp.MustCompile(`/marketindex/worldExchangeDetail\.naver\?marketindexCd=`)
	listText   = regexp.MustCompile(`/marketindex/worldExchangeList\.naver\?page=[1-4]`)
	fxLinks    = regexp.MustCompile(`\(FX_[^)]+\)`)
)

// Parser reads exchange rate pages.
type Parser struct {
	sources.Scraper
	base string
}

// New creates a Parser.
func New(tk sources.Toolkit) *Parser {
	return &Parser{
		Scraper: sources.NewScraper(sources.Exchange, tk),
		base:    tk.Endpoints.NaverFinance,
	}
}

// Source implements sources.Parser.
func (p *Parser) Source() sources.ID { return sources.Exchange }

// Domestic returns the won exchange rate board.
func (p *Parser) Domestic(ctx context.Context) string {
	return p.Section(ctx, sources.Section{
		URL:   urls.Join(p.base, domesticPath),
		Mode:  core.EUCKR,
		Query: bodyDiv,
	})
}

// World returns the world exchange list. Pages are fetched in order; any
// page that cannot be read aborts the whole listing.
func (p *Parser) World(ctx context.Context) string {
	blocks := make([]string, 0, WorldPages)
	for n := 1; n <= WorldPages; n++ {
		page := p.Page(ctx, urls.WithQuery(p.base, worldPath, "page", strconv.Itoa(n)), core.EUCKR)
		if page == nil {
			return ""
		}
		md := CleanWorld(p.Markdown(page, body))
		blocks = append(blocks, fmt.Sprintf("## Page %d\n\n%s", n, md))
	}
	return strings.Join(blocks, pageSeparator)
}

// CleanWorld removes link targets the list pages leak into their text.
func CleanWorld(md string) string {
	md = detailText.ReplaceAllString(md, "")
	md = listText.ReplaceAllString(md, "")
	return fxLinks.ReplaceAllString(md, "")
}

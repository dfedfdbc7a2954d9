// Package ticker resolves free-text queries to security codes using the
// Naver Finance search page.
//
// One search request can land on four page shapes. Domestic resolution checks
// them in a fixed order and the first that matches wins:
//
//  1. a script redirect to a single security's detail page
//  2. a detail page served directly (hidden code field)
//  3. a multi-row results table
//  4. nothing recognizable, which is an empty result and not an error
//
// Overseas resolution is an independent pass over a second table on the same
// page.
package ticker

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/extract"
	"github.com/gaurav-prasanna/finpipe/core/urls"
	"github.com/gaurav-prasanna/finpipe/sources"
	"go.uber.org/zap"
)

const searchPath = "/search/search.naver"

var (
	redirectPattern = regexp.MustCompile(`location\.href\s*=\s*["']([^"']+)["']`)
	domesticCode    = regexp.MustCompile(`code=([0-9A-Z]+)`)
	overseasCode    = regexp.MustCompile(`/stock/([A-Z]+)`)
	whitespace      = regexp.MustCompile(`\s+`)

	headingName  = core.MustQuery("#middle h2 > a")
	codeField    = core.MustQuery("input#code")
	domesticRows = core.MustQuery("#content > div:nth-of-type(4) > table tr")
	overseasRows = core.MustQuery("#content > div:nth-of-type(8) > table > tbody > tr")
)

// Shape is the classification of a search response.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeScriptRedirect
	ShapeSingleResult
	ShapeResultTable
)

func (s Shape) String() string {
	switch s {
	case ShapeScriptRedirect:
		return "script_redirect"
	case ShapeSingleResult:
		return "single_result"
	case ShapeResultTable:
		return "result_table"
	default:
		return "empty"
	}
}

// Results holds both resolution passes over one search page.
type Results struct {
	Domestic []core.TickerMatch `json:"domestic"`
	Overseas []core.TickerMatch `json:"overseas"`
}

// Resolver searches tickers. It is safe for concurrent use.
type Resolver struct {
	sources.Scraper
	base string
}

// New creates a Resolver against the configured Naver Finance endpoint.
func New(tk sources.Toolkit) *Resolver {
	return &Resolver{
		Scraper: sources.NewScraper(sources.Ticker, tk),
		base:    tk.Endpoints.NaverFinance,
	}
}

// Source implements sources.Parser.
func (r *Resolver) Source() sources.ID { return sources.Ticker }

// Search fetches the search page once and runs both passes over it.
func (r *Resolver) Search(ctx context.Context, query string) Results {
	page := r.searchPage(ctx, query)
	return Results{
		Domestic: r.resolveDomestic(ctx, page),
		Overseas: resolveOverseas(page),
	}
}

// SearchDomestic returns domestic matches for query in page order.
func (r *Resolver) SearchDomestic(ctx context.Context, query string) []core.TickerMatch {
	return r.resolveDomestic(ctx, r.searchPage(ctx, query))
}

// SearchOverseas returns overseas matches for query in page order.
func (r *Resolver) SearchOverseas(ctx context.Context, query string) []core.TickerMatch {
	return resolveOverseas(r.searchPage(ctx, query))
}

func (r *Resolver) searchPage(ctx context.Context, query string) *core.FetchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	u := urls.WithQuery(r.base, searchPath, "query", query, "endUrl", "", "encoding", "UTF-8", "page", "1")
	return r.Page(ctx, u, core.EUCKR)
}

// classification is what Classify found, with the data the shape needs.
type classification struct {
	shape    Shape
	redirect string
	single   core.TickerMatch
}

// Classify reports which shape a search page has.
func Classify(page *core.FetchResult) Shape {
	return classify(page).shape
}

func classify(page *core.FetchResult) classification {
	if page == nil {
		return classification{shape: ShapeEmpty}
	}
	if target, ok := redirectTarget(page.Body); ok {
		return classification{shape: ShapeScriptRedirect, redirect: urls.Resolve(page.URL, target)}
	}
	if m, ok := singleResult(page.Document); ok {
		return classification{shape: ShapeSingleResult, single: m}
	}
	if extract.First(page.Document, domesticRows) != nil {
		return classification{shape: ShapeResultTable}
	}
	return classification{shape: ShapeEmpty}
}

func (r *Resolver) resolveDomestic(ctx context.Context, page *core.FetchResult) []core.TickerMatch {
	c := classify(page)
	if page != nil {
		r.Log().Debug("classified search page", zap.String("url", page.URL), zap.Stringer("shape", c.shape))
	}

	switch c.shape {
	case ShapeScriptRedirect:
		if m, ok := r.followRedirect(ctx, page.URL, c.redirect); ok {
			return []core.TickerMatch{m}
		}
		return []core.TickerMatch{}
	case ShapeSingleResult:
		return []core.TickerMatch{c.single}
	case ShapeResultTable:
		return scanRows(page.Document, domesticRows, domesticCode, core.MarketDomestic)
	default:
		return []core.TickerMatch{}
	}
}

func resolveOverseas(page *core.FetchResult) []core.TickerMatch {
	if page == nil {
		return []core.TickerMatch{}
	}
	return scanRows(page.Document, overseasRows, overseasCode, core.MarketOverseas)
}

// redirectTarget finds a client-side redirect whose target carries a code.
func redirectTarget(body string) (string, bool) {
	m := redirectPattern.FindStringSubmatch(body)
	if m == nil || !domesticCode.MatchString(m[1]) {
		return "", false
	}
	return m[1], true
}

// followRedirect fetches the detail page a script redirect points at. Only
// targets on the search page's origin are followed. Any failure means zero
// results; the search page is not consulted again.
func (r *Resolver) followRedirect(ctx context.Context, from, target string) (core.TickerMatch, bool) {
	m := domesticCode.FindStringSubmatch(target)
	if target == "" || m == nil {
		return core.TickerMatch{}, false
	}
	if urls.Origin(target) != urls.Origin(from) {
		r.Log().Warn("redirect leaves search origin", zap.String("url", target), zap.String("from", from))
		return core.TickerMatch{}, false
	}
	detail := r.Page(ctx, target, core.AutoDetect)
	if detail == nil {
		r.Log().Warn("redirect target unavailable", zap.String("url", target))
		return core.TickerMatch{}, false
	}
	name := headingText(detail.Document)
	if name == "" {
		r.Log().Debug("redirect target has no name heading", zap.String("url", target))
		return core.TickerMatch{}, false
	}
	return core.TickerMatch{Code: m[1], Name: name, Market: core.MarketDomestic}, true
}

// singleResult reads a detail page served in place of the result list.
func singleResult(doc *goquery.Document) (core.TickerMatch, bool) {
	name := headingText(doc)
	if name == "" {
		return core.TickerMatch{}, false
	}
	field := extract.First(doc, codeField)
	if field == nil {
		return core.TickerMatch{}, false
	}
	code := strings.TrimSpace(field.AttrOr("value", ""))
	if code == "" {
		return core.TickerMatch{}, false
	}
	return core.TickerMatch{Code: code, Name: name, Market: core.MarketDomestic}, true
}

func headingText(doc *goquery.Document) string {
	h := extract.First(doc, headingName)
	if h == nil {
		return ""
	}
	return cleanText(h.Text())
}

// scanRows emits one match per data row whose first cell links to a code.
// Header rows and rows without a recognizable code are skipped.
func scanRows(doc *goquery.Document, rows core.PathQuery, code *regexp.Regexp, market core.Market) []core.TickerMatch {
	matches := []core.TickerMatch{}
	extract.All(doc, rows).Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() == 0 {
			return
		}
		link := cells.First().Find("a[href]").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		m := code.FindStringSubmatch(href)
		if m == nil {
			return
		}
		matches = append(matches, core.TickerMatch{
			Code:   m[1],
			Name:   cleanText(link.Text()),
			Market: market,
		})
	})
	return matches
}

func cleanText(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// Package crypto reads crypto asset data: the investing.com overview table
// and the CoinGecko search and market endpoints.
package crypto

import (
	"context"
	"strings"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/urls"
	"github.com/gaurav-prasanna/finpipe/sources"
	"go.uber.org/zap"
)

var overviewTable = core.MustQuery(`#__next > div:nth-of-type(2) > div:nth-of-type(2) > div:nth-of-type(2) > div:nth-of-type(1) > div:nth-of-type(5) > div > div:nth-of-type(2) > div:nth-of-type(1) > table`)

// Parser reads crypto data.
type Parser struct {
	sources.Scraper
	base  string
	gecko *geckoClient
}

// New creates a Parser.
func New(tk sources.Toolkit) *Parser {
	return &Parser{
		Scraper: sources.NewScraper(sources.Crypto, tk),
		base:    tk.Endpoints.Investing,
		gecko:   newGeckoClient(tk.Endpoints.CoinGecko, tk.Timeout),
	}
}

// Source implements sources.Parser.
func (p *Parser) Source() sources.ID { return sources.Crypto }

// Overview returns the investing.com crypto table as markdown.
func (p *Parser) Overview(ctx context.Context) string {
	return p.Section(ctx, sources.Section{
		URL:   urls.Join(p.base, "/crypto"),
		Mode:  core.AutoDetect,
		Query: overviewTable,
	})
}

// Search returns up to ten coins matching query. Failures yield an empty slice.
func (p *Parser) Search(ctx context.Context, query string) []Coin {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Coin{}
	}
	coins, err := p.gecko.search(ctx, query)
	if err != nil {
		p.Log().Warn("coin search failed", zap.String("query", query), zap.Error(err))
		return []Coin{}
	}
	return coins
}

// Top returns the limit largest coins by market cap priced in currency.
// Non-positive limits and an empty currency fall back to 20 and KRW.
func (p *Parser) Top(ctx context.Context, limit int, currency string) []Coin {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if currency == "" {
		currency = defaultCurrency
	}
	coins, err := p.gecko.markets(ctx, limit, currency)
	if err != nil {
		p.Log().Warn("coin markets failed", zap.Int("limit", limit), zap.String("currency", currency), zap.Error(err))
		return []Coin{}
	}
	return coins
}

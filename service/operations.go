package service

import (
	"context"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/sources"
	"github.com/gaurav-prasanna/finpipe/sources/crypto"
	"github.com/gaurav-prasanna/finpipe/sources/fnguide"
	"github.com/gaurav-prasanna/finpipe/sources/interest"
	"github.com/gaurav-prasanna/finpipe/sources/market"
	"github.com/gaurav-prasanna/finpipe/sources/materials"
	"github.com/gaurav-prasanna/finpipe/sources/ticker"
	"github.com/gaurav-prasanna/finpipe/sources/yahoo"
)

// The interfaces below are what each operation needs from its parser.

type tickerSearcher interface {
	Search(ctx context.Context, query string) ticker.Results
	SearchDomestic(ctx context.Context, query string) []core.TickerMatch
	SearchOverseas(ctx context.Context, query string) []core.TickerMatch
}

type reportReader interface {
	Report(ctx context.Context, r fnguide.Report, ticker string) string
}

type marketReader interface {
	Get(ctx context.Context, p market.Page) string
}

type interestReader interface {
	Get(ctx context.Context, t interest.Table) string
}

type exchangeReader interface {
	Domestic(ctx context.Context) string
	World(ctx context.Context) string
}

type materialsReader interface {
	Get(ctx context.Context, b materials.Board) string
	Tab(ctx context.Context, b materials.Board) map[string]string
}

type cryptoReader interface {
	Overview(ctx context.Context) string
	Search(ctx context.Context, query string) []crypto.Coin
	Top(ctx context.Context, limit int, currency string) []crypto.Coin
}

type quoteReader interface {
	Domestic(ctx context.Context, code string) string
}

type yahooReader interface {
	Get(ctx context.Context, b yahoo.Board) string
	StockQuote(ctx context.Context, symbol string) string
	CryptoQuote(ctx context.Context, symbol string) string
	Lookup(ctx context.Context, query string) []core.TickerMatch
}

type disclosureReader interface {
	Overseas(ctx context.Context, symbol string) string
}

// SearchTicker runs the domestic and overseas passes over one search page.
func (m *Manager) SearchTicker(ctx context.Context, query string) (ticker.Results, error) {
	p, err := parserAs[tickerSearcher](m, sources.Ticker)
	if err != nil {
		return ticker.Results{}, err
	}
	return p.Search(ctx, query), nil
}

// SearchDomesticTicker resolves query to domestic securities.
func (m *Manager) SearchDomesticTicker(ctx context.Context, query string) ([]core.TickerMatch, error) {
	p, err := parserAs[tickerSearcher](m, sources.Ticker)
	if err != nil {
		return nil, err
	}
	return p.SearchDomestic(ctx, query), nil
}

// SearchOverseasTicker resolves query to overseas securities listed on the
// domestic search page.
func (m *Manager) SearchOverseasTicker(ctx context.Context, query string) ([]core.TickerMatch, error) {
	p, err := parserAs[tickerSearcher](m, sources.Ticker)
	if err != nil {
		return nil, err
	}
	return p.SearchOverseas(ctx, query), nil
}

// LookupOverseasTicker searches Yahoo Finance for overseas tickers.
func (m *Manager) LookupOverseasTicker(ctx context.Context, query string) ([]core.TickerMatch, error) {
	p, err := parserAs[yahooReader](m, sources.Yahoo)
	if err != nil {
		return nil, err
	}
	return p.Lookup(ctx, query), nil
}

// CompanyReport returns one FnGuide report for a domestic ticker.
func (m *Manager) CompanyReport(ctx context.Context, r fnguide.Report, tickerCode string) (string, error) {
	p, err := parserAs[reportReader](m, sources.FnGuide)
	if err != nil {
		return "", err
	}
	return p.Report(ctx, r, tickerCode), nil
}

// MarketPage returns one domestic market overview.
func (m *Manager) MarketPage(ctx context.Context, page market.Page) (string, error) {
	p, err := parserAs[marketReader](m, sources.Market)
	if err != nil {
		return "", err
	}
	return p.Get(ctx, page), nil
}

// InterestTable returns one rate table.
func (m *Manager) InterestTable(ctx context.Context, t interest.Table) (string, error) {
	p, err := parserAs[interestReader](m, sources.Interest)
	if err != nil {
		return "", err
	}
	return p.Get(ctx, t), nil
}

// DomesticExchange returns the won exchange rate board.
func (m *Manager) DomesticExchange(ctx context.Context) (string, error) {
	p, err := parserAs[exchangeReader](m, sources.Exchange)
	if err != nil {
		return "", err
	}
	return p.Domestic(ctx), nil
}

// WorldExchange returns the world exchange list.
func (m *Manager) WorldExchange(ctx context.Context) (string, error) {
	p, err := parserAs[exchangeReader](m, sources.Exchange)
	if err != nil {
		return "", err
	}
	return p.World(ctx), nil
}

// MaterialsBoard returns one commodity board.
func (m *Manager) MaterialsBoard(ctx context.Context, b materials.Board) (string, error) {
	p, err := parserAs[materialsReader](m, sources.Materials)
	if err != nil {
		return "", err
	}
	return p.Get(ctx, b), nil
}

// MaterialsTab returns every board on the tab b belongs to, keyed by board
// name, from a single page read.
func (m *Manager) MaterialsTab(ctx context.Context, b materials.Board) (map[string]string, error) {
	p, err := parserAs[materialsReader](m, sources.Materials)
	if err != nil {
		return nil, err
	}
	return p.Tab(ctx, b), nil
}

// CryptoOverview returns the crypto overview table.
func (m *Manager) CryptoOverview(ctx context.Context) (string, error) {
	p, err := parserAs[cryptoReader](m, sources.Crypto)
	if err != nil {
		return "", err
	}
	return p.Overview(ctx), nil
}

// SearchCrypto returns coins matching query.
func (m *Manager) SearchCrypto(ctx context.Context, query string) ([]crypto.Coin, error) {
	p, err := parserAs[cryptoReader](m, sources.Crypto)
	if err != nil {
		return nil, err
	}
	return p.Search(ctx, query), nil
}

// TopCryptos returns the largest coins by market cap.
func (m *Manager) TopCryptos(ctx context.Context, limit int, currency string) ([]crypto.Coin, error) {
	p, err := parserAs[cryptoReader](m, sources.Crypto)
	if err != nil {
		return nil, err
	}
	return p.Top(ctx, limit, currency), nil
}

// DomesticQuote returns a one-line quote for a domestic stock.
func (m *Manager) DomesticQuote(ctx context.Context, code string) (string, error) {
	p, err := parserAs[quoteReader](m, sources.Quote)
	if err != nil {
		return "", err
	}
	return p.Domestic(ctx, code), nil
}

// GlobalBoard returns one Yahoo Finance overview.
func (m *Manager) GlobalBoard(ctx context.Context, b yahoo.Board) (string, error) {
	p, err := parserAs[yahooReader](m, sources.Yahoo)
	if err != nil {
		return "", err
	}
	return p.Get(ctx, b), nil
}

// StockQuote returns an overseas stock quote.
func (m *Manager) StockQuote(ctx context.Context, symbol string) (string, error) {
	p, err := parserAs[yahooReader](m, sources.Yahoo)
	if err != nil {
		return "", err
	}
	return p.StockQuote(ctx, symbol), nil
}

// CryptoQuote returns a coin quote in US dollars.
func (m *Manager) CryptoQuote(ctx context.Context, symbol string) (string, error) {
	p, err := parserAs[yahooReader](m, sources.Yahoo)
	if err != nil {
		return "", err
	}
	return p.CryptoQuote(ctx, symbol), nil
}

// OverseasDisclosures returns filing and earnings links for an overseas symbol.
func (m *Manager) OverseasDisclosures(ctx context.Context, symbol string) (string, error) {
	p, err := parserAs[disclosureReader](m, sources.MarketWatch)
	if err != nil {
		return "", err
	}
	return p.Overseas(ctx, symbol), nil
}

// Package sources defines the contract shared by every site parser: the
// enumerated source identifiers, the Toolkit handed to constructors and the
// Scraper that runs fetch → extract → normalize for one page section.
package sources

import (
	"time"

	"github.com/gaurav-prasanna/finpipe/config"
	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/extract"
	"github.com/gaurav-prasanna/finpipe/core/fetch"
	"github.com/gaurav-prasanna/finpipe/core/normalize"
	"go.uber.org/zap"
)

// ID names one external website or dataset.
type ID string

const (
	Ticker      ID = "ticker"
	FnGuide     ID = "fnguide"
	Market      ID = "market"
	Interest    ID = "interest"
	Exchange    ID = "exchange"
	Materials   ID = "materials"
	Crypto      ID = "crypto"
	Quote       ID = "quote"
	Yahoo       ID = "yahoo"
	MarketWatch ID = "marketwatch"
)

// All returns every built-in source in a stable order.
func All() []ID {
	return []ID{Ticker, FnGuide, Market, Interest, Exchange, Materials, Crypto, Quote, Yahoo, MarketWatch}
}

// Parser is implemented by every site parser.
type Parser interface {
	Source() ID
}

// Toolkit bundles what a parser needs to reach its site.
type Toolkit struct {
	Fetcher    core.Fetcher
	Extractor  core.Extractor
	Normalizer core.Normalizer
	Logger     *zap.Logger
	Endpoints  config.Endpoints
	Timeout    time.Duration
}

// NewToolkit builds the production toolkit from configuration.
func NewToolkit(cfg *config.Config, log *zap.Logger) Toolkit {
	if log == nil {
		log = zap.NewNop()
	}
	return Toolkit{
		Fetcher:    fetch.New(fetch.WithTimeout(cfg.Timeout), fetch.WithLogger(log)),
		Extractor:  extract.New(),
		Normalizer: normalize.New(),
		Logger:     log,
		Endpoints:  cfg.Endpoints,
		Timeout:    cfg.Timeout,
	}
}

// withDefaults fills the stages a caller left empty.
func (tk Toolkit) withDefaults() Toolkit {
	if tk.Logger == nil {
		tk.Logger = zap.NewNop()
	}
	if tk.Fetcher == nil {
		tk.Fetcher = fetch.New(fetch.WithTimeout(tk.Timeout), fetch.WithLogger(tk.Logger))
	}
	if tk.Extractor == nil {
		tk.Extractor = extract.New()
	}
	if tk.Normalizer == nil {
		tk.Normalizer = normalize.New()
	}
	return tk
}

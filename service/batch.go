package service

import (
	"context"

	"github.com/gaurav-prasanna/finpipe/sources"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

type keyed struct {
	key   string
	value string
}

// DomesticQuotes fetches quotes for codes concurrently. The result is keyed
// by the input code; repeated codes are fetched once.
func (m *Manager) DomesticQuotes(ctx context.Context, codes []string) (map[string]string, error) {
	p, err := parserAs[quoteReader](m, sources.Quote)
	if err != nil {
		return nil, err
	}
	return m.batch(ctx, codes, p.Domestic), nil
}

// StockQuotes fetches overseas stock quotes concurrently, keyed by symbol.
func (m *Manager) StockQuotes(ctx context.Context, symbols []string) (map[string]string, error) {
	p, err := parserAs[yahooReader](m, sources.Yahoo)
	if err != nil {
		return nil, err
	}
	return m.batch(ctx, symbols, p.StockQuote), nil
}

// CryptoQuotes fetches coin quotes concurrently, keyed by the symbol as given.
func (m *Manager) CryptoQuotes(ctx context.Context, symbols []string) (map[string]string, error) {
	p, err := parserAs[yahooReader](m, sources.Yahoo)
	if err != nil {
		return nil, err
	}
	return m.batch(ctx, symbols, p.CryptoQuote), nil
}

// batch runs fn once per distinct key on a bounded pool. A key whose call
// yields nothing maps to "".
func (m *Manager) batch(ctx context.Context, keys []string, fn func(context.Context, string) string) map[string]string {
	p := pool.NewWithResults[keyed]().WithMaxGoroutines(m.workers)
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		p.Go(func() keyed {
			return keyed{key: k, value: fn(ctx, k)}
		})
	}

	out := make(map[string]string, len(seen))
	for _, r := range p.Wait() {
		out[r.key] = r.value
	}
	m.log.Debug("batch complete", zap.Int("items", len(out)), zap.Int("workers", m.workers))
	return out
}

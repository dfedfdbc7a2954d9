package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gaurav-prasanna/finpipe/service"
	"github.com/gaurav-prasanna/finpipe/sources"
	"github.com/gaurav-prasanna/finpipe/sources/fnguide"
	"github.com/gaurav-prasanna/finpipe/sources/interest"
	"github.com/gaurav-prasanna/finpipe/sources/market"
	"github.com/gaurav-prasanna/finpipe/sources/materials"
	"github.com/gaurav-prasanna/finpipe/sources/yahoo"
)

// operation is one named read the CLI exposes. Names are "<source>.<kind>".
type operation struct {
	source sources.ID
	kind   string
	param  string // name of the required parameter, "" when none
	run    func(ctx context.Context, m *service.Manager, param string) (string, error)
}

func (o operation) name() string { return string(o.source) + "." + o.kind }

// catalog maps operation names to manager calls. It is the only place
// strings are turned into typed report kinds.
func catalog() map[string]operation {
	ops := map[string]operation{}
	add := func(o operation) { ops[o.name()] = o }

	for _, r := range fnguide.Reports() {
		add(operation{source: sources.FnGuide, kind: r.String(), param: "ticker",
			run: func(ctx context.Context, m *service.Manager, p string) (string, error) {
				return m.CompanyReport(ctx, r, p)
			}})
	}
	for _, pg := range market.Pages() {
		add(operation{source: sources.Market, kind: pg.String(),
			run: func(ctx context.Context, m *service.Manager, _ string) (string, error) {
				return m.MarketPage(ctx, pg)
			}})
	}
	for _, t := range interest.Tables() {
		add(operation{source: sources.Interest, kind: t.String(),
			run: func(ctx context.Context, m *service.Manager, _ string) (string, error) {
				return m.InterestTable(ctx, t)
			}})
	}
	add(operation{source: sources.Exchange, kind: "domestic",
		run: func(ctx context.Context, m *service.Manager, _ string) (string, error) {
			return m.DomesticExchange(ctx)
		}})
	add(operation{source: sources.Exchange, kind: "world",
		run: func(ctx context.Context, m *service.Manager, _ string) (string, error) {
			return m.WorldExchange(ctx)
		}})
	for _, b := range materials.Boards() {
		add(operation{source: sources.Materials, kind: b.String(),
			run: func(ctx context.Context, m *service.Manager, _ string) (string, error) {
				return m.MaterialsBoard(ctx, b)
			}})
	}
	for kind, b := range map[string]materials.Board{"materials_tab": materials.Energy, "gold_tab": materials.Oil} {
		add(operation{source: sources.Materials, kind: kind,
			run: func(ctx context.Context, m *service.Manager, _ string) (string, error) {
				boards, err := m.MaterialsTab(ctx, b)
				if err != nil {
					return "", err
				}
				return keyedMarkdown(boards), nil
			}})
	}
	add(operation{source: sources.Crypto, kind: "overview",
		run: func(ctx context.Context, m *service.Manager, _ string) (string, error) {
			return m.CryptoOverview(ctx)
		}})
	add(operation{source: sources.Quote, kind: "domestic", param: "code",
		run: func(ctx context.Context, m *service.Manager, p string) (string, error) {
			return m.DomesticQuote(ctx, p)
		}})
	for _, b := range yahoo.Boards() {
		add(operation{source: sources.Yahoo, kind: b.String(),
			run: func(ctx context.Context, m *service.Manager, _ string) (string, error) {
				return m.GlobalBoard(ctx, b)
			}})
	}
	add(operation{source: sources.Yahoo, kind: "stock_quote", param: "symbol",
		run: func(ctx context.Context, m *service.Manager, p string) (string, error) {
			return m.StockQuote(ctx, p)
		}})
	add(operation{source: sources.Yahoo, kind: "crypto_quote", param: "symbol",
		run: func(ctx context.Context, m *service.Manager, p string) (string, error) {
			return m.CryptoQuote(ctx, p)
		}})
	add(operation{source: sources.MarketWatch, kind: "disclosures", param: "symbol",
		run: func(ctx context.Context, m *service.Manager, p string) (string, error) {
			return m.OverseasDisclosures(ctx, p)
		}})
	return ops
}

// lookupOperation finds name in the catalog and checks the parameter count.
func lookupOperation(name string, args []string) (operation, string, error) {
	op, ok := catalog()[name]
	if !ok {
		return operation{}, "", fmt.Errorf("unknown operation %q (see `finpipe sources`)", name)
	}
	switch {
	case op.param != "" && len(args) == 0:
		return operation{}, "", fmt.Errorf("operation %s requires a %s", name, op.param)
	case op.param == "" && len(args) > 0:
		return operation{}, "", fmt.Errorf("operation %s takes no parameter", name)
	case op.param != "":
		return op, strings.TrimSpace(args[0]), nil
	}
	return op, "", nil
}

// operationNames returns every catalog name in sorted order.
func operationNames() []string {
	ops := catalog()
	names := make([]string, 0, len(ops))
	for n := range ops {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

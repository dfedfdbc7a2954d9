package cmd

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/sources"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <domestic|overseas|all|yahoo|crypto> <query>",
	Short: "Resolve a name or code to tickers",
	Long: `Search resolves free text to security codes.

  domestic  Naver Finance search, domestic listings
  overseas  Naver Finance search, overseas listings
  all       both passes over one Naver Finance search page
  yahoo     Yahoo Finance lookup
  crypto    CoinGecko coin search

Examples:
  finpipe search domestic 삼성전자
  finpipe search all 005930 --format json
  finpipe search crypto bitcoin`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	kind := args[0]
	query := strings.Join(args[1:], " ")
	ctx := cmd.Context()
	m := app.manager

	var (
		matches []core.TickerMatch
		err     error
		source  = sources.Ticker
	)
	switch kind {
	case "domestic":
		matches, err = m.SearchDomesticTicker(ctx, query)
	case "overseas":
		matches, err = m.SearchOverseasTicker(ctx, query)
	case "all":
		res, serr := m.SearchTicker(ctx, query)
		if serr != nil {
			return serr
		}
		matches = append(res.Domestic, res.Overseas...)
	case "yahoo":
		source = sources.Yahoo
		matches, err = m.LookupOverseasTicker(ctx, query)
	case "crypto":
		coins, cerr := m.SearchCrypto(ctx, query)
		if cerr != nil {
			return cerr
		}
		md := ""
		if len(coins) > 0 {
			md = recordsMarkdown(coins)
		}
		return emit(string(sources.Crypto), "search", query, md, coins)
	default:
		return fmt.Errorf("unknown search kind %q: use domestic, overseas, all, yahoo or crypto", kind)
	}
	if err != nil {
		return err
	}
	return emit(string(source), "search_"+kind, query, matchesMarkdown(matches), matches)
}

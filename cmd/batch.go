package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gaurav-prasanna/finpipe/service"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <domestic-quotes|stock-quotes|crypto-quotes> <symbol>...",
	Short: "Fetch many quotes concurrently",
	Long: `Batch fetches one quote per symbol on a bounded worker pool (config
key "workers"). Results are printed per symbol.

Examples:
  finpipe batch domestic-quotes 005930 000660
  finpipe batch stock-quotes AAPL MSFT NVDA --format json
  finpipe batch crypto-quotes BTC ETH`,
	Args: cobra.MinimumNArgs(2),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

// batchFunc is a Manager batch method expression.
type batchFunc func(m *service.Manager, ctx context.Context, keys []string) (map[string]string, error)

var batches = map[string]batchFunc{
	"domestic-quotes": (*service.Manager).DomesticQuotes,
	"stock-quotes":    (*service.Manager).StockQuotes,
	"crypto-quotes":   (*service.Manager).CryptoQuotes,
}

func runBatch(cmd *cobra.Command, args []string) error {
	fn, ok := batches[args[0]]
	if !ok {
		return fmt.Errorf("unknown batch %q: use domestic-quotes, stock-quotes or crypto-quotes", args[0])
	}
	keys := args[1:]
	results, err := fn(app.manager, cmd.Context(), keys)
	if err != nil {
		return err
	}
	return emit("batch", strings.ReplaceAll(args[0], "-", "_"), "", keyedMarkdown(results), results)
}

func batchNames() []string {
	names := make([]string, 0, len(batches))
	for n := range batches {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

package cmd

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <operation> [param]",
	Short: "Run one read operation",
	Long: `Get runs one named operation and prints its markdown.

Examples:
  finpipe get market.indices
  finpipe get fnguide.snapshot 005930 --format json
  finpipe get exchange.world --format pdf --output_dir ./out
  finpipe get yahoo.stock_quote AAPL`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	op, param, err := lookupOperation(args[0], args[1:])
	if err != nil {
		return err
	}
	md, err := op.run(cmd.Context(), app.manager, param)
	if err != nil {
		return err
	}
	return emit(string(op.source), op.kind, param, md, nil)
}

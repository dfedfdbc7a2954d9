package cmd

import (
	"strconv"

	"github.com/gaurav-prasanna/finpipe/sources"
	"github.com/spf13/cobra"
)

var (
	flagLimit    int
	flagCurrency string
)

var topCryptosCmd = &cobra.Command{
	Use:   "top-cryptos",
	Short: "List the largest coins by market cap",
	Long: `Top-cryptos reads CoinGecko's market list.

Examples:
  finpipe top-cryptos
  finpipe top-cryptos --limit 50 --currency usd --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		coins, err := app.manager.TopCryptos(cmd.Context(), flagLimit, flagCurrency)
		if err != nil {
			return err
		}
		md := ""
		if len(coins) > 0 {
			md = recordsMarkdown(coins)
		}
		return emit(string(sources.Crypto), "top", flagCurrency+"_"+strconv.Itoa(flagLimit), md, coins)
	},
}

func init() {
	topCryptosCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of coins")
	topCryptosCmd.Flags().StringVar(&flagCurrency, "currency", "krw", "Quote currency")
	rootCmd.AddCommand(topCryptosCmd)
}

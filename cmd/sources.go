package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List sources and operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Sources:")
		for _, id := range app.manager.Sources() {
			fmt.Fprintf(out, "  %s\n", id)
		}
		fmt.Fprintln(out, "\nOperations (finpipe get <operation> [param]):")
		ops := catalog()
		for _, name := range operationNames() {
			op := ops[name]
			if op.param != "" {
				fmt.Fprintf(out, "  %s <%s>\n", name, op.param)
				continue
			}
			fmt.Fprintf(out, "  %s\n", name)
		}
		fmt.Fprintf(out, "\nBatches (finpipe batch <name> <symbol>...):\n  %s\n", strings.Join(batchNames(), "\n  "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

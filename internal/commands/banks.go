package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/privatekonomi/statements/internal/banks"
)

func newBanksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List supported banks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "BANK\tCOLOR")
			for _, d := range banks.Supported() {
				fmt.Fprintf(tw, "%s\t%s\n", d.Name, d.Color)
			}
			return tw.Flush()
		},
	}
}

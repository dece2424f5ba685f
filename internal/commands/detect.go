package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDetectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>",
		Short: "Print which bank a statement export comes from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading statement: %w", err)
			}
			p, err := a.importer().Detect(data)
			if err != nil {
				return explain(err, "")
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Bank())
			return nil
		},
	}
}

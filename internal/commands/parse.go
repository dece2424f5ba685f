package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/privatekonomi/statements/internal/export"
	"github.com/privatekonomi/statements/internal/model"
)

type outputFlags struct {
	format string
	out    string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: table, csv, json, yaml or xlsx")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write output to this file instead of stdout")
}

// write encodes txns to --out or stdout.
func (o *outputFlags) write(cmd *cobra.Command, a *app, txns []model.Transaction) (err error) {
	name := o.format
	if name == "" {
		name = a.cfg.Output.Format
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}
	if format == export.XLSX && o.out == "" {
		return fmt.Errorf("xlsx output needs --out")
	}

	var w io.Writer = cmd.OutOrStdout()
	if o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output: %w", cerr)
			}
		}()
		w = f
	}
	return export.Write(w, format, txns, a.cfg.Output.Currency)
}

func newParseCommand(a *app) *cobra.Command {
	var bank string
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a statement export into transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening statement: %w", err)
			}
			defer f.Close()

			declared := a.bank(bank)
			txns, err := a.importer().Import(cmd.Context(), f, declared)
			if err != nil {
				return explain(err, declared)
			}
			return out.write(cmd, a, txns)
		},
	}

	cmd.Flags().StringVarP(&bank, "bank", "b", "", "bank that produced the file; detected when empty")
	out.register(cmd)

	return cmd
}

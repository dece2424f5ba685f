package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/privatekonomi/statements/internal/importer"
	"github.com/privatekonomi/statements/internal/inbox"
	"github.com/privatekonomi/statements/internal/model"
)

func newImportCommand(a *app) *cobra.Command {
	var bank string
	var keep bool
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "import [directory]",
		Short: "Parse every statement waiting in an inbox directory",
		Long: "Parses each .csv file in the directory. Imported files are moved to processed/ " +
			"and every attempt is appended to processed/import-log.csv. Files that fail stay put.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := defaultInboxDir
			if len(args) > 0 {
				dir = args[0]
			}
			txns, err := runImport(cmd, a, dir, a.bank(bank), !keep)
			if err != nil {
				return err
			}
			if out.out == "" && out.format == "" {
				return nil
			}
			return out.write(cmd, a, txns)
		},
	}

	cmd.Flags().StringVarP(&bank, "bank", "b", "", "bank that produced every file; detected per file when empty")
	cmd.Flags().BoolVar(&keep, "keep", false, "leave imported files in place")
	out.register(cmd)

	return cmd
}

func runImport(cmd *cobra.Command, a *app, dir, bank string, move bool) ([]model.Transaction, error) {
	files, err := inbox.Scan(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No statements in %s\n", dir)
		return nil, nil
	}

	im := a.importer()
	var all []model.Transaction
	var entries []inbox.Entry
	failed := 0
	for _, f := range files {
		entry := inbox.Entry{Timestamp: time.Now().UTC(), File: f.Name}
		detected, txns, err := importFile(cmd.Context(), im, f.Path, bank)
		entry.Bank = detected
		if err != nil {
			failed++
			entry.Status = inbox.Failed
			entry.Error = explain(err, bank).Error()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", f.Name, entry.Error)
			entries = append(entries, entry)
			continue
		}

		if move {
			if _, err := inbox.MarkProcessed(dir, f.Name); err != nil {
				failed++
				entry.Status = inbox.Failed
				entry.Error = err.Error()
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", f.Name, entry.Error)
				entries = append(entries, entry)
				continue
			}
		}
		entry.Status = inbox.Imported
		entry.Transactions = len(txns)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %d transactions\n", f.Name, detected, len(txns))
		entries = append(entries, entry)
		all = append(all, txns...)
	}

	if err := inbox.AppendLog(dir, entries); err != nil {
		return nil, err
	}
	if failed > 0 {
		return all, fmt.Errorf("%d of %d statements failed", failed, len(files))
	}
	return all, nil
}

// importFile parses one file and reports the bank that handled it.
func importFile(ctx context.Context, im *importer.Importer, path, bank string) (string, []model.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading statement: %w", err)
	}
	if bank == "" {
		p, err := im.Detect(data)
		if err != nil {
			return "", nil, err
		}
		bank = p.Bank()
	}
	txns, err := im.Import(ctx, bytes.NewReader(data), bank)
	return bank, txns, err
}

package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/privatekonomi/statements/internal/banks"
	"github.com/privatekonomi/statements/internal/config"
	"github.com/privatekonomi/statements/internal/importer"
	"github.com/privatekonomi/statements/internal/inbox"
)

// defaultInboxDir is where import looks for statements when no directory is given.
const defaultInboxDir = "inbox"

func newInitCommand() *cobra.Command {
	var bank string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a statements.yaml and an inbox directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, bank); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized statements workspace at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "", "default bank for files without a detectable header")

	return cmd
}

func runInit(dir, bank string) error {
	cfg := config.Default()
	if bank != "" {
		d, ok := banks.ByName(bank)
		if !ok {
			return explain(fmt.Errorf("%w: %q", importer.ErrUnsupportedBank, bank), bank)
		}
		cfg.Import.DefaultBank = d.Name
	}

	if err := os.MkdirAll(filepath.Join(dir, defaultInboxDir, inbox.ProcessedDir), 0o755); err != nil {
		return fmt.Errorf("creating inbox: %w", err)
	}

	path := filepath.Join(dir, config.DefaultPath)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists: %w", path, fs.ErrExist)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, defaultInboxDir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}
	return nil
}

package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/privatekonomi/statements/internal/banks"
	"github.com/privatekonomi/statements/internal/buildinfo"
	"github.com/privatekonomi/statements/internal/config"
	"github.com/privatekonomi/statements/internal/importer"
)

// app carries state resolved once per invocation and shared by subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "statements",
		Short:   "Import Swedish bank statement exports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newBanksCommand())
	rootCmd.AddCommand(newDetectCommand(a))
	rootCmd.AddCommand(newParseCommand(a))
	rootCmd.AddCommand(newImportCommand(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Resolve(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	return nil
}

func (a *app) importer() *importer.Importer {
	return importer.New(importer.DefaultRegistry(),
		importer.WithLogger(a.logger),
		importer.WithSampleSize(a.cfg.Import.SampleBytes),
	)
}

// bank returns the declared bank: the flag if set, else the configured default.
func (a *app) bank(flag string) string {
	if strings.TrimSpace(flag) != "" {
		return flag
	}
	return a.cfg.Import.DefaultBank
}

// explain adds hints to errors a user can act on.
func explain(err error, bank string) error {
	switch {
	case errors.Is(err, importer.ErrUnsupportedBank):
		if s := banks.Suggest(bank); len(s) > 0 {
			return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(s, ", "))
		}
		return fmt.Errorf("%w (supported: %s)", err, strings.Join(banks.Names(), ", "))
	case errors.Is(err, importer.ErrUnrecognizedFormat):
		return fmt.Errorf("%w (pass --bank to choose a parser)", err)
	default:
		return err
	}
}

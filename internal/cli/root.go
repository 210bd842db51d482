// Package cli provides the command-line interface for psyki
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AbdouB/psyki/internal/config"
	"github.com/AbdouB/psyki/internal/db"
	"github.com/AbdouB/psyki/internal/models"
)

// Version is set at build time
var Version = "dev"

var errHistoryDisabled = errors.New("run history is disabled (history.enabled: false)")

// app holds the state shared by all commands of one invocation
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	database *db.DB

	configPath string
	outputText bool // --text flag for human-readable output (default is JSON)
	verbose    bool
}

func newApp() *app {
	return &app{
		cfg:    config.DefaultConfig(),
		logger: zap.NewNop(),
	}
}

// rootCmd builds the base command with all subcommands attached
func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "psyki",
		Short: "Trial generation and d-prime analysis for the PsyKi study",
		Long: `psyki - tooling for the Optimal Weighting (PsyKi) experiment

Generate trial configuration files for the experiment runner and compare
team sensitivity from participant results with the literature value.

Quick Start:
  psyki generate                     # Write lib/dataMain.json and lib/dataTest.json
  psyki generate --seed 42           # Reproducible trial files
  psyki extract results.json         # Median dPrimeTeam at index 199 vs 3.8
  psyki history                      # Show previous runs`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip setup for help commands
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}

	cmd.PersistentFlags().BoolVar(&a.outputText, "text", false, "Human-readable text output (default is JSON)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "Path to the YAML config file")

	cmd.AddCommand(
		a.generateCmd(),
		a.extractCmd(),
		a.historyCmd(),
		versionCmd(),
	)
	return cmd
}

// Execute runs the CLI
func Execute() error {
	a := newApp()
	cmd := a.rootCmd()
	defer a.teardown()

	if err := cmd.Execute(); err != nil {
		a.outputError(cmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// setup loads config, builds the logger and opens the history database
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.Logging.Level, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	if !cfg.History.Enabled {
		return nil
	}
	database, err := db.Open(cfg.History.DatabasePath)
	if err != nil {
		if cmd.Name() == "history" {
			return fmt.Errorf("failed to open database: %w", err)
		}
		a.logger.Warn("Run history unavailable", zap.Error(err))
		return nil
	}
	a.database = database
	a.logger.Debug("Opened run history", zap.String("path", database.Path()))
	return nil
}

func (a *app) teardown() {
	if a.database != nil {
		a.database.Close()
		a.database = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = lvl
	}
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

// recordRun stores a run in the history database when it is available
func (a *app) recordRun(kind models.RunKind, params, summary map[string]any) {
	if a.database == nil {
		return
	}
	run := models.NewRun(kind, params, summary)
	if err := db.NewRunRepository(a.database).Create(run); err != nil {
		a.logger.Warn("Failed to record run", zap.String("kind", string(kind)), zap.Error(err))
		return
	}
	a.logger.Debug("Recorded run", zap.String("id", run.ID), zap.String("kind", string(kind)))
}

// outputResult outputs the result as indented JSON
func outputResult(w io.Writer, result interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError outputs an error in the appropriate format
func (a *app) outputError(w io.Writer, err error) {
	if a.outputText {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	result := map[string]interface{}{
		"status": "error",
		"error":  err.Error(),
	}
	json.NewEncoder(w).Encode(result)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "psyki version %s\n", Version)
		},
	}
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AbdouB/psyki/internal/models"
	"github.com/AbdouB/psyki/internal/trials"
)

// GenerateResult is the output of the generate command
type GenerateResult struct {
	Status       string   `json:"status"`
	Files        []string `json:"files"`
	Seed         uint64   `json:"seed"`
	MainTrials   int      `json:"main_trials"`
	TestTrials   int      `json:"test_trials"`
	LowAccTrials int      `json:"low_acc_trials"`
	BreakTrials  []int    `json:"break_trials"`
}

func (a *app) generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate trial configuration files",
		Long: `Generate main phase and test phase trial files for the experiment runner.

Main phase trials start with a high accuracy training block, followed by a
shuffled mix of high and low AI accuracy trials. Every 50th trial except the
last one is a neutral break trial. Stimulus colors are 48 (orange) and 52
(blue); break trials use 0.

Examples:
  psyki generate
  psyki generate --out ../lib --seed 42
  psyki generate --entries 100 --low-count 7 --test-entries 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mainCfg := a.cfg.Generator.Main
			testCfg := a.cfg.TestPhase
			outDir := a.cfg.Generator.OutputDir
			seed := a.cfg.Generator.Seed

			flags := cmd.Flags()
			if flags.Changed("out") {
				outDir, _ = flags.GetString("out")
			}
			if flags.Changed("seed") {
				seed, _ = flags.GetUint64("seed")
			}
			if flags.Changed("entries") {
				mainCfg.NumEntries, _ = flags.GetInt("entries")
			}
			if flags.Changed("high-acc") {
				mainCfg.HighAcc, _ = flags.GetFloat64("high-acc")
			}
			if flags.Changed("low-acc") {
				mainCfg.LowAcc, _ = flags.GetFloat64("low-acc")
			}
			if flags.Changed("low-count") {
				mainCfg.LowAccCount, _ = flags.GetInt("low-count")
			}
			if flags.Changed("training") {
				mainCfg.TrainingPrefix, _ = flags.GetInt("training")
			}
			if flags.Changed("divergence") {
				mainCfg.DivergenceValues, _ = flags.GetFloat64Slice("divergence")
			}
			if flags.Changed("test-entries") {
				testCfg.NumEntries, _ = flags.GetInt("test-entries")
			}

			// Resolve the clock seed here so it can be reported and replayed
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}

			result, err := a.runGenerate(outDir, seed, mainCfg, testCfg)
			if err != nil {
				return err
			}

			if a.outputText {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Generated %d main trials (%d low accuracy, breaks at %v) and %d test trials\n",
					result.MainTrials, result.LowAccTrials, result.BreakTrials, result.TestTrials)
				for _, f := range result.Files {
					fmt.Fprintf(out, "  wrote %s\n", f)
				}
				fmt.Fprintf(out, "Seed: %d\n", result.Seed)
				return nil
			}
			return outputResult(cmd.OutOrStdout(), result)
		},
	}

	defaults := a.cfg.Generator.Main
	cmd.Flags().String("out", a.cfg.Generator.OutputDir, "Output directory for the trial files")
	cmd.Flags().Uint64("seed", 0, "Random seed (0 = seed from the clock)")
	cmd.Flags().Int("entries", defaults.NumEntries, "Number of main phase trials")
	cmd.Flags().Float64("high-acc", defaults.HighAcc, "High AI accuracy")
	cmd.Flags().Float64("low-acc", defaults.LowAcc, "Low AI accuracy")
	cmd.Flags().Int("low-count", defaults.LowAccCount, "Number of low accuracy trials")
	cmd.Flags().Int("training", defaults.TrainingPrefix, "Number of leading high accuracy training trials")
	cmd.Flags().Float64Slice("divergence", nil, "Divergence values to draw from (e.g. -0.05,0.05)")
	cmd.Flags().Int("test-entries", a.cfg.TestPhase.NumEntries, "Number of test phase trials")

	return cmd
}

// runGenerate produces both trial sets and writes them to outDir
func (a *app) runGenerate(outDir string, seed uint64, mainCfg trials.MainConfig, testCfg trials.TestConfig) (*GenerateResult, error) {
	gen := trials.NewSeededGenerator(seed)

	mainTrials, err := gen.MainTrials(mainCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate main trials: %w", err)
	}
	testTrials, err := gen.TestTrials(testCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate test trials: %w", err)
	}

	files, err := trials.WriteFiles(outDir, mainTrials, testTrials)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		Status:      "ok",
		Files:       files,
		Seed:        seed,
		MainTrials:  len(mainTrials),
		TestTrials:  len(testTrials),
		BreakTrials: []int{},
	}
	for _, t := range mainTrials {
		if t.IsBreak() {
			result.BreakTrials = append(result.BreakTrials, t.Index)
		}
		if t.AIAccuracy == mainCfg.LowAcc && mainCfg.LowAcc != mainCfg.HighAcc {
			result.LowAccTrials++
		}
	}

	a.logger.Info("Generated trial files",
		zap.String("dir", outDir),
		zap.Uint64("seed", seed),
		zap.Int("main", result.MainTrials),
		zap.Int("test", result.TestTrials))

	a.recordRun(models.RunKindGenerate,
		map[string]any{
			"output_dir":   outDir,
			"seed":         seed,
			"main":         mainCfg,
			"test_entries": testCfg.NumEntries,
		},
		map[string]any{
			"files":          files,
			"main_trials":    result.MainTrials,
			"test_trials":    result.TestTrials,
			"low_acc_trials": result.LowAccTrials,
		},
	)

	return result, nil
}

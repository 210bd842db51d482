package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AbdouB/psyki/internal/chart"
	"github.com/AbdouB/psyki/internal/models"
	"github.com/AbdouB/psyki/internal/results"
	"github.com/AbdouB/psyki/internal/search"
	"github.com/AbdouB/psyki/internal/stats"
)

const extractUsage = "Usage: psyki extract <path_to_json_file>"

// ExtractOptions selects which records and field are extracted
type ExtractOptions struct {
	Index     int
	Field     string
	Reference float64
}

// ExtractResult is the output of the extract command
type ExtractResult struct {
	Status      string              `json:"status"` // ok, no_matches
	Path        string              `json:"path"`
	Index       int                 `json:"index"`
	Field       string              `json:"field"`
	Values      []float64           `json:"values"`
	Summary     *stats.Summary      `json:"summary,omitempty"`
	Reference   float64             `json:"reference"`
	Chart       *chart.Request      `json:"chart,omitempty"`
	Suggestions []search.Suggestion `json:"suggestions,omitempty"`
	Message     string              `json:"message"`
}

func (a *app) extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [path]",
		Short: "Compare median team d-prime with the reference value",
		Long: `Extract dPrimeTeam from every record with index 199 anywhere in a
participant result file, compute the median and compare it with the
literature reference value (3.8).

Examples:
  psyki extract results.json
  psyki extract results.json --text
  psyki extract results.json --field dPrimeHuman --reference 2.1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, extractUsage)
				return nil
			}

			opts := ExtractOptions{
				Index:     a.cfg.Extractor.Index,
				Field:     a.cfg.Extractor.Field,
				Reference: a.cfg.Extractor.Reference,
			}
			flags := cmd.Flags()
			if flags.Changed("index") {
				opts.Index, _ = flags.GetInt("index")
			}
			if flags.Changed("field") {
				opts.Field, _ = flags.GetString("field")
			}
			if flags.Changed("reference") {
				opts.Reference, _ = flags.GetFloat64("reference")
			}
			showChart := a.cfg.Extractor.Chart
			if noChart, _ := flags.GetBool("no-chart"); noChart {
				showChart = false
			}

			result, err := a.runExtract(args[0], opts)
			if err != nil {
				return err
			}

			if !a.outputText {
				return outputResult(out, result)
			}
			return printExtractText(out, result, showChart)
		},
	}

	cmd.Flags().Int("index", a.cfg.Extractor.Index, "Trial index whose records are extracted")
	cmd.Flags().String("field", a.cfg.Extractor.Field, "Numeric field to extract")
	cmd.Flags().Float64("reference", a.cfg.Extractor.Reference, "Reference value from the literature")
	cmd.Flags().Bool("no-chart", false, "Do not render the comparison chart (text mode)")

	return cmd
}

// runExtract loads path and computes the comparison for opts
func (a *app) runExtract(path string, opts ExtractOptions) (*ExtractResult, error) {
	doc, err := results.Load(path)
	if err != nil {
		return nil, err
	}

	values := results.FindMatchingValues(doc, results.IndexEquals(float64(opts.Index), opts.Field), opts.Field)
	a.logger.Debug("Extracted values",
		zap.String("path", path),
		zap.Int("index", opts.Index),
		zap.String("field", opts.Field),
		zap.Int("count", len(values)))

	result := &ExtractResult{
		Path:      path,
		Index:     opts.Index,
		Field:     opts.Field,
		Values:    values,
		Reference: opts.Reference,
	}

	if len(values) == 0 {
		result.Status = "no_matches"
		result.Message = fmt.Sprintf("No %s values found where index == %d.", opts.Field, opts.Index)
		result.Suggestions = search.FuzzySearch(opts.Field, otherKeys(doc, opts.Field), 0.3, 3)
		a.recordRun(models.RunKindExtract, extractParams(path, opts), map[string]any{"count": 0})
		return result, nil
	}

	summary, err := stats.Summarize(values)
	if err != nil {
		return nil, err
	}
	req := chart.Compare(chart.Subject{Field: opts.Field, Index: opts.Index}, summary.Median, opts.Reference)

	result.Status = "ok"
	result.Summary = &summary
	result.Chart = &req
	result.Message = fmt.Sprintf("Median of %s (index %d): %.4f", opts.Field, opts.Index, summary.Median)

	a.logger.Info("Computed median",
		zap.String("field", opts.Field),
		zap.Float64("median", summary.Median),
		zap.Float64("reference", opts.Reference))

	a.recordRun(models.RunKindExtract, extractParams(path, opts), map[string]any{
		"count":     summary.Count,
		"median":    summary.Median,
		"mean":      summary.Mean,
		"reference": opts.Reference,
	})
	return result, nil
}

func extractParams(path string, opts ExtractOptions) map[string]any {
	return map[string]any{
		"path":      path,
		"index":     opts.Index,
		"field":     opts.Field,
		"reference": opts.Reference,
	}
}

// otherKeys lists the document's keys except the one that was not found
// with a matching index
func otherKeys(doc results.Node, field string) []string {
	var keys []string
	for _, k := range results.Keys(doc) {
		if k != field && k != results.DefaultIndexField {
			keys = append(keys, k)
		}
	}
	return keys
}

func printExtractText(w io.Writer, result *ExtractResult, showChart bool) error {
	fmt.Fprintln(w, result.Message)

	if result.Status != "ok" {
		if len(result.Suggestions) > 0 {
			fmt.Fprint(w, "Did you mean:")
			for _, s := range result.Suggestions {
				fmt.Fprintf(w, " %s", s.Name)
			}
			fmt.Fprintln(w)
		}
		return nil
	}

	if !showChart || result.Chart == nil {
		return nil
	}
	fmt.Fprintln(w)
	return chart.NewTerminalRenderer().Render(w, *result.Chart)
}

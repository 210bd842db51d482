package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AbdouB/psyki/internal/db"
	"github.com/AbdouB/psyki/internal/models"
)

func (a *app) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previous generate and extract runs",
		Long: `List recorded runs, newest first.

Examples:
  psyki history
  psyki history --kind extract -n 5 --text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.database == nil {
				return errHistoryDisabled
			}
			limit, _ := cmd.Flags().GetInt("limit")
			kind, _ := cmd.Flags().GetString("kind")

			switch models.RunKind(kind) {
			case "", models.RunKindGenerate, models.RunKindExtract:
			default:
				return fmt.Errorf("unknown run kind %q (use generate or extract)", kind)
			}

			runs, err := db.NewRunRepository(a.database).List(models.RunKind(kind), limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}
			if runs == nil {
				runs = []*models.Run{}
			}

			out := cmd.OutOrStdout()
			if !a.outputText {
				return outputResult(out, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %-8s  %s  %s\n",
					r.CreatedAt().Format("2006-01-02 15:04:05"), r.Kind, r.ID[:8], formatSummary(r.Summary))
			}
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs")
	cmd.Flags().String("kind", "", "Only show runs of this kind (generate, extract)")

	return cmd
}

func formatSummary(summary map[string]any) string {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, summary[k]))
	}
	return strings.Join(parts, " ")
}

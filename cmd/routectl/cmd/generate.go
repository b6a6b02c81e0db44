// Package cmd - generate command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fashionforward/psp-router/internal/catalog"
	"github.com/fashionforward/psp-router/internal/dataset"
	"github.com/fashionforward/psp-router/internal/engine"
	"github.com/fashionforward/psp-router/internal/model"
	"github.com/fashionforward/psp-router/internal/service"
	"github.com/fashionforward/psp-router/internal/simulator"
)

var (
	generateCount    int
	generateStrategy string
	generateOutDir   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the test dataset and performance report files",
	Long: `Generate the seeded transaction dataset, run the no-retry vs
smart-retry comparison, and write both artifacts:

  <out>/test_transactions.json
  <out>/performance_report.json

The dataset is seeded, so repeated runs produce identical files.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&generateCount, "count", "c", dataset.DefaultSize, "number of transactions to generate")
	generateCmd.Flags().StringVarP(&generateStrategy, "strategy", "s", string(model.DefaultStrategy), "routing strategy for the smart-retry scenario")
	generateCmd.Flags().StringVarP(&generateOutDir, "out", "o", "output", "output directory")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateCount < 1 {
		return fmt.Errorf("count must be at least 1, got %d", generateCount)
	}

	strategy, err := model.ParseStrategy(generateStrategy)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(generateOutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	transactions := dataset.Generate(generateCount)
	txPath := filepath.Join(generateOutDir, "test_transactions.json")
	if err := writeJSON(txPath, transactions); err != nil {
		return err
	}
	log.Info().Str("path", txPath).Int("transactions", len(transactions)).Msg("wrote dataset")

	eng := engine.New(catalog.New(), simulator.New())
	reportSvc := service.NewReportService(eng)
	report, err := reportSvc.Generate(context.Background(), transactions, strategy)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	reportPath := filepath.Join(generateOutDir, "performance_report.json")
	if err := writeJSON(reportPath, report); err != nil {
		return err
	}
	log.Info().Str("path", reportPath).Msg("wrote performance report")

	printSummary(cmd, report)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func printSummary(cmd *cobra.Command, report *model.PerformanceReport) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "=== PERFORMANCE REPORT SUMMARY ===")
	fmt.Fprintf(out, "Total Transactions: %d\n", report.TotalTransactions)
	fmt.Fprintf(out, "Strategy:           %s\n\n", report.Strategy)

	fmt.Fprintln(out, "--- No Retry (baseline) ---")
	printScenario(cmd, report.NoRetry)
	fmt.Fprintln(out, "--- Smart Retry ---")
	printScenario(cmd, report.SmartRetry)

	fmt.Fprintln(out, "--- Improvement ---")
	fmt.Fprintf(out, "  Rate Lift:         +%.1f percentage points\n", report.Improvement.RateLiftPercentage)
	fmt.Fprintf(out, "  Extra Approvals:   %d transactions\n", report.Improvement.AdditionalApprovals)
	fmt.Fprintf(out, "  Revenue Recovered: $%.2f\n\n", report.Improvement.EstimatedRevenueRecovered)

	fmt.Fprintln(out, "--- By Country ---")
	for _, country := range sortedKeys(report.ByCountry) {
		m := report.ByCountry[country]
		fmt.Fprintf(out, "  %s: %.1f%% -> %.1f%% (+%.1fpp, %d txns)\n",
			country, m.NoRetryRate, m.SmartRetryRate, m.Improvement, m.TotalTransactions)
	}

	fmt.Fprintln(out, "--- By Provider ---")
	for _, name := range sortedKeys(report.ByProvider) {
		m := report.ByProvider[name]
		fmt.Fprintf(out, "  %s: %d attempts, %d approved, %.1f%% rate, %.1fms avg latency\n",
			name, m.TotalAttempts, m.Approvals, m.ApprovalRate, m.AvgLatencyMS)
	}
}

func printScenario(cmd *cobra.Command, s model.ScenarioResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Approved:           %d\n", s.Approved)
	fmt.Fprintf(out, "  Declined:           %d\n", s.Declined)
	fmt.Fprintf(out, "  Authorization Rate: %.1f%%\n", s.AuthorizationRate)
	fmt.Fprintf(out, "  Avg Attempts:       %.2f\n", s.AvgAttempts)
	fmt.Fprintf(out, "  Avg Latency:        %.1fms\n\n", s.AvgLatencyMS)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dvloznov/rural-insights/internal/analysis"
	"github.com/dvloznov/rural-insights/internal/insights"
	"github.com/dvloznov/rural-insights/internal/logger"
)

var (
	analyzeJSON   bool
	analyzeEnrich bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <ledger.csv>",
	Short: "Analyze a ledger CSV file",
	Long: `Analyze reads a semicolon-delimited ledger export, normalizes the
outflow transactions and prints the spending analysis: totals, top
categories, monthly evolution, anomaly alerts and an executive summary.

With --enrich and a configured Gemini API key the analysis is augmented
with AI-generated insights; otherwise the rule-based insights are used.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full report as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeEnrich, "enrich", false, "enrich the analysis with AI insights")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	log := logger.NewWithLevel(cfg.LogLevel)

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var enricher analysis.Enricher
	if analyzeEnrich {
		if cfg.GeminiAPIKey == "" {
			log.Warn().Msg("No Gemini API key configured - using rule-based insights")
		} else {
			gen, err := insights.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
			if err != nil {
				return fmt.Errorf("creating Gemini client: %w", err)
			}
			gem := insights.NewEnricher(gen, cfg.EnrichMaxAttempts, cfg.EnrichTimeout, log)
			enricher = gem
		}
	}

	report, err := analysis.NewAnalyzer(enricher, log).Analyze(ctx, content)
	if err != nil {
		return err
	}

	if analyzeJSON {
		return printJSON(report)
	}

	printReport(report)
	return nil
}

func printReport(r *analysis.Report) {
	fmt.Printf("Período:    %s a %s\n", r.Period.Start, r.Period.End)
	fmt.Printf("Transações: %d\n", r.TransactionCount)
	fmt.Printf("Total:      R$ %.2f\n\n", r.TotalSpend)

	fmt.Println("Top categorias:")
	for i, c := range r.TopCategories {
		fmt.Printf("  %d. %-30s R$ %12.2f  (%.1f%%)\n", i+1, c.Name, c.Total, c.Percent)
	}

	if len(r.Alerts) > 0 {
		fmt.Println("\nAlertas:")
		for _, a := range r.Alerts {
			fmt.Printf("  [%s] %s: %s\n", a.Severity, a.Category, a.Message)
		}
	}

	fmt.Println("\n" + r.ExecutiveSummary)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dvloznov/rural-insights/internal/score"
)

var scoreInput string

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the rural financial health score",
	Long: `Score reads analysis aggregates (top categories, monthly evolution and
anomalies) from a JSON file, or stdin when --input is omitted, and prints
the 0-100 health score with its components and recommendations.`,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVarP(&scoreInput, "input", "i", "", "path to aggregates JSON (default: stdin)")
}

func runScore(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error
	if scoreInput != "" {
		raw, err = os.ReadFile(scoreInput)
		if err != nil {
			return fmt.Errorf("reading %s: %w", scoreInput, err)
		}
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	var in score.Input
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("parsing aggregates: %w", err)
	}

	return printJSON(score.NewCalculator().Calculate(in))
}

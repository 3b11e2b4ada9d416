package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dvloznov/rural-insights/internal/scenario"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the predefined simulation templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(map[string]any{
			"equipment": scenario.EquipmentTemplates,
			"hiring": map[string]any{
				"worker_clt":   scenario.CLTWorker,
				"worker_daily": scenario.DailyWorker,
			},
			"rates":       scenario.Rates(),
			"seasonality": scenario.Seasonality(),
		})
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

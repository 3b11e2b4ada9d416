package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dvloznov/rural-insights/internal/scenario"
)

var simReq scenario.Request

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a rural financial decision",
	Long: `Simulate projects a financial decision over a 12-month horizon with
rural seasonality. Supported types: equipment_purchase, hiring,
investment and custom.

Examples:
  rural simulate --type equipment_purchase --equipment tractor_used --flow 20000
  rural simulate --type hiring --positions 2
  rural simulate --type investment --investment grain_silo`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVar(&simReq.Type, "type", scenario.TypeEquipmentPurchase, "scenario type")
	simulateCmd.Flags().StringVar(&simReq.Equipment, "equipment", "", "equipment template for equipment_purchase")
	simulateCmd.Flags().StringVar(&simReq.Investment, "investment", "", "investment template for investment")
	simulateCmd.Flags().StringVar(&simReq.PaymentMethod, "payment", "", "payment method (cash, financing, consortium)")
	simulateCmd.Flags().StringVar(&simReq.EmploymentType, "employment", "", "employment type for hiring")
	simulateCmd.Flags().IntVar(&simReq.Positions, "positions", 0, "number of positions for hiring")
	simulateCmd.Flags().Float64Var(&simReq.CurrentMonthlyFlow, "flow", 0, "current monthly cash flow in R$")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	result, err := scenario.NewSimulator().Simulate(simReq)
	if err != nil {
		return err
	}
	return printJSON(result)
}

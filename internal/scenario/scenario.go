// Package scenario simulates rural financial decisions (equipment purchase,
// hiring, infrastructure investment) over a 12-month horizon, factoring in
// seasonality, financing cost and payback.
package scenario

import "fmt"

// Scenario types accepted by Simulate.
const (
	TypeEquipmentPurchase = "equipment_purchase"
	TypeHiring            = "hiring"
	TypeInvestment        = "investment"
	TypeCustom            = "custom"
)

// Payment methods for equipment purchases.
const (
	PaymentCash       = "cash"
	PaymentFinancing  = "financing"
	PaymentConsortium = "consortium"
)

// Market rates used across simulations (2024/2025 references, yearly).
const (
	ruralFinancingRate = 0.08
	consortiumAdminFee = 0.12
	financingMonths    = 60
	downPaymentShare   = 0.20
	// Average contemplation month for rural consortium groups.
	contemplationMonth = 30
)

// seasonality is the typical rural cash-flow multiplier per month (1-12).
var seasonality = [13]float64{
	0,
	0.7, // pós-safra
	0.8, // início plantio
	0.9, // plantio
	1.0, // desenvolvimento
	1.1, // tratos culturais
	1.3, // colheita
	1.4, // pico colheita
	1.2, // comercialização
	0.9, // entressafra
	0.8, // planejamento
	0.7, // preparação
	0.6, // final de ano
}

// SeasonalFactor returns the cash-flow multiplier for a month (1-12).
func SeasonalFactor(month int) float64 {
	if month < 1 || month > 12 {
		return 1
	}
	return seasonality[month]
}

// Rates exposes the market parameters for API consumers.
func Rates() map[string]float64 {
	return map[string]float64{
		"rural_financing":      ruralFinancingRate,
		"consortium_admin_fee": consortiumAdminFee,
		"financing_months":     financingMonths,
		"down_payment_share":   downPaymentShare,
		"contemplation_month":  contemplationMonth,
	}
}

// Seasonality exposes the monthly cash-flow multipliers, keyed by month.
func Seasonality() map[int]float64 {
	out := make(map[int]float64, 12)
	for m := 1; m <= 12; m++ {
		out[m] = seasonality[m]
	}
	return out
}

// Request configures one simulation. Zero values fall back to the defaults
// of each scenario type.
type Request struct {
	Type               string  `json:"type"`
	Equipment          string  `json:"equipment"`
	Investment         string  `json:"investment"`
	PaymentMethod      string  `json:"payment_method"`
	EmploymentType     string  `json:"employment_type"`
	Positions          int     `json:"positions"`
	CurrentMonthlyFlow float64 `json:"current_monthly_flow"`
}

func (r *Request) applyDefaults() {
	if r.CurrentMonthlyFlow == 0 {
		r.CurrentMonthlyFlow = 15000
	}
	if r.Positions == 0 {
		r.Positions = 1
	}
	if r.Equipment == "" {
		r.Equipment = "tractor_new"
	}
	if r.Investment == "" {
		r.Investment = "irrigation_system"
	}
}

// Projection is one month of a simulated cash-flow series.
type Projection struct {
	Month            int     `json:"month"`
	MonthlyFlow      float64 `json:"monthly_flow"`
	AccumulatedFlow  float64 `json:"accumulated_flow"`
	SeasonalFactor   float64 `json:"seasonal_factor,omitempty"`
	Payment          float64 `json:"payment,omitempty"`
	Contemplated     bool    `json:"contemplated,omitempty"`
	MonthlyCost      float64 `json:"monthly_cost,omitempty"`
	ProductivityGain float64 `json:"productivity_gain,omitempty"`
	DaysWorked       float64 `json:"days_worked,omitempty"`
}

// CustomResult is returned for scenario types without a dedicated model.
type CustomResult struct {
	Message string  `json:"message"`
	Config  Request `json:"config"`
}

// Simulator runs the scenario models against the static market parameters.
type Simulator struct{}

func NewSimulator() *Simulator {
	return &Simulator{}
}

// Simulate dispatches on the request type. The result is one of
// EquipmentResult, HiringResult, InvestmentResult or CustomResult.
func (s *Simulator) Simulate(req Request) (any, error) {
	req.applyDefaults()

	switch req.Type {
	case TypeEquipmentPurchase:
		return s.SimulateEquipment(req)
	case TypeHiring:
		return s.SimulateHiring(req), nil
	case TypeInvestment:
		return s.SimulateInvestment(req)
	case TypeCustom, "":
		return &CustomResult{Message: "Cenário customizado em desenvolvimento", Config: req}, nil
	default:
		return nil, fmt.Errorf("scenario: unknown type %q", req.Type)
	}
}

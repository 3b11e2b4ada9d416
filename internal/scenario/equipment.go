package scenario

import (
	"fmt"
	"math"
)

// PaymentScenario is the 12-month outcome of buying equipment under one
// payment method. PaybackMonths is nil when the method never pays back or
// the metric does not apply.
type PaymentScenario struct {
	Method             string       `json:"method"`
	TotalInvestment    float64      `json:"total_investment"`
	MonthlyNetBenefit  float64      `json:"monthly_net_benefit"`
	ImmediateImpact    float64      `json:"immediate_impact,omitempty"`
	DownPayment        float64      `json:"down_payment,omitempty"`
	FinancedAmount     float64      `json:"financed_amount,omitempty"`
	MonthlyPayment     float64      `json:"monthly_payment,omitempty"`
	TotalInterest      float64      `json:"total_interest,omitempty"`
	FinancingMonths    int          `json:"financing_months,omitempty"`
	TotalPaid          float64      `json:"total_paid,omitempty"`
	AdminFee           float64      `json:"admin_fee,omitempty"`
	ContemplationMonth int          `json:"contemplation_month,omitempty"`
	PaybackMonths      *float64     `json:"payback_months,omitempty"`
	FirstYearSavings   float64      `json:"first_year_savings,omitempty"`
	Projections        []Projection `json:"monthly_projections"`
	LiquidityImpact    string       `json:"liquidity_impact"`
}

// RankedOption is one scored payment alternative.
type RankedOption struct {
	Method string `json:"method"`
	Score  int    `json:"score"`
}

// PaymentRecommendation names the best payment method and why.
type PaymentRecommendation struct {
	BestOption   string         `json:"best_option"`
	Score        int            `json:"score"`
	Alternatives []RankedOption `json:"alternatives"`
	Reasoning    string         `json:"reasoning"`
}

// RiskAnalysis qualifies the liquidity risk of the recommended scenario.
type RiskAnalysis struct {
	Level            string   `json:"risk_level"`
	Factors          []string `json:"risk_factors"`
	MinCashFlow      float64  `json:"min_cash_flow"`
	LiquidityCushion float64  `json:"liquidity_cushion"`
}

// EquipmentResult is the full equipment-purchase simulation.
type EquipmentResult struct {
	Equipment        EquipmentTemplate          `json:"equipment"`
	PaymentScenarios map[string]PaymentScenario `json:"payment_scenarios"`
	Recommendation   PaymentRecommendation      `json:"recommendation"`
	Timeline         []Projection               `json:"timeline"`
	Risk             RiskAnalysis               `json:"risk_analysis"`
}

// SimulateEquipment compares cash, financing and consortium purchases of the
// requested equipment template.
func (s *Simulator) SimulateEquipment(req Request) (*EquipmentResult, error) {
	equip, ok := EquipmentTemplates[req.Equipment]
	if !ok {
		return nil, fmt.Errorf("scenario: unknown equipment %q", req.Equipment)
	}

	scenarios := map[string]PaymentScenario{
		PaymentCash:       cashPurchase(equip, req.CurrentMonthlyFlow),
		PaymentFinancing:  financedPurchase(equip, req.CurrentMonthlyFlow),
		PaymentConsortium: consortiumPurchase(equip, req.CurrentMonthlyFlow),
	}

	rec := recommendPayment(scenarios)
	best := scenarios[rec.BestOption]

	return &EquipmentResult{
		Equipment:        equip,
		PaymentScenarios: scenarios,
		Recommendation:   rec,
		Timeline:         best.Projections,
		Risk:             analyzeRisk(best, req.CurrentMonthlyFlow),
	}, nil
}

func cashPurchase(equip EquipmentTemplate, currentFlow float64) PaymentScenario {
	netBenefit := equip.MonthlySavings - equip.MaintenanceCost

	projections := make([]Projection, 0, 12)
	accumulated := currentFlow - equip.Cost
	var firstYear float64
	for month := 1; month <= 12; month++ {
		factor := SeasonalFactor(month)
		flow := currentFlow*factor + netBenefit
		accumulated += flow
		firstYear += flow
		projections = append(projections, Projection{
			Month:           month,
			MonthlyFlow:     flow,
			AccumulatedFlow: accumulated,
			SeasonalFactor:  factor,
		})
	}

	return PaymentScenario{
		Method:            PaymentCash,
		TotalInvestment:   equip.Cost,
		MonthlyNetBenefit: netBenefit,
		ImmediateImpact:   -equip.Cost,
		PaybackMonths:     paybackMonths(equip.Cost, netBenefit),
		FirstYearSavings:  firstYear,
		Projections:       projections,
		LiquidityImpact:   "high",
	}
}

func financedPurchase(equip EquipmentTemplate, currentFlow float64) PaymentScenario {
	downPayment := equip.Cost * downPaymentShare
	financed := equip.Cost - downPayment
	payment := priceInstallment(financed, ruralFinancingRate/12, financingMonths)
	netBenefit := equip.MonthlySavings - equip.MaintenanceCost - payment

	projections := make([]Projection, 0, 12)
	accumulated := currentFlow - downPayment
	for month := 1; month <= 12; month++ {
		factor := SeasonalFactor(month)
		flow := currentFlow*factor + netBenefit
		accumulated += flow
		projections = append(projections, Projection{
			Month:           month,
			MonthlyFlow:     flow,
			AccumulatedFlow: accumulated,
			SeasonalFactor:  factor,
			Payment:         payment,
		})
	}

	return PaymentScenario{
		Method:            PaymentFinancing,
		TotalInvestment:   equip.Cost,
		DownPayment:       downPayment,
		FinancedAmount:    financed,
		MonthlyPayment:    payment,
		MonthlyNetBenefit: netBenefit,
		TotalInterest:     payment*financingMonths - financed,
		FinancingMonths:   financingMonths,
		Projections:       projections,
		LiquidityImpact:   "medium",
	}
}

func consortiumPurchase(equip EquipmentTemplate, currentFlow float64) PaymentScenario {
	adminFee := equip.Cost * consortiumAdminFee
	totalPaid := equip.Cost + adminFee
	payment := totalPaid / financingMonths

	projections := make([]Projection, 0, 12)
	accumulated := currentFlow
	for month := 1; month <= 12; month++ {
		factor := SeasonalFactor(month)
		base := currentFlow * factor

		var flow float64
		contemplated := month >= contemplationMonth
		if contemplated {
			flow = base + (equip.MonthlySavings - equip.MaintenanceCost - payment)
		} else {
			flow = base - payment
		}
		accumulated += flow

		projections = append(projections, Projection{
			Month:           month,
			MonthlyFlow:     flow,
			AccumulatedFlow: accumulated,
			SeasonalFactor:  factor,
			Payment:         payment,
			Contemplated:    contemplated,
		})
	}

	return PaymentScenario{
		Method:             PaymentConsortium,
		TotalInvestment:    equip.Cost,
		TotalPaid:          totalPaid,
		AdminFee:           adminFee,
		MonthlyPayment:     payment,
		ContemplationMonth: contemplationMonth,
		Projections:        projections,
		LiquidityImpact:    "low",
	}
}

// priceInstallment is the fixed installment of a Price-table loan.
func priceInstallment(principal, monthlyRate float64, months int) float64 {
	factor := math.Pow(1+monthlyRate, float64(months))
	return principal * monthlyRate * factor / (factor - 1)
}

func paybackMonths(cost, monthlyNet float64) *float64 {
	if monthlyNet <= 0 {
		return nil
	}
	v := cost / monthlyNet
	return &v
}

// recommendPayment scores each method on liquidity impact, monthly benefit
// and payback, highest total wins.
func recommendPayment(scenarios map[string]PaymentScenario) PaymentRecommendation {
	ranked := make([]RankedOption, 0, len(scenarios))
	for _, method := range []string{PaymentCash, PaymentFinancing, PaymentConsortium} {
		sc := scenarios[method]
		score := 0

		switch sc.LiquidityImpact {
		case "low":
			score += 30
		case "medium":
			score += 20
		default:
			score += 10
		}

		switch {
		case sc.MonthlyNetBenefit > 3000:
			score += 25
		case sc.MonthlyNetBenefit > 1000:
			score += 15
		default:
			score += 5
		}

		payback := math.Inf(1)
		if sc.PaybackMonths != nil {
			payback = *sc.PaybackMonths
		}
		switch {
		case payback < 24:
			score += 25
		case payback < 48:
			score += 15
		default:
			score += 5
		}

		ranked = append(ranked, RankedOption{Method: method, Score: score})
	}

	best := ranked[0]
	for _, r := range ranked[1:] {
		if r.Score > best.Score {
			best = r
		}
	}

	alternatives := make([]RankedOption, 0, len(ranked)-1)
	for _, r := range ranked {
		if r.Method != best.Method {
			alternatives = append(alternatives, r)
		}
	}

	return PaymentRecommendation{
		BestOption:   best.Method,
		Score:        best.Score,
		Alternatives: alternatives,
		Reasoning:    paymentReasoning(best.Method, scenarios[best.Method]),
	}
}

func paymentReasoning(method string, sc PaymentScenario) string {
	switch method {
	case PaymentCash:
		payback := 0.0
		if sc.PaybackMonths != nil {
			payback = *sc.PaybackMonths
		}
		return fmt.Sprintf("Pagamento à vista oferece maior economia total e payback de %.1f meses, apesar do impacto inicial na liquidez.", payback)
	case PaymentFinancing:
		return fmt.Sprintf("Financiamento preserva liquidez com prestação de R$ %.2f e permite aproveitar a oportunidade imediatamente.", sc.MonthlyPayment)
	default:
		return fmt.Sprintf("Consórcio oferece menor impacto no fluxo mensal (R$ %.2f) mas requer paciência para contemplação.", sc.MonthlyPayment)
	}
}

// analyzeRisk inspects the accumulated flow of a scenario for liquidity
// stress and long paybacks.
func analyzeRisk(sc PaymentScenario, currentFlow float64) RiskAnalysis {
	minFlow := math.Inf(1)
	for _, p := range sc.Projections {
		if p.AccumulatedFlow < minFlow {
			minFlow = p.AccumulatedFlow
		}
	}

	level := "low"
	var factors []string
	switch {
	case minFlow < currentFlow*0.3:
		level = "high"
		factors = append(factors, "Impacto severo na liquidez")
	case minFlow < currentFlow*0.6:
		level = "medium"
		factors = append(factors, "Impacto moderado na liquidez")
	}

	if sc.PaybackMonths != nil && *sc.PaybackMonths > 48 {
		level = "high"
		factors = append(factors, "Payback longo (>4 anos)")
	}

	cushion := 0.0
	if currentFlow > 0 {
		cushion = minFlow / currentFlow
	}

	return RiskAnalysis{
		Level:            level,
		Factors:          factors,
		MinCashFlow:      minFlow,
		LiquidityCushion: cushion,
	}
}

package scenario

import "fmt"

// Outsourced labor runs about 30% over a CLT salary with slightly lower
// productivity.
const (
	outsourcedMarkup       = 1.3
	outsourcedProductivity = 2500
	// 13th salary plus vacation plus the constitutional third, in
	// multiples of the base salary, all due in December.
	annualExtrasMultiplier = 2.33
)

// EmploymentScenario is the 12-month outcome of one hiring modality.
type EmploymentScenario struct {
	Type              string       `json:"employment_type"`
	BaseSalary        float64      `json:"base_salary,omitempty"`
	DailyCost         float64      `json:"daily_cost,omitempty"`
	AverageDaysMonth  float64      `json:"average_days_month,omitempty"`
	MonthlyCost       float64      `json:"monthly_cost"`
	ProductivityGain  float64      `json:"productivity_gain"`
	MonthlyNetBenefit float64      `json:"monthly_net_benefit"`
	AnnualExtraCosts  float64      `json:"annual_extra_costs,omitempty"`
	Projections       []Projection `json:"monthly_projections"`
}

// EmploymentCost compares a modality on an annual basis.
type EmploymentCost struct {
	AnnualCost          float64 `json:"annual_cost"`
	AnnualProductivity  float64 `json:"annual_productivity"`
	CostPerProductivity float64 `json:"cost_per_productivity"`
}

// HiringRecommendation names the preferred modality.
type HiringRecommendation struct {
	BestOption string `json:"best_option"`
	Reasoning  string `json:"reasoning"`
}

// HiringResult is the full hiring simulation.
type HiringResult struct {
	Scenarios      map[string]EmploymentScenario `json:"employment_scenarios"`
	Recommendation HiringRecommendation          `json:"recommendation"`
	CostComparison map[string]EmploymentCost     `json:"cost_comparison"`
	Timeline       []Projection                  `json:"timeline"`
}

// SimulateHiring compares CLT, day-labor and outsourced hiring for the
// requested headcount.
func (s *Simulator) SimulateHiring(req Request) *HiringResult {
	scenarios := map[string]EmploymentScenario{
		"clt":        cltScenario(req.Positions, req.CurrentMonthlyFlow),
		"daily":      dailyWorkerScenario(req.Positions, req.CurrentMonthlyFlow),
		"outsourced": outsourcedScenario(req.Positions, req.CurrentMonthlyFlow),
	}

	rec := recommendHiring(scenarios)

	return &HiringResult{
		Scenarios:      scenarios,
		Recommendation: rec,
		CostComparison: compareEmploymentCosts(scenarios),
		Timeline:       scenarios[rec.BestOption].Projections,
	}
}

func cltScenario(positions int, currentFlow float64) EmploymentScenario {
	n := float64(positions)
	monthlyCost := CLTWorker.MonthlyCost * CLTWorker.ChargesMultiplier * n
	productivity := CLTWorker.ProductivityGain * n
	netBenefit := productivity - monthlyCost
	annualExtras := CLTWorker.MonthlyCost * annualExtrasMultiplier * n

	projections := make([]Projection, 0, 12)
	accumulated := currentFlow
	for month := 1; month <= 12; month++ {
		base := currentFlow * SeasonalFactor(month)

		extra := 0.0
		if month == 12 {
			extra = annualExtras
		}
		flow := base + netBenefit - extra
		accumulated += flow

		projections = append(projections, Projection{
			Month:            month,
			MonthlyFlow:      flow,
			AccumulatedFlow:  accumulated,
			MonthlyCost:      monthlyCost + extra,
			ProductivityGain: productivity,
		})
	}

	return EmploymentScenario{
		Type:              "clt",
		BaseSalary:        CLTWorker.MonthlyCost,
		MonthlyCost:       monthlyCost,
		ProductivityGain:  productivity,
		MonthlyNetBenefit: netBenefit,
		AnnualExtraCosts:  annualExtras,
		Projections:       projections,
	}
}

func dailyWorkerScenario(positions int, currentFlow float64) EmploymentScenario {
	n := float64(positions)
	monthlyCost := DailyWorker.DailyCost * DailyWorker.DaysPerMonth * n
	productivity := DailyWorker.ProductivityGain * n
	netBenefit := productivity - monthlyCost

	projections := make([]Projection, 0, 12)
	accumulated := currentFlow
	for month := 1; month <= 12; month++ {
		factor := SeasonalFactor(month)
		base := currentFlow * factor

		// Day labor scales with the season: busier months mean more
		// days worked and more output.
		days := DailyWorker.DaysPerMonth * factor
		cost := DailyWorker.DailyCost * days * n
		gain := productivity * factor

		flow := base + gain - cost
		accumulated += flow

		projections = append(projections, Projection{
			Month:            month,
			MonthlyFlow:      flow,
			AccumulatedFlow:  accumulated,
			DaysWorked:       days,
			MonthlyCost:      cost,
			ProductivityGain: gain,
		})
	}

	return EmploymentScenario{
		Type:              "daily",
		DailyCost:         DailyWorker.DailyCost,
		AverageDaysMonth:  DailyWorker.DaysPerMonth,
		MonthlyCost:       monthlyCost,
		ProductivityGain:  productivity,
		MonthlyNetBenefit: netBenefit,
		Projections:       projections,
	}
}

func outsourcedScenario(positions int, currentFlow float64) EmploymentScenario {
	n := float64(positions)
	monthlyCost := CLTWorker.MonthlyCost * outsourcedMarkup * n
	productivity := outsourcedProductivity * n
	netBenefit := productivity - monthlyCost

	projections := make([]Projection, 0, 12)
	accumulated := currentFlow
	for month := 1; month <= 12; month++ {
		flow := currentFlow*SeasonalFactor(month) + netBenefit
		accumulated += flow

		projections = append(projections, Projection{
			Month:            month,
			MonthlyFlow:      flow,
			AccumulatedFlow:  accumulated,
			MonthlyCost:      monthlyCost,
			ProductivityGain: productivity,
		})
	}

	return EmploymentScenario{
		Type:              "outsourced",
		MonthlyCost:       monthlyCost,
		ProductivityGain:  productivity,
		MonthlyNetBenefit: netBenefit,
		Projections:       projections,
	}
}

// recommendHiring defaults to CLT for stability, switching to day labor only
// when it beats CLT's net benefit by 20%.
func recommendHiring(scenarios map[string]EmploymentScenario) HiringRecommendation {
	best := "clt"
	if scenarios["daily"].MonthlyNetBenefit > scenarios["clt"].MonthlyNetBenefit*1.2 {
		best = "daily"
	}
	return HiringRecommendation{
		BestOption: best,
		Reasoning:  fmt.Sprintf("Opção %s oferece melhor relação custo-benefício considerando estabilidade e produtividade.", best),
	}
}

func compareEmploymentCosts(scenarios map[string]EmploymentScenario) map[string]EmploymentCost {
	comparison := make(map[string]EmploymentCost, len(scenarios))
	for name, sc := range scenarios {
		annualCost := sc.MonthlyCost * 12
		if name == "clt" {
			annualCost += sc.AnnualExtraCosts
		}
		annualProductivity := sc.ProductivityGain * 12

		costPerProductivity := 0.0
		if annualProductivity > 0 {
			costPerProductivity = annualCost / annualProductivity
		}

		comparison[name] = EmploymentCost{
			AnnualCost:          annualCost,
			AnnualProductivity:  annualProductivity,
			CostPerProductivity: costPerProductivity,
		}
	}
	return comparison
}

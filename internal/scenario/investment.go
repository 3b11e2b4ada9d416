package scenario

import "fmt"

// ROIAnalysis projects the investment's return over its useful life.
type ROIAnalysis struct {
	InitialInvestment float64 `json:"initial_investment"`
	AnnualNetBenefit  float64 `json:"annual_net_benefit"`
	TotalBenefits     float64 `json:"total_benefits"`
	ROIPercent        float64 `json:"roi_percentage"`
	UsefulLifeYears   int     `json:"useful_life_years"`
}

// PaybackAnalysis measures how long the investment takes to pay for itself.
type PaybackAnalysis struct {
	PaybackMonths     *float64 `json:"payback_months"`
	PaybackYears      *float64 `json:"payback_years"`
	MonthlyNetBenefit float64  `json:"monthly_net_benefit"`
	Breakeven         string   `json:"breakeven_analysis"`
}

// InvestmentRisk qualifies the investment across risk dimensions.
type InvestmentRisk struct {
	Level          string `json:"risk_level"`
	ROIRisk        string `json:"roi_risk"`
	MarketRisk     string `json:"market_risk"`
	TechnologyRisk string `json:"technology_risk"`
}

// Sensitivity shows the ROI under ±20% benefit scenarios.
type Sensitivity struct {
	Base        float64 `json:"base_scenario"`
	Pessimistic float64 `json:"pessimistic_scenario"`
	Optimistic  float64 `json:"optimistic_scenario"`
	Range       float64 `json:"sensitivity_range"`
}

// InvestmentTimelinePoint is one month of seasonally adjusted benefit.
type InvestmentTimelinePoint struct {
	Month          int     `json:"month"`
	Benefit        float64 `json:"benefit"`
	SeasonalFactor float64 `json:"seasonal_factor"`
}

// InvestmentResult is the full infrastructure-investment simulation.
type InvestmentResult struct {
	Investment  EquipmentTemplate         `json:"investment"`
	ROI         ROIAnalysis               `json:"roi_analysis"`
	Payback     PaybackAnalysis           `json:"payback_analysis"`
	Risk        InvestmentRisk            `json:"risk_assessment"`
	Timeline    []InvestmentTimelinePoint `json:"timeline"`
	Sensitivity Sensitivity               `json:"sensitivity_analysis"`
}

// SimulateInvestment projects return, payback, risk and sensitivity for the
// requested infrastructure template.
func (s *Simulator) SimulateInvestment(req Request) (*InvestmentResult, error) {
	inv, ok := EquipmentTemplates[req.Investment]
	if !ok {
		return nil, fmt.Errorf("scenario: unknown investment %q", req.Investment)
	}

	roi := investmentROI(inv)

	return &InvestmentResult{
		Investment:  inv,
		ROI:         roi,
		Payback:     paybackAnalysis(inv),
		Risk:        investmentRisk(roi),
		Timeline:    investmentTimeline(inv),
		Sensitivity: sensitivityAnalysis(inv),
	}, nil
}

func investmentROI(inv EquipmentTemplate) ROIAnalysis {
	annualNet := (inv.MonthlySavings - inv.MaintenanceCost) * 12
	totalBenefits := annualNet * float64(inv.UsefulLifeYears)

	return ROIAnalysis{
		InitialInvestment: inv.Cost,
		AnnualNetBenefit:  annualNet,
		TotalBenefits:     totalBenefits,
		ROIPercent:        (totalBenefits - inv.Cost) / inv.Cost * 100,
		UsefulLifeYears:   inv.UsefulLifeYears,
	}
}

func paybackAnalysis(inv EquipmentTemplate) PaybackAnalysis {
	monthlyNet := inv.MonthlySavings - inv.MaintenanceCost

	months := paybackMonths(inv.Cost, monthlyNet)
	breakeven := "questionable"
	var years *float64
	if months != nil {
		y := *months / 12
		years = &y
		if *months < 60 {
			breakeven = "positive"
		}
	}

	return PaybackAnalysis{
		PaybackMonths:     months,
		PaybackYears:      years,
		MonthlyNetBenefit: monthlyNet,
		Breakeven:         breakeven,
	}
}

func investmentRisk(roi ROIAnalysis) InvestmentRisk {
	level := "low"
	switch {
	case roi.ROIPercent < 10:
		level = "high"
	case roi.ROIPercent < 20:
		level = "medium"
	}

	roiRisk := "high"
	if roi.ROIPercent > 15 {
		roiRisk = "low"
	}

	return InvestmentRisk{
		Level:          level,
		ROIRisk:        roiRisk,
		MarketRisk:     "medium",
		TechnologyRisk: "low",
	}
}

func investmentTimeline(inv EquipmentTemplate) []InvestmentTimelinePoint {
	monthlyNet := inv.MonthlySavings - inv.MaintenanceCost

	points := make([]InvestmentTimelinePoint, 0, 12)
	for month := 1; month <= 12; month++ {
		factor := SeasonalFactor(month)
		points = append(points, InvestmentTimelinePoint{
			Month:          month,
			Benefit:        monthlyNet * factor,
			SeasonalFactor: factor,
		})
	}
	return points
}

func sensitivityAnalysis(inv EquipmentTemplate) Sensitivity {
	base := investmentROI(inv).ROIPercent

	pessimistic := inv
	pessimistic.MonthlySavings *= 0.8
	pROI := investmentROI(pessimistic).ROIPercent

	optimistic := inv
	optimistic.MonthlySavings *= 1.2
	oROI := investmentROI(optimistic).ROIPercent

	return Sensitivity{
		Base:        base,
		Pessimistic: pROI,
		Optimistic:  oROI,
		Range:       oROI - pROI,
	}
}

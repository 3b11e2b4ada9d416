package scenario

import (
	"math"
	"testing"
)

func TestSeasonalFactor(t *testing.T) {
	if SeasonalFactor(7) != 1.4 {
		t.Errorf("july factor = %v, want 1.4 (harvest peak)", SeasonalFactor(7))
	}
	if SeasonalFactor(12) != 0.6 {
		t.Errorf("december factor = %v, want 0.6", SeasonalFactor(12))
	}
	if SeasonalFactor(0) != 1 || SeasonalFactor(13) != 1 {
		t.Error("out-of-range months must return a neutral factor")
	}
}

func TestSimulate_Dispatch(t *testing.T) {
	s := NewSimulator()

	tests := []struct {
		reqType string
		check   func(t *testing.T, res any)
	}{
		{TypeEquipmentPurchase, func(t *testing.T, res any) {
			if _, ok := res.(*EquipmentResult); !ok {
				t.Errorf("got %T, want *EquipmentResult", res)
			}
		}},
		{TypeHiring, func(t *testing.T, res any) {
			if _, ok := res.(*HiringResult); !ok {
				t.Errorf("got %T, want *HiringResult", res)
			}
		}},
		{TypeInvestment, func(t *testing.T, res any) {
			if _, ok := res.(*InvestmentResult); !ok {
				t.Errorf("got %T, want *InvestmentResult", res)
			}
		}},
		{TypeCustom, func(t *testing.T, res any) {
			if _, ok := res.(*CustomResult); !ok {
				t.Errorf("got %T, want *CustomResult", res)
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.reqType, func(t *testing.T) {
			res, err := s.Simulate(Request{Type: tc.reqType})
			if err != nil {
				t.Fatalf("Simulate failed: %v", err)
			}
			tc.check(t, res)
		})
	}
}

func TestSimulate_UnknownType(t *testing.T) {
	if _, err := NewSimulator().Simulate(Request{Type: "teleportation"}); err == nil {
		t.Error("expected error for unknown scenario type")
	}
}

func TestSimulateEquipment_AllMethods(t *testing.T) {
	res, err := NewSimulator().SimulateEquipment(Request{
		Type: TypeEquipmentPurchase, Equipment: "tractor_used", CurrentMonthlyFlow: 15000, Positions: 1,
	})
	if err != nil {
		t.Fatalf("SimulateEquipment failed: %v", err)
	}

	for _, method := range []string{PaymentCash, PaymentFinancing, PaymentConsortium} {
		sc, ok := res.PaymentScenarios[method]
		if !ok {
			t.Fatalf("missing %s scenario", method)
		}
		if len(sc.Projections) != 12 {
			t.Errorf("%s: %d projections, want 12", method, len(sc.Projections))
		}
	}

	if res.Equipment.Name != "Trator Usado (120cv)" {
		t.Errorf("equipment = %q", res.Equipment.Name)
	}
	if len(res.Timeline) != 12 {
		t.Errorf("timeline = %d months, want 12", len(res.Timeline))
	}
}

func TestSimulateEquipment_UnknownTemplate(t *testing.T) {
	_, err := NewSimulator().SimulateEquipment(Request{Equipment: "spaceship"})
	if err == nil {
		t.Error("expected error for unknown equipment")
	}
}

func TestCashPurchase(t *testing.T) {
	equip := EquipmentTemplates["tractor_used"]
	sc := cashPurchase(equip, 15000)

	if sc.MonthlyNetBenefit != 2000 {
		t.Errorf("net benefit = %v, want 2000 (6000 savings - 4000 maintenance)", sc.MonthlyNetBenefit)
	}
	if sc.ImmediateImpact != -250000 {
		t.Errorf("immediate impact = %v, want -250000", sc.ImmediateImpact)
	}
	if sc.PaybackMonths == nil || *sc.PaybackMonths != 125 {
		t.Errorf("payback = %v, want 125 months", sc.PaybackMonths)
	}
	if sc.LiquidityImpact != "high" {
		t.Errorf("liquidity impact = %q, want high", sc.LiquidityImpact)
	}

	// January: 15000*0.7 + 2000 = 12500.
	if sc.Projections[0].MonthlyFlow != 12500 {
		t.Errorf("january flow = %v, want 12500", sc.Projections[0].MonthlyFlow)
	}
}

func TestFinancedPurchase(t *testing.T) {
	equip := EquipmentTemplates["tractor_new"]
	sc := financedPurchase(equip, 15000)

	if sc.DownPayment != 90000 {
		t.Errorf("down payment = %v, want 90000 (20%%)", sc.DownPayment)
	}
	if sc.FinancedAmount != 360000 {
		t.Errorf("financed = %v, want 360000", sc.FinancedAmount)
	}

	// Price installment at 8%/yr over 60 months on 360000.
	want := priceInstallment(360000, 0.08/12, 60)
	if math.Abs(sc.MonthlyPayment-want) > 0.01 {
		t.Errorf("payment = %v, want %v", sc.MonthlyPayment, want)
	}
	if sc.MonthlyPayment < 7000 || sc.MonthlyPayment > 7500 {
		t.Errorf("payment = %v, expected roughly 7300", sc.MonthlyPayment)
	}
	if sc.TotalInterest <= 0 {
		t.Errorf("total interest = %v, want positive", sc.TotalInterest)
	}
	if sc.FinancingMonths != 60 {
		t.Errorf("financing months = %d, want 60", sc.FinancingMonths)
	}
}

func TestPriceInstallment(t *testing.T) {
	// 100000 at 1%/month over 12 months: the classic Price table gives
	// 8884.88.
	got := priceInstallment(100000, 0.01, 12)
	if math.Abs(got-8884.88) > 0.01 {
		t.Errorf("installment = %v, want 8884.88", got)
	}
}

func TestConsortiumPurchase(t *testing.T) {
	equip := EquipmentTemplates["grain_silo"]
	sc := consortiumPurchase(equip, 15000)

	if sc.AdminFee != 180000*0.12 {
		t.Errorf("admin fee = %v, want 21600", sc.AdminFee)
	}
	if math.Abs(sc.MonthlyPayment-(180000*1.12)/60) > 0.001 {
		t.Errorf("payment = %v, want total paid over 60 months", sc.MonthlyPayment)
	}
	if sc.ContemplationMonth != 30 {
		t.Errorf("contemplation month = %d, want 30", sc.ContemplationMonth)
	}

	// Contemplation happens past the 12-month window, so no projection is
	// contemplated and every month just pays the installment.
	for _, p := range sc.Projections {
		if p.Contemplated {
			t.Errorf("month %d marked contemplated before month 30", p.Month)
		}
		wantFlow := 15000*SeasonalFactor(p.Month) - sc.MonthlyPayment
		if math.Abs(p.MonthlyFlow-wantFlow) > 0.001 {
			t.Errorf("month %d flow = %v, want %v", p.Month, p.MonthlyFlow, wantFlow)
		}
	}
}

func TestRecommendPayment_PrefersLowLiquidityImpact(t *testing.T) {
	res, err := NewSimulator().SimulateEquipment(Request{Equipment: "tractor_new", CurrentMonthlyFlow: 15000})
	if err != nil {
		t.Fatalf("SimulateEquipment failed: %v", err)
	}

	rec := res.Recommendation
	if rec.BestOption == "" {
		t.Fatal("recommendation missing best option")
	}
	if len(rec.Alternatives) != 2 {
		t.Errorf("expected 2 alternatives, got %d", len(rec.Alternatives))
	}
	for _, alt := range rec.Alternatives {
		if alt.Score > rec.Score {
			t.Errorf("alternative %s scored %d above best %d", alt.Method, alt.Score, rec.Score)
		}
	}
	if rec.Reasoning == "" {
		t.Error("recommendation missing reasoning")
	}
}

func TestAnalyzeRisk_CashPurchaseIsHigh(t *testing.T) {
	sc := cashPurchase(EquipmentTemplates["tractor_new"], 15000)

	risk := analyzeRisk(sc, 15000)
	if risk.Level != "high" {
		t.Errorf("risk = %q, want high for a 450k cash purchase on 15k flow", risk.Level)
	}
	if len(risk.Factors) == 0 {
		t.Error("expected at least one risk factor")
	}
}

func TestSimulateHiring(t *testing.T) {
	res := NewSimulator().SimulateHiring(Request{Positions: 1, CurrentMonthlyFlow: 15000})

	clt := res.Scenarios["clt"]
	if clt.MonthlyCost != 3500*1.68 {
		t.Errorf("clt monthly cost = %v, want 5880", clt.MonthlyCost)
	}
	if clt.AnnualExtraCosts != 3500*2.33 {
		t.Errorf("clt annual extras = %v, want 8155", clt.AnnualExtraCosts)
	}
	// December carries the 13th salary and vacation costs.
	dec := clt.Projections[11]
	nov := clt.Projections[10]
	if dec.MonthlyCost <= nov.MonthlyCost {
		t.Error("december must carry the annual extra costs")
	}

	daily := res.Scenarios["daily"]
	if daily.MonthlyCost != 120*20 {
		t.Errorf("daily monthly cost = %v, want 2400", daily.MonthlyCost)
	}
	// July's factor is 1.4: more days worked, more output.
	july := daily.Projections[6]
	if math.Abs(july.DaysWorked-28) > 0.001 {
		t.Errorf("july days worked = %v, want 28", july.DaysWorked)
	}

	outsourced := res.Scenarios["outsourced"]
	if outsourced.MonthlyCost != 3500*1.3 {
		t.Errorf("outsourced cost = %v, want 4550", outsourced.MonthlyCost)
	}

	if res.Recommendation.BestOption != "clt" && res.Recommendation.BestOption != "daily" {
		t.Errorf("unexpected recommendation %q", res.Recommendation.BestOption)
	}
	if len(res.CostComparison) != 3 {
		t.Errorf("cost comparison covers %d modalities, want 3", len(res.CostComparison))
	}
}

func TestHiringRecommendation_DailyWinsWhenClearlyBetter(t *testing.T) {
	// daily: 2200 - 2400 = -200; clt: 2800 - 5880 = -3080.
	// daily > clt*1.2 (both negative): -200 > -3696, so daily wins.
	res := NewSimulator().SimulateHiring(Request{Positions: 1, CurrentMonthlyFlow: 15000})
	if res.Recommendation.BestOption != "daily" {
		t.Errorf("recommendation = %q, want daily", res.Recommendation.BestOption)
	}
}

func TestSimulateInvestment(t *testing.T) {
	res, err := NewSimulator().SimulateInvestment(Request{Investment: "irrigation_system"})
	if err != nil {
		t.Fatalf("SimulateInvestment failed: %v", err)
	}

	// (3500-800)*12 = 32400/year over 15 years = 486000 total on 120000.
	if res.ROI.AnnualNetBenefit != 32400 {
		t.Errorf("annual net = %v, want 32400", res.ROI.AnnualNetBenefit)
	}
	wantROI := (486000.0 - 120000.0) / 120000.0 * 100
	if math.Abs(res.ROI.ROIPercent-wantROI) > 0.001 {
		t.Errorf("roi = %v, want %v", res.ROI.ROIPercent, wantROI)
	}

	if res.Payback.PaybackMonths == nil {
		t.Fatal("payback missing")
	}
	if math.Abs(*res.Payback.PaybackMonths-120000.0/2700.0) > 0.001 {
		t.Errorf("payback = %v months", *res.Payback.PaybackMonths)
	}
	if res.Payback.Breakeven != "positive" {
		t.Errorf("breakeven = %q, want positive", res.Payback.Breakeven)
	}

	if res.Risk.Level != "low" {
		t.Errorf("risk = %q, want low for ROI %v", res.Risk.Level, res.ROI.ROIPercent)
	}

	if len(res.Timeline) != 12 {
		t.Errorf("timeline = %d points, want 12", len(res.Timeline))
	}

	if res.Sensitivity.Optimistic <= res.Sensitivity.Base || res.Sensitivity.Pessimistic >= res.Sensitivity.Base {
		t.Errorf("sensitivity not ordered: %+v", res.Sensitivity)
	}
	wantRange := res.Sensitivity.Optimistic - res.Sensitivity.Pessimistic
	if math.Abs(res.Sensitivity.Range-wantRange) > 0.001 {
		t.Errorf("sensitivity range = %v, want %v", res.Sensitivity.Range, wantRange)
	}
}

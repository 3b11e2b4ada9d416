// Package score computes the rural financial health score (0-100) from
// processed ledger aggregates. Three weighted components feed it: liquidity
// (30%), debt load (30%) and efficiency (40%), with a seasonal bump when the
// detected crop is in its peak months.
package score

import (
	"math"
	"strings"
	"time"
)

// CategoryInput is one spend category as submitted by the caller.
type CategoryInput struct {
	Name  string  `json:"categoria"`
	Total float64 `json:"valor"`
}

// MonthInput is one month of aggregated spend.
type MonthInput struct {
	Month string  `json:"mes"`
	Total float64 `json:"valor"`
}

// AnomalyInput is a detected anomaly's estimated impact, in percent.
type AnomalyInput struct {
	Impact float64 `json:"impacto"`
}

// Input is the financial snapshot the score is computed from.
type Input struct {
	TopCategories    []CategoryInput `json:"top_categories"`
	MonthlyEvolution []MonthInput    `json:"monthly_evolution"`
	Anomalies        []AnomalyInput  `json:"anomalies"`
}

// Component is one weighted slice of the final score.
type Component struct {
	Score  float64 `json:"score"`
	Weight int     `json:"peso"`
	Status string  `json:"status"`

	// Component-specific detail fields.
	CurrentCash    *float64 `json:"valor_atual,omitempty"`
	CoverageMonths *float64 `json:"meses_cobertura,omitempty"`
	RevenuePercent *float64 `json:"percentual_receita,omitempty"`
	DebtTotal      *float64 `json:"valor_dividas,omitempty"`
	EstimatedROI   *float64 `json:"roi_estimado,omitempty"`
}

// Benchmark positions the score against regional references.
type Benchmark struct {
	RegionalPosition   string  `json:"posicao_regional"`
	DetectedCulture    string  `json:"cultura_detectada"`
	SeasonalAdjustment float64 `json:"ajuste_sazonal"`
}

// Recommendation is one prioritized improvement action.
type Recommendation struct {
	Category    string `json:"categoria"`
	Priority    string `json:"prioridade"`
	Action      string `json:"acao"`
	ScoreImpact string `json:"impacto_score"`
	Horizon     string `json:"prazo"`
}

// Trend summarizes the spend direction over the last three months.
type Trend struct {
	Direction string  `json:"direcao"`
	Variation float64 `json:"variacao"`
}

// Result is the full score report.
type Result struct {
	Total           float64              `json:"score_total"`
	Level           string               `json:"nivel"`
	Components      map[string]Component `json:"componentes"`
	Benchmark       Benchmark            `json:"benchmark"`
	Recommendations []Recommendation     `json:"recomendacoes"`
	Trend           Trend                `json:"tendencia"`
	NextReview      string               `json:"proxima_revisao"`
}

// Liquidity benchmarks in months of cash coverage; debt benchmarks as a
// fraction of annual revenue.
var (
	liquidityBands = []struct {
		min   float64
		score float64
	}{
		{6.0, 100},
		{3.0, 80},
		{1.5, 60},
		{0.5, 40},
	}
	debtBands = []struct {
		max   float64
		score float64
	}{
		{0.2, 100},
		{0.4, 80},
		{0.6, 60},
		{0.8, 40},
	}
)

type cultureProfile struct {
	peakMonths []time.Month
	adjustment float64
	keywords   []string
}

var cultures = map[string]cultureProfile{
	"soja":  {[]time.Month{2, 3, 4}, 1.10, []string{"soja", "semente", "plantio"}},
	"milho": {[]time.Month{6, 7, 8}, 1.05, []string{"milho", "ração", "grão"}},
	"cafe":  {[]time.Month{5, 6, 7}, 1.15, []string{"cafe", "café", "colheita"}},
}

// Culture detection tries crops in a fixed order so mixed ledgers resolve
// deterministically.
var cultureOrder = []string{"soja", "milho", "cafe"}

// Calculator computes scores. Now is injectable for tests.
type Calculator struct {
	now func() time.Time
}

func NewCalculator() *Calculator {
	return &Calculator{now: time.Now}
}

// Calculate produces the full health score report for the snapshot.
func (c *Calculator) Calculate(in Input) *Result {
	monthlyExpenses := c.monthlyExpenses(in)
	annualRevenue := c.annualRevenue(monthlyExpenses)
	cash := c.currentCash(in, monthlyExpenses)
	debts := c.debts(in, monthlyExpenses)

	liquidity := liquidityScore(cash, monthlyExpenses)
	debt := debtScore(debts, annualRevenue)
	efficiency := efficiencyScore(in)

	total := liquidity*0.30 + debt*0.30 + efficiency*0.40

	culture := c.detectCulture(in)
	adjusted := c.seasonalAdjust(total, culture)
	final := math.Min(100, math.Max(0, adjusted))

	coverage := round1(cash / math.Max(monthlyExpenses, 1))
	revenuePct := round1(debts / math.Max(annualRevenue, 1) * 100)
	roi := c.roiPercent(monthlyExpenses, annualRevenue)

	return &Result{
		Total: round1(final),
		Level: scoreLevel(final),
		Components: map[string]Component{
			"liquidez": {
				Score:          round1(liquidity),
				Weight:         30,
				Status:         componentStatus(liquidity),
				CurrentCash:    &cash,
				CoverageMonths: &coverage,
			},
			"endividamento": {
				Score:          round1(debt),
				Weight:         30,
				Status:         componentStatus(debt),
				RevenuePercent: &revenuePct,
				DebtTotal:      &debts,
			},
			"eficiencia": {
				Score:        round1(efficiency),
				Weight:       40,
				Status:       componentStatus(efficiency),
				EstimatedROI: &roi,
			},
		},
		Benchmark: Benchmark{
			RegionalPosition:   regionalPosition(final),
			DetectedCulture:    culture,
			SeasonalAdjustment: round1(adjusted - total),
		},
		Recommendations: recommendations(liquidity, debt, efficiency),
		Trend:           trend(in),
		NextReview:      c.now().AddDate(0, 0, 30).Format("02/01/2006"),
	}
}

func (c *Calculator) monthlyExpenses(in Input) float64 {
	var total float64
	for _, cat := range in.TopCategories {
		total += cat.Total
	}
	months := len(in.MonthlyEvolution)
	if months == 0 {
		months = 1
	}
	return total / float64(months)
}

// annualRevenue assumes the typical rural margin of 20%.
func (c *Calculator) annualRevenue(monthlyExpenses float64) float64 {
	return monthlyExpenses * 12 / 0.20
}

// currentCash estimates 2.5 months of expenses in cash, nudged by the
// average impact of the three most recent anomalies.
func (c *Calculator) currentCash(in Input, monthlyExpenses float64) float64 {
	factor := 1.0
	anomalies := in.Anomalies
	if len(anomalies) > 3 {
		anomalies = anomalies[len(anomalies)-3:]
	}
	if len(anomalies) > 0 {
		var sum float64
		for _, a := range anomalies {
			sum += a.Impact
		}
		factor = 1 + sum/float64(len(anomalies))/100
	}
	return monthlyExpenses * 2.5 * factor
}

var debtKeywords = []string{"financiamento", "empréstimo", "credito", "parcelamento", "juros"}

// debts sums categories that look like financing. Without any, it assumes
// three months of expenses.
func (c *Calculator) debts(in Input, monthlyExpenses float64) float64 {
	var total float64
	for _, cat := range in.TopCategories {
		name := strings.ToLower(cat.Name)
		for _, kw := range debtKeywords {
			if strings.Contains(name, kw) {
				total += cat.Total
				break
			}
		}
	}
	if total == 0 {
		total = monthlyExpenses * 3
	}
	return total
}

func liquidityScore(cash, monthlyExpenses float64) float64 {
	coverage := cash / math.Max(monthlyExpenses, 1)
	for _, band := range liquidityBands {
		if coverage >= band.min {
			return band.score
		}
	}
	return math.Max(20, coverage*20)
}

func debtScore(debts, annualRevenue float64) float64 {
	ratio := debts / math.Max(annualRevenue, 1)
	for _, band := range debtBands {
		if ratio <= band.max {
			return band.score
		}
	}
	return math.Max(10, 100-ratio*100)
}

// efficiencyScore combines spend diversification (up to 50 points) with
// month-to-month consistency (up to 50 points, via coefficient of
// variation).
func efficiencyScore(in Input) float64 {
	diversification := float64(min(len(in.TopCategories), 10)) * 5

	consistency := 30.0
	if len(in.MonthlyEvolution) >= 3 {
		values := make([]float64, len(in.MonthlyEvolution))
		for i, m := range in.MonthlyEvolution {
			values[i] = m.Total
		}
		cv := stdDev(values) / math.Max(mean(values), 1)
		consistency = math.Max(0, 50-cv*100)
	}

	return math.Min(100, diversification+consistency)
}

func (c *Calculator) roiPercent(monthlyExpenses, annualRevenue float64) float64 {
	annualExpenses := monthlyExpenses * 12
	profit := annualRevenue - annualExpenses
	return round1(profit / math.Max(annualExpenses, 1) * 100)
}

func (c *Calculator) detectCulture(in Input) string {
	for _, cat := range in.TopCategories {
		name := strings.ToLower(cat.Name)
		for _, culture := range cultureOrder {
			for _, kw := range cultures[culture].keywords {
				if strings.Contains(name, kw) {
					return culture
				}
			}
		}
	}
	return "geral"
}

func (c *Calculator) seasonalAdjust(score float64, culture string) float64 {
	profile, ok := cultures[culture]
	if !ok {
		return score
	}
	month := c.now().Month()
	for _, peak := range profile.peakMonths {
		if month == peak {
			return score * profile.adjustment
		}
	}
	return score
}

func scoreLevel(score float64) string {
	switch {
	case score >= 80:
		return "Excelente"
	case score >= 60:
		return "Bom"
	case score >= 40:
		return "Regular"
	default:
		return "Precisa Atenção"
	}
}

func componentStatus(score float64) string {
	switch {
	case score >= 75:
		return "Forte"
	case score >= 50:
		return "Adequado"
	case score >= 30:
		return "Atenção"
	default:
		return "Crítico"
	}
}

func regionalPosition(score float64) string {
	switch {
	case score >= 75:
		return "Top 25% da região"
	case score >= 50:
		return "Acima da média regional"
	case score >= 30:
		return "Próximo à média regional"
	default:
		return "Abaixo da média regional"
	}
}

func recommendations(liquidity, debt, efficiency float64) []Recommendation {
	var recs []Recommendation

	if liquidity < 50 {
		recs = append(recs, Recommendation{
			Category:    "Liquidez",
			Priority:    "alta",
			Action:      "Criar reserva de emergência equivalente a 3 meses de gastos",
			ScoreImpact: "+15 pontos",
			Horizon:     "3-6 meses",
		})
	}
	if debt < 50 {
		recs = append(recs, Recommendation{
			Category:    "Endividamento",
			Priority:    "alta",
			Action:      "Renegociar dívidas e reduzir comprometimento da receita para menos de 40%",
			ScoreImpact: "+20 pontos",
			Horizon:     "6-12 meses",
		})
	}
	if efficiency < 60 {
		recs = append(recs, Recommendation{
			Category:    "Eficiência",
			Priority:    "media",
			Action:      "Diversificar investimentos e melhorar planejamento de safras",
			ScoreImpact: "+10 pontos",
			Horizon:     "1-2 safras",
		})
	}

	recs = append(recs, Recommendation{
		Category:    "Gestão",
		Priority:    "baixa",
		Action:      "Manter controle financeiro detalhado e revisar score mensalmente",
		ScoreImpact: "+5 pontos",
		Horizon:     "Contínuo",
	})

	return recs
}

// trend compares the first and last of the final three months.
func trend(in Input) Trend {
	months := in.MonthlyEvolution
	if len(months) < 3 {
		return Trend{Direction: "estavel", Variation: 0}
	}

	recent := months[len(months)-3:]
	first := recent[0].Total
	last := recent[len(recent)-1].Total
	change := (last - first) / math.Max(first, 1) * 100

	switch {
	case change > 10:
		return Trend{Direction: "melhorando", Variation: round1(change)}
	case change < -10:
		return Trend{Direction: "piorando", Variation: round1(change)}
	default:
		return Trend{Direction: "estavel", Variation: round1(change)}
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDev(values []float64) float64 {
	m := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	return math.Sqrt(sq / float64(len(values)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Severity ranks an alert's urgency. Values are serialized lowercase.
type Severity string

const (
	SeverityUrgent  Severity = "urgent"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Alert is one finding surfaced to the consumer. EstimatedImpact is nil when
// no monetary estimate applies; SuggestedAction may be empty.
type Alert struct {
	Severity        Severity `json:"tipo"`
	Category        string   `json:"categoria"`
	Message         string   `json:"mensagem"`
	EstimatedImpact *float64 `json:"impacto_estimado"`
	SuggestedAction string   `json:"acao_sugerida,omitempty"`
}

const (
	variationThreshold = 30.0
	sharePercentThreshold  = 25.0
	minOutlierSample   = 4
	maxAlerts          = 10
)

// GenerateAlerts derives rule-based alerts from the aggregated categories and
// the raw transactions, ranked by estimated impact and capped at 10.
//
// Three rules run in order: month-over-month spikes above 30% on a top
// category (urgent), top categories above 25% of total spend (warning), and
// IQR outliers within any category holding at least 4 transactions (info).
func GenerateAlerts(txs []Transaction, top []TopCategory) []Alert {
	var alerts []Alert

	for _, cat := range top {
		if cat.MonthlyVariation == nil || *cat.MonthlyVariation <= variationThreshold {
			continue
		}
		impact := cat.Total * (*cat.MonthlyVariation / 100)
		alerts = append(alerts, Alert{
			Severity:        SeverityUrgent,
			Category:        cat.Name,
			Message:         fmt.Sprintf("%s aumentou %s%% no último mês", cat.Name, formatNumber(*cat.MonthlyVariation)),
			EstimatedImpact: &impact,
			SuggestedAction: "Revisar fornecedores e buscar alternativas mais econômicas",
		})
	}

	for _, cat := range top {
		if cat.Percent <= sharePercentThreshold {
			continue
		}
		impact := cat.Total * 0.10
		alerts = append(alerts, Alert{
			Severity:        SeverityWarning,
			Category:        cat.Name,
			Message:         fmt.Sprintf("%s representa %s%% dos gastos totais", cat.Name, formatNumber(cat.Percent)),
			EstimatedImpact: &impact,
			SuggestedAction: "Considerar estratégias de redução ou negociação em volume",
		})
	}

	alerts = append(alerts, outlierAlerts(txs)...)

	return RankAlerts(alerts)
}

// outlierAlerts applies the IQR test per category, visiting categories in
// first-appearance order so the output is deterministic.
func outlierAlerts(txs []Transaction) []Alert {
	amounts := make(map[string][]float64)
	var order []string
	for _, tx := range txs {
		if _, seen := amounts[tx.Description]; !seen {
			order = append(order, tx.Description)
		}
		amounts[tx.Description] = append(amounts[tx.Description], tx.Amount.InexactFloat64())
	}

	var alerts []Alert
	for _, category := range order {
		values := amounts[category]
		if len(values) < minOutlierSample {
			continue
		}

		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		q1 := quantile(sorted, 0.25)
		q3 := quantile(sorted, 0.75)
		upperBound := q3 + 1.5*(q3-q1)

		var sum float64
		var count int
		for _, v := range values {
			if v > upperBound {
				sum += v
				count++
			}
		}
		if count == 0 {
			continue
		}

		// Impact is the excess over what the mean outlier alone would
		// imply. Kept as-is to match the established alert contract.
		impact := sum - (sum/float64(count))*float64(count)
		alerts = append(alerts, Alert{
			Severity:        SeverityInfo,
			Category:        category,
			Message:         fmt.Sprintf("Detectadas %d transações atípicas em %s", count, category),
			EstimatedImpact: &impact,
			SuggestedAction: "Verificar se foram compras emergenciais ou erros de lançamento",
		})
	}
	return alerts
}

// RankAlerts sorts alerts by estimated impact descending (nil counts as 0,
// ties keep their original order) and truncates to the 10 most relevant.
func RankAlerts(alerts []Alert) []Alert {
	sort.SliceStable(alerts, func(i, j int) bool {
		return impactOrZero(alerts[i]) > impactOrZero(alerts[j])
	})
	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}
	return alerts
}

func impactOrZero(a Alert) float64 {
	if a.EstimatedImpact == nil {
		return 0
	}
	return *a.EstimatedImpact
}

// quantile returns the q-th quantile of an ascending-sorted slice using
// linear interpolation between the two nearest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// formatNumber renders a float without trailing zeros (33.33, 45, 12.5).
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package analysis

import (
	"fmt"
	"strings"
)

// Enrichment labels how the report's insights were produced.
const (
	EnrichmentAIPowered = "ai_powered"
	EnrichmentRuleBased = "rule_based"
)

// Report is the full analysis returned to the consumer. Field names follow
// the Portuguese contract of the frontend.
type Report struct {
	TotalSpend       float64                   `json:"total_gasto"`
	TransactionCount int                       `json:"numero_transacoes"`
	Period           Period                    `json:"periodo_analise"`
	TopCategories    []TopCategory             `json:"top_categorias"`
	MonthlyEvolution map[string][]MonthlyPoint `json:"evolucao_mensal"`
	Alerts           []Alert                   `json:"alertas"`
	ExecutiveSummary string                    `json:"resumo_executivo"`
	EnrichmentType   string                    `json:"tipo_enriquecimento,omitempty"`
}

// ExecutiveSummary builds the templated Portuguese summary: transaction
// count, total, dominant category, urgent-alert count and the total
// estimated savings across all alerts.
func ExecutiveSummary(agg Aggregation, alerts []Alert) string {
	var b strings.Builder

	fmt.Fprintf(&b, "No período analisado, foram registradas %d transações ", agg.TransactionCount)
	fmt.Fprintf(&b, "totalizando R$ %s em gastos. ", formatMoney(agg.TotalSpend.InexactFloat64()))

	if len(agg.TopCategories) > 0 {
		top := agg.TopCategories[0]
		fmt.Fprintf(&b, "A categoria '%s' foi a maior despesa, ", top.Name)
		fmt.Fprintf(&b, "representando %s%% do total. ", formatNumber(top.Percent))
	}

	urgent := 0
	var savings float64
	for _, a := range alerts {
		if a.Severity == SeverityUrgent {
			urgent++
		}
		savings += impactOrZero(a)
	}

	if urgent > 0 {
		fmt.Fprintf(&b, "Foram identificados %d alertas urgentes que requerem atenção imediata. ", urgent)
	}
	if savings > 0 {
		fmt.Fprintf(&b, "As oportunidades de economia identificadas podem gerar uma redução de até R$ %s nos gastos.", formatMoney(savings))
	}

	return strings.TrimSpace(b.String())
}

// formatMoney renders a value with two decimals and comma thousand
// separators (1234567.8 -> "1,234,567.80").
func formatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

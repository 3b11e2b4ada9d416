package analysis

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dvloznov/rural-insights/internal/insights"
)

// Enricher augments an analysis with model-generated insights. It must not
// fail: implementations degrade internally and always return a result.
type Enricher interface {
	Enrich(ctx context.Context, fc insights.FinancialContext) *insights.Insights
}

// Analyzer runs the full ledger pipeline: normalize, aggregate, alert,
// summarize and optionally enrich.
type Analyzer struct {
	enricher Enricher
	log      zerolog.Logger
}

// NewAnalyzer builds the pipeline. A nil enricher disables enrichment and
// the report is tagged rule_based.
func NewAnalyzer(enricher Enricher, log zerolog.Logger) *Analyzer {
	return &Analyzer{enricher: enricher, log: log}
}

// At most three model insights are folded back into the alert list.
const enrichedAlertLimit = 3

// Analyze processes raw CSV bytes into a complete report. Enrichment
// failures never fail the analysis; the report just stays rule-based.
func (a *Analyzer) Analyze(ctx context.Context, content []byte) (*Report, error) {
	txs, err := Normalize(content)
	if err != nil {
		return nil, err
	}

	agg := Aggregate(txs)
	alerts := GenerateAlerts(txs, agg.TopCategories)
	summary := ExecutiveSummary(agg, alerts)

	a.log.Info().
		Int("transactions", agg.TransactionCount).
		Int("alerts", len(alerts)).
		Str("period_start", agg.Period.Start).
		Str("period_end", agg.Period.End).
		Msg("ledger analyzed")

	enrichment := EnrichmentRuleBased
	if a.enricher != nil {
		ins := a.enricher.Enrich(ctx, financialContext(agg, alerts))
		alerts = mergeInsightAlerts(alerts, ins)
		if !ins.Fallback {
			summary += " Análise enriquecida com inteligência artificial."
			enrichment = EnrichmentAIPowered
		}
	}

	return &Report{
		TotalSpend:       agg.TotalSpend.InexactFloat64(),
		TransactionCount: agg.TransactionCount,
		Period:           agg.Period,
		TopCategories:    agg.TopCategories,
		MonthlyEvolution: agg.MonthlyEvolution,
		Alerts:           alerts,
		ExecutiveSummary: summary,
		EnrichmentType:   enrichment,
	}, nil
}

// mergeInsightAlerts folds the top model insights into the alert list as
// info alerts, then re-ranks so the 10-alert cap still holds.
func mergeInsightAlerts(alerts []Alert, ins *insights.Insights) []Alert {
	for i, ki := range ins.KeyInsights {
		if i == enrichedAlertLimit {
			break
		}
		category := ki.Category
		if category == "" {
			category = "Geral"
		}
		alerts = append(alerts, Alert{
			Severity:        SeverityInfo,
			Category:        category,
			Message:         ki.Message,
			EstimatedImpact: ki.Impact,
			SuggestedAction: ki.Action,
		})
	}
	return RankAlerts(alerts)
}

func financialContext(agg Aggregation, alerts []Alert) insights.FinancialContext {
	cats := make([]insights.CategorySummary, 0, len(agg.TopCategories))
	for _, c := range agg.TopCategories {
		cats = append(cats, insights.CategorySummary{
			Name:         c.Name,
			Total:        c.Total,
			Percent:      c.Percent,
			Variation:    c.MonthlyVariation,
			Transactions: c.Transactions,
			AvgPerTx:     c.AvgPerTx,
		})
	}

	sums := make([]insights.AlertSummary, 0, len(alerts))
	for _, a := range alerts {
		sums = append(sums, insights.AlertSummary{
			Severity: string(a.Severity),
			Category: a.Category,
			Message:  a.Message,
		})
	}

	return insights.FinancialContext{
		TotalSpend:       agg.TotalSpend.InexactFloat64(),
		TransactionCount: agg.TransactionCount,
		PeriodStart:      agg.Period.Start,
		PeriodEnd:        agg.Period.End,
		Categories:       cats,
		Alerts:           sums,
	}
}

package insights

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dvloznov/rural-insights/internal/agro"
)

const (
	fallbackVariationThreshold = 20.0
	fallbackShareThreshold     = 30.0
	fallbackCategoryLimit      = 3
)

// Fallback derives rule-based insights from the top categories when the
// model is unavailable. The result is always structurally complete and
// carries the Fallback marker.
func Fallback(fc FinancialContext, now time.Time) *Insights {
	cats := fc.Categories
	if len(cats) > fallbackCategoryLimit {
		cats = cats[:fallbackCategoryLimit]
	}

	keyInsights := []KeyInsight{}
	for _, cat := range cats {
		switch {
		case cat.Variation != nil && *cat.Variation > fallbackVariationThreshold:
			impact := cat.Total * 0.10
			keyInsights = append(keyInsights, KeyInsight{
				Category: cat.Name,
				Kind:     "alerta",
				Message:  fmt.Sprintf("%s aumentou %s%% no último mês", cat.Name, formatPercent(*cat.Variation)),
				Impact:   &impact,
				Action:   "Revisar fornecedores e negociar preços",
				Horizon:  "imediato",
			})
		case cat.Percent > fallbackShareThreshold:
			impact := cat.Total * 0.15
			keyInsights = append(keyInsights, KeyInsight{
				Category: cat.Name,
				Kind:     "economia",
				Message:  fmt.Sprintf("%s representa %s%% dos gastos totais", cat.Name, formatPercent(cat.Percent)),
				Impact:   &impact,
				Action:   "Buscar alternativas ou compras em conjunto",
				Horizon:  "30 dias",
			})
		}
	}

	reviews := make([]CategoryReview, 0, len(cats))
	var totalSaving float64
	for _, cat := range cats {
		status := "normal"
		if cat.Percent > 25 {
			status = "atencao"
		}
		reviews = append(reviews, CategoryReview{
			Category:   cat.Name,
			Status:     status,
			Analysis:   fmt.Sprintf("Categoria com %d transações", cat.Transactions),
			Benchmark:  "Análise de benchmark indisponível",
			Suggestion: "Monitore os gastos desta categoria",
		})
		totalSaving += cat.Total * 0.10
	}

	return &Insights{
		KeyInsights:     keyInsights,
		CategoryReviews: reviews,
		Opportunities: []SavingOpportunity{
			{
				Description:     "Negociação com fornecedores principais",
				EstimatedSaving: totalSaving,
				HowTo:           "Entre em contato com fornecedores para renegociar",
				Complexity:      "facil",
			},
		},
		SeasonalAdvice: []SeasonalAdvice{
			{
				Recommendation: fmt.Sprintf("Planeje compras para %s", agro.CurrentSeason(now)),
				Rationale:      "Melhor momento para negociar preços",
				ExpectedImpact: "Redução de 5-10% nos custos",
			},
		},
		Quality:  &QualityScore{Relevance: 7, Specificity: 6, Actionability: 8},
		Fallback: true,
	}
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

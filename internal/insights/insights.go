// Package insights enriches a financial analysis with AI-generated
// recommendations. It calls Gemini with an agricultural-consultant prompt,
// retries with exponential backoff, and degrades to deterministic rule-based
// insights when the model is unreachable or returns garbage.
package insights

// CategorySummary is the slice of a spend category fed to the model.
// Variation is nil when month-over-month data is unavailable.
type CategorySummary struct {
	Name         string   `json:"nome"`
	Total        float64  `json:"valor"`
	Percent      float64  `json:"percentual"`
	Variation    *float64 `json:"variacao_mensal"`
	Transactions int      `json:"transacoes"`
	AvgPerTx     float64  `json:"media"`
}

// AlertSummary is a trimmed alert included in the model context.
type AlertSummary struct {
	Severity string `json:"tipo"`
	Category string `json:"categoria"`
	Message  string `json:"mensagem"`
}

// FinancialContext carries everything the enricher needs about an analysis.
// It is deliberately decoupled from the analysis package so the dependency
// only flows one way.
type FinancialContext struct {
	TotalSpend       float64
	TransactionCount int
	PeriodStart      string
	PeriodEnd        string
	Categories       []CategorySummary
	Alerts           []AlertSummary
}

// KeyInsight is one actionable finding. Impact is nil when the model gave no
// monetary estimate.
type KeyInsight struct {
	Category string   `json:"categoria"`
	Kind     string   `json:"tipo"`
	Message  string   `json:"mensagem"`
	Impact   *float64 `json:"valor_impacto"`
	Action   string   `json:"acao_recomendada"`
	Horizon  string   `json:"prazo_sugerido"`
}

// CategoryReview is the model's read on a single category.
type CategoryReview struct {
	Category   string `json:"categoria"`
	Status     string `json:"status"`
	Analysis   string `json:"analise"`
	Benchmark  string `json:"benchmark"`
	Suggestion string `json:"sugestao"`
}

// SavingOpportunity is a concrete cost-cutting suggestion.
type SavingOpportunity struct {
	Description     string  `json:"descricao"`
	EstimatedSaving float64 `json:"economia_estimada"`
	HowTo           string  `json:"como_implementar"`
	Complexity      string  `json:"complexidade"`
}

// SeasonalAdvice is a recommendation tied to the agricultural calendar.
type SeasonalAdvice struct {
	Recommendation string `json:"recomendacao"`
	Rationale      string `json:"justificativa"`
	ExpectedImpact string `json:"impacto_esperado"`
}

// QualityScore is the model's self-assessment of its own output, 1-10 each.
type QualityScore struct {
	Relevance     int `json:"relevancia"`
	Specificity   int `json:"especificidade"`
	Actionability int `json:"acionabilidade"`
}

// Insights is the enrichment result. Section sizes are capped at 5, 5, 3
// and 3 respectively; Fallback marks rule-based output.
type Insights struct {
	KeyInsights     []KeyInsight        `json:"insights_principais"`
	CategoryReviews []CategoryReview    `json:"analise_categorias"`
	Opportunities   []SavingOpportunity `json:"oportunidades_economia"`
	SeasonalAdvice  []SeasonalAdvice    `json:"recomendacoes_sazonais"`
	Quality         *QualityScore       `json:"score_insights,omitempty"`
	Fallback        bool                `json:"_fallback,omitempty"`
}

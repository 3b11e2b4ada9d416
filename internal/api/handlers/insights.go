package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/rural-insights/internal/agro"
	"github.com/dvloznov/rural-insights/internal/analysis"
	"github.com/dvloznov/rural-insights/internal/api/middleware"
	"github.com/dvloznov/rural-insights/internal/insights"
	"github.com/dvloznov/rural-insights/internal/scenario"
	"github.com/dvloznov/rural-insights/internal/score"
)

// InsightsHandler serves the advisory endpoints: enrichment, agricultural
// context, tips, health score and scenario simulation.
type InsightsHandler struct {
	enricher  analysis.Enricher
	calc      *score.Calculator
	simulator *scenario.Simulator
	log       zerolog.Logger
}

// NewInsightsHandler creates a new insights handler. A nil enricher makes
// /enrich fall back to the rule-based insights.
func NewInsightsHandler(enricher analysis.Enricher, calc *score.Calculator, simulator *scenario.Simulator, log zerolog.Logger) *InsightsHandler {
	return &InsightsHandler{
		enricher:  enricher,
		calc:      calc,
		simulator: simulator,
		log:       log,
	}
}

// EnrichRequest carries an existing analysis to be enriched. The field names
// match the report JSON so a client can post the analysis back verbatim.
type EnrichRequest struct {
	TotalSpend       float64                `json:"total_gasto"`
	TransactionCount int                    `json:"numero_transacoes"`
	Period           analysis.Period        `json:"periodo_analise"`
	TopCategories    []analysis.TopCategory `json:"top_categorias"`
	Alerts           []analysis.Alert       `json:"alertas"`
}

// Enrich handles POST /api/insights/enrich.
func (h *InsightsHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	var req EnrichRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fc := financialContext(req)

	var ins *insights.Insights
	if h.enricher != nil {
		ins = h.enricher.Enrich(r.Context(), fc)
	} else {
		ins = insights.Fallback(fc, time.Now())
	}

	enrichmentType := analysis.EnrichmentAIPowered
	if ins.Fallback {
		enrichmentType = analysis.EnrichmentRuleBased
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"insights":        ins,
		"enrichment_type": enrichmentType,
	})
}

// Context handles GET /api/insights/context, returning the current
// agricultural reference data.
func (h *InsightsHandler) Context(w http.ResponseWriter, r *http.Request) {
	month := int(time.Now().Month())

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"mes_atual":         month,
		"epoca_agricola":    agro.SeasonForMonth(month),
		"alertas_sazonais":  agro.SeasonalAlerts(month),
		"culturas_info":     agro.Crops,
		"precos_referencia": agro.InputPrices,
		"benchmarks":        agro.Benchmarks,
	})
}

// Tips handles GET /api/insights/tips/{category}.
func (h *InsightsHandler) Tips(w http.ResponseWriter, r *http.Request, category string) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categoria": category,
		"tips":      agro.TipsForCategory(strings.ToUpper(category)),
	})
}

// HealthScore handles POST /api/insights/financial-health-score.
func (h *InsightsHandler) HealthScore(w http.ResponseWriter, r *http.Request) {
	var in score.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := h.calc.Calculate(in)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"score_data": result,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

// ScenarioSimulation handles POST /api/insights/scenario-simulation.
func (h *InsightsHandler) ScenarioSimulation(w http.ResponseWriter, r *http.Request) {
	var req scenario.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.simulator.Simulate(req)
	if err != nil {
		h.log.Warn().Err(err).Str("type", req.Type).Msg("Scenario simulation rejected")
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"simulation": result,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

// ScenarioTemplates handles GET /api/insights/scenario-templates.
func (h *InsightsHandler) ScenarioTemplates(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"templates": map[string]interface{}{
			"equipment": scenario.EquipmentTemplates,
			"hiring": map[string]interface{}{
				"worker_clt":   scenario.CLTWorker,
				"worker_daily": scenario.DailyWorker,
			},
			"rates":       scenario.Rates(),
			"seasonality": scenario.Seasonality(),
		},
	})
}

// financialContext converts the posted analysis into the enrichment input.
func financialContext(req EnrichRequest) insights.FinancialContext {
	cats := make([]insights.CategorySummary, 0, len(req.TopCategories))
	for _, c := range req.TopCategories {
		cats = append(cats, insights.CategorySummary{
			Name:         c.Name,
			Total:        c.Total,
			Percent:      c.Percent,
			Variation:    c.MonthlyVariation,
			Transactions: c.Transactions,
			AvgPerTx:     c.AvgPerTx,
		})
	}

	sums := make([]insights.AlertSummary, 0, len(req.Alerts))
	for _, a := range req.Alerts {
		sums = append(sums, insights.AlertSummary{
			Severity: string(a.Severity),
			Category: a.Category,
			Message:  a.Message,
		})
	}

	return insights.FinancialContext{
		TotalSpend:       req.TotalSpend,
		TransactionCount: req.TransactionCount,
		PeriodStart:      req.Period.Start,
		PeriodEnd:        req.Period.End,
		Categories:       cats,
		Alerts:           sums,
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/rural-insights/internal/scenario"
	"github.com/dvloznov/rural-insights/internal/score"
)

func newInsightsHandler() *InsightsHandler {
	return NewInsightsHandler(nil, score.NewCalculator(), scenario.NewSimulator(), zerolog.Nop())
}

func TestEnrichFallsBackWithoutEnricher(t *testing.T) {
	h := newInsightsHandler()

	body := `{
		"total_gasto": 10000,
		"numero_transacoes": 20,
		"periodo_analise": {"inicio": "01/01/2024", "fim": "31/03/2024"},
		"top_categorias": [
			{"nome": "COMBUSTÍVEL", "valor": 4000, "percentual": 40, "transacoes": 8, "media_por_transacao": 500}
		],
		"alertas": []
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/insights/enrich", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Enrich(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success        bool            `json:"success"`
		Insights       json.RawMessage `json:"insights"`
		EnrichmentType string          `json:"enrichment_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.EnrichmentType != "rule_based" {
		t.Errorf("enrichment_type = %q, want rule_based", resp.EnrichmentType)
	}
	if len(resp.Insights) == 0 {
		t.Error("insights missing")
	}
}

func TestEnrichRejectsBadBody(t *testing.T) {
	h := newInsightsHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/insights/enrich", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.Enrich(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestContextReturnsAgriculturalData(t *testing.T) {
	h := newInsightsHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/insights/context", nil)
	rec := httptest.NewRecorder()
	h.Context(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	month, ok := resp["mes_atual"].(float64)
	if !ok || month < 1 || month > 12 {
		t.Errorf("mes_atual = %v, want 1-12", resp["mes_atual"])
	}
	if resp["epoca_agricola"] == "" {
		t.Error("epoca_agricola missing")
	}
	if _, ok := resp["culturas_info"].(map[string]interface{}); !ok {
		t.Error("culturas_info missing")
	}
	alerts, ok := resp["alertas_sazonais"].([]interface{})
	if !ok || len(alerts) == 0 {
		t.Errorf("alertas_sazonais = %v, want non-empty list", resp["alertas_sazonais"])
	}
}

func TestTipsKnownCategory(t *testing.T) {
	h := newInsightsHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/insights/tips/combustível", nil)
	rec := httptest.NewRecorder()
	h.Tips(rec, req, "combustível")

	var resp struct {
		Category string   `json:"categoria"`
		Tips     []string `json:"tips"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Category != "combustível" {
		t.Errorf("categoria = %q, want the raw path value", resp.Category)
	}
	if len(resp.Tips) != 4 {
		t.Errorf("got %d tips, want 4", len(resp.Tips))
	}
	if !strings.Contains(resp.Tips[1], "biodiesel") {
		t.Errorf("tips = %v, want the fuel-specific advice", resp.Tips)
	}
}

func TestTipsUnknownCategoryGetsGenericAdvice(t *testing.T) {
	h := newInsightsHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/insights/tips/helicóptero", nil)
	rec := httptest.NewRecorder()
	h.Tips(rec, req, "helicóptero")

	var resp struct {
		Tips []string `json:"tips"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Tips) != 4 {
		t.Errorf("got %d tips, want 4 generic tips", len(resp.Tips))
	}
	if !strings.Contains(resp.Tips[0], "Monitore") {
		t.Errorf("tips = %v, want the generic advice", resp.Tips)
	}
}

func TestHealthScore(t *testing.T) {
	h := newInsightsHandler()

	body := `{
		"top_categories": [
			{"categoria": "NUTRIÇÃO", "valor": 3000},
			{"categoria": "COMBUSTÍVEL", "valor": 2000}
		],
		"monthly_evolution": [
			{"mes": "2024-01", "valor": 2500},
			{"mes": "2024-02", "valor": 2500}
		],
		"anomalies": []
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/insights/financial-health-score", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HealthScore(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success   bool   `json:"success"`
		Timestamp string `json:"timestamp"`
		ScoreData struct {
			Total float64 `json:"score_total"`
			Level string  `json:"nivel"`
		} `json:"score_data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.ScoreData.Total < 0 || resp.ScoreData.Total > 100 {
		t.Errorf("score_total = %v, want 0-100", resp.ScoreData.Total)
	}
	if resp.ScoreData.Level == "" {
		t.Error("nivel missing")
	}
	if resp.Timestamp == "" {
		t.Error("timestamp missing")
	}
}

func TestScenarioSimulationEquipment(t *testing.T) {
	h := newInsightsHandler()

	body := `{"type": "equipment_purchase", "equipment": "tractor_used", "current_monthly_flow": 20000}`
	req := httptest.NewRequest(http.MethodPost, "/api/insights/scenario-simulation", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ScenarioSimulation(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success    bool `json:"success"`
		Simulation struct {
			Equipment struct {
				Name string  `json:"name"`
				Cost float64 `json:"cost"`
			} `json:"equipment"`
		} `json:"simulation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.Simulation.Equipment.Cost != 250000 {
		t.Errorf("equipment cost = %v, want 250000", resp.Simulation.Equipment.Cost)
	}
}

func TestScenarioSimulationUnknownType(t *testing.T) {
	h := newInsightsHandler()

	body := `{"type": "time_travel"}`
	req := httptest.NewRequest(http.MethodPost, "/api/insights/scenario-simulation", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ScenarioSimulation(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestScenarioTemplates(t *testing.T) {
	h := newInsightsHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/insights/scenario-templates", nil)
	rec := httptest.NewRecorder()
	h.ScenarioTemplates(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Success   bool `json:"success"`
		Templates struct {
			Equipment   map[string]json.RawMessage `json:"equipment"`
			Hiring      map[string]json.RawMessage `json:"hiring"`
			Rates       map[string]float64         `json:"rates"`
			Seasonality map[string]float64         `json:"seasonality"`
		} `json:"templates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if _, ok := resp.Templates.Equipment["tractor_new"]; !ok {
		t.Error("templates missing tractor_new")
	}
	if _, ok := resp.Templates.Hiring["worker_clt"]; !ok {
		t.Error("templates missing worker_clt")
	}
	if got := resp.Templates.Rates["rural_financing"]; got != 0.08 {
		t.Errorf("rural_financing rate = %v, want 0.08", got)
	}
	if len(resp.Templates.Seasonality) != 12 {
		t.Errorf("seasonality has %d entries, want 12", len(resp.Templates.Seasonality))
	}
}

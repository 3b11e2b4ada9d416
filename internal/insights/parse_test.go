package insights

import (
	"strings"
	"testing"
)

func TestParseInsights_CleanJSON(t *testing.T) {
	raw := `{
		"insights_principais": [{"categoria": "COMBUSTÍVEL", "tipo": "economia", "mensagem": "ok", "valor_impacto": 120.5}],
		"analise_categorias": [],
		"oportunidades_economia": [],
		"recomendacoes_sazonais": [],
		"score_insights": {"relevancia": 8, "especificidade": 7, "acionabilidade": 9}
	}`

	ins, err := parseInsights(raw)
	if err != nil {
		t.Fatalf("parseInsights failed: %v", err)
	}

	if len(ins.KeyInsights) != 1 {
		t.Fatalf("expected 1 key insight, got %d", len(ins.KeyInsights))
	}
	ki := ins.KeyInsights[0]
	if ki.Category != "COMBUSTÍVEL" || ki.Impact == nil || *ki.Impact != 120.5 {
		t.Errorf("unexpected key insight: %+v", ki)
	}
	if ins.Quality == nil || ins.Quality.Relevance != 8 {
		t.Errorf("unexpected quality score: %+v", ins.Quality)
	}
	if ins.Fallback {
		t.Error("parsed insights must not carry the fallback marker")
	}
}

func TestParseInsights_MarkdownFences(t *testing.T) {
	raw := "```json\n{\"insights_principais\": [{\"mensagem\": \"fenced\"}]}\n```"

	ins, err := parseInsights(raw)
	if err != nil {
		t.Fatalf("parseInsights failed: %v", err)
	}
	if len(ins.KeyInsights) != 1 || ins.KeyInsights[0].Message != "fenced" {
		t.Errorf("fenced JSON not parsed: %+v", ins.KeyInsights)
	}
}

func TestParseInsights_MissingSectionsDefaultEmpty(t *testing.T) {
	ins, err := parseInsights(`{"insights_principais": []}`)
	if err != nil {
		t.Fatalf("parseInsights failed: %v", err)
	}

	if ins.CategoryReviews == nil || ins.Opportunities == nil || ins.SeasonalAdvice == nil {
		t.Error("missing sections must default to empty slices")
	}
}

func TestParseInsights_CapsSections(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"insights_principais": [`)
	for i := 0; i < 8; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"mensagem": "x"}`)
	}
	b.WriteString(`], "oportunidades_economia": [{},{},{},{},{}]}`)

	ins, err := parseInsights(b.String())
	if err != nil {
		t.Fatalf("parseInsights failed: %v", err)
	}
	if len(ins.KeyInsights) != maxKeyInsights {
		t.Errorf("key insights = %d, want %d", len(ins.KeyInsights), maxKeyInsights)
	}
	if len(ins.Opportunities) != maxOpportunities {
		t.Errorf("opportunities = %d, want %d", len(ins.Opportunities), maxOpportunities)
	}
}

func TestParseInsights_Garbage(t *testing.T) {
	if _, err := parseInsights("not json at all"); err == nil {
		t.Error("expected error for non-JSON output")
	}
}

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced no lang", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose around", "Here you go:\n{\"a\": 1}\nHope it helps!", `{"a": 1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanModelJSON(tc.in); got != tc.want {
				t.Errorf("cleanModelJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

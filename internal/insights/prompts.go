package insights

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dvloznov/rural-insights/internal/agro"
)

const systemPrompt = `Você é um consultor financeiro agrícola sênior com 20 anos de experiência
trabalhando com pequenos e médios produtores rurais brasileiros. Você conhece profundamente:

- Ciclos de produção agrícola e pecuária
- Sazonalidade de custos e receitas rurais
- Preços médios de insumos por região
- Melhores práticas de gestão financeira rural
- Oportunidades de economia e otimização

Sua missão é analisar dados financeiros e fornecer insights ESPECÍFICOS e ACIONÁVEIS
que gerem economia real. Sempre:

1. Use valores monetários específicos (R$)
2. Sugira ações práticas e imediatas
3. Considere o contexto sazonal agrícola
4. Compare com benchmarks do setor
5. Fale em linguagem simples e direta

Responda SEMPRE em formato JSON estruturado.`

const responseFormat = `{
    "insights_principais": [
        {
            "categoria": "nome da categoria",
            "tipo": "economia|alerta|oportunidade",
            "mensagem": "insight específico e claro",
            "valor_impacto": número em reais,
            "acao_recomendada": "ação prática e específica",
            "prazo_sugerido": "imediato|30 dias|90 dias"
        }
    ],
    "analise_categorias": [
        {
            "categoria": "nome",
            "status": "normal|atencao|critico",
            "analise": "análise específica desta categoria",
            "benchmark": "comparação com média do setor",
            "sugestao": "como otimizar esta categoria"
        }
    ],
    "oportunidades_economia": [
        {
            "descricao": "oportunidade específica",
            "economia_estimada": número em reais,
            "como_implementar": "passos práticos",
            "complexidade": "facil|media|complexa"
        }
    ],
    "recomendacoes_sazonais": [
        {
            "recomendacao": "ação baseada na época do ano",
            "justificativa": "por que fazer isso agora",
            "impacto_esperado": "resultado esperado"
        }
    ],
    "score_insights": {
        "relevancia": 1-10,
        "especificidade": 1-10,
        "acionabilidade": 1-10
    }
}`

// Only the five most relevant alerts go into the prompt.
const promptAlertLimit = 5

type promptSummary struct {
	TotalSpend       float64           `json:"total_gasto"`
	TransactionCount int               `json:"numero_transacoes"`
	AvgPerTx         float64           `json:"media_por_transacao"`
	Period           map[string]string `json:"periodo"`
}

type promptMetadata struct {
	CurrentMonth string `json:"mes_atual"`
	Season       string `json:"epoca_ano"`
	Region       string `json:"regiao"`
}

type promptContext struct {
	Summary    promptSummary     `json:"resumo_financeiro"`
	Categories []CategorySummary `json:"top_categorias"`
	Alerts     []AlertSummary    `json:"alertas_detectados"`
	Metadata   promptMetadata    `json:"metadata"`
}

// userPrompt renders the financial context as the model's user message.
func userPrompt(fc FinancialContext, now time.Time) (string, error) {
	avg := 0.0
	if fc.TransactionCount > 0 {
		avg = fc.TotalSpend / float64(fc.TransactionCount)
	}

	alerts := fc.Alerts
	if len(alerts) > promptAlertLimit {
		alerts = alerts[:promptAlertLimit]
	}

	pc := promptContext{
		Summary: promptSummary{
			TotalSpend:       fc.TotalSpend,
			TransactionCount: fc.TransactionCount,
			AvgPerTx:         avg,
			Period:           map[string]string{"inicio": fc.PeriodStart, "fim": fc.PeriodEnd},
		},
		Categories: fc.Categories,
		Alerts:     alerts,
		Metadata: promptMetadata{
			CurrentMonth: now.Month().String(),
			Season:       string(agro.CurrentSeason(now)),
			Region:       "Brasil",
		},
	}

	data, err := json.MarshalIndent(pc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("userPrompt: marshal context: %w", err)
	}

	return fmt.Sprintf(`Analise os seguintes dados financeiros rurais e gere insights valiosos:

DADOS FINANCEIROS:
%s

Gere uma análise no seguinte formato JSON:
%s`, data, responseFormat), nil
}

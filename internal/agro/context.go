// Package agro holds the static Brazilian agricultural reference data used to
// contextualize financial analyses: crop calendars, input price references,
// seasonal alerts, category tips and property-size benchmarks.
//
// Everything here is configuration data, loaded at compile time and never
// mutated.
package agro

import "time"

// Season identifies the coarse agricultural season for a calendar month.
type Season string

const (
	SeasonPlanting    Season = "Plantio (safra de verão)"
	SeasonDevelopment Season = "Desenvolvimento/Tratos culturais"
	SeasonHarvest     Season = "Colheita/Entressafra"
	SeasonPlanning    Season = "Preparo do solo/Planejamento"
)

// SeasonForMonth maps a month number (1-12) to its agricultural season.
// Months outside 1-12 return SeasonPlanning.
func SeasonForMonth(month int) Season {
	switch month {
	case 10, 11, 12, 1:
		return SeasonPlanting
	case 2, 3, 4:
		return SeasonDevelopment
	case 5, 6, 7:
		return SeasonHarvest
	default:
		return SeasonPlanning
	}
}

// CurrentSeason returns the season for the given time.
func CurrentSeason(now time.Time) Season {
	return SeasonForMonth(int(now.Month()))
}

// Crop describes planting/harvest windows and average per-hectare cost for a
// main crop.
type Crop struct {
	Planting       string  `json:"plantio,omitempty"`
	Harvest        string  `json:"colheita,omitempty"`
	AvgCostPerHa   float64 `json:"custos_medios_ha,omitempty"`
	AvgCostPerHead float64 `json:"custos_medios_cabeca_mes,omitempty"`
}

// Crops is the reference calendar for the main crops.
var Crops = map[string]Crop{
	"soja":     {Planting: "outubro-dezembro", Harvest: "fevereiro-abril", AvgCostPerHa: 4500.00},
	"milho":    {Planting: "janeiro-março", Harvest: "junho-agosto", AvgCostPerHa: 3800.00},
	"cafe":     {Planting: "outubro-dezembro", Harvest: "maio-setembro", AvgCostPerHa: 12000.00},
	"pecuaria": {AvgCostPerHead: 45.00},
}

// InputPrice is a reference price for a farm input.
type InputPrice struct {
	Unit      string  `json:"unidade"`
	AvgPrice  float64 `json:"preco_medio"`
	Tolerance float64 `json:"variacao_aceitavel"`
}

// InputPrices holds reference prices grouped by spend category.
var InputPrices = map[string]map[string]InputPrice{
	"COMBUSTÍVEL": {
		"diesel":   {Unit: "litro", AvgPrice: 6.20, Tolerance: 0.15},
		"gasolina": {Unit: "litro", AvgPrice: 5.80, Tolerance: 0.20},
	},
	"MÃO DE OBRA": {
		"diarista":   {Unit: "dia", AvgPrice: 150.00, Tolerance: 0.20},
		"mensalista": {Unit: "mês", AvgPrice: 2500.00, Tolerance: 0.15},
	},
	"NUTRIÇÃO": {
		"racao_bovino": {Unit: "kg", AvgPrice: 2.10, Tolerance: 0.15},
		"sal_mineral":  {Unit: "kg", AvgPrice: 3.50, Tolerance: 0.15},
	},
}

// monthlyAlerts lists the seasonal reminders per month (index 1-12).
var monthlyAlerts = map[int][]string{
	1:  {"Preparar para plantio safrinha", "Negociar insumos"},
	2:  {"Monitorar pragas", "Planejar colheita"},
	3:  {"Intensificar colheita", "Comercializar produção"},
	4:  {"Finalizar colheita", "Preparar entressafra"},
	5:  {"Manutenção equipamentos", "Planejar próxima safra"},
	6:  {"Comprar insumos antecipado", "Reformar pastagens"},
	7:  {"Preparar solo", "Contratar mão de obra"},
	8:  {"Iniciar preparo plantio", "Revisar maquinário"},
	9:  {"Últimos preparos", "Garantir sementes"},
	10: {"Iniciar plantio", "Monitorar clima"},
	11: {"Continuar plantio", "Aplicar defensivos"},
	12: {"Finalizar plantio", "Planejar tratos culturais"},
}

// SeasonalAlerts returns the reminders for a month number, or nil when the
// month is out of range.
func SeasonalAlerts(month int) []string {
	return monthlyAlerts[month]
}

// categoryTips maps upper-cased category names to practical saving tips.
var categoryTips = map[string][]string{
	"COMBUSTÍVEL": {
		"Faça manutenção preventiva regularmente para melhorar consumo",
		"Considere biodiesel como alternativa mais barata",
		"Organize rotas para minimizar deslocamentos",
		"Negocie contratos anuais com postos",
	},
	"MÃO DE OBRA FIXA": {
		"Invista em treinamento para aumentar produtividade",
		"Considere mecanização para tarefas repetitivas",
		"Implemente bonificação por produtividade",
		"Avalie terceirização de atividades não essenciais",
	},
	"NUTRIÇÃO": {
		"Faça análise bromatológica regular da ração",
		"Ajuste formulação conforme fase do animal",
		"Evite desperdício com cochos adequados",
		"Considere produzir parte da ração na propriedade",
	},
	"COMPRA DE REPOSIÇÃO": {
		"Mantenha estoque mínimo de peças críticas",
		"Faça compras em conjunto com vizinhos",
		"Cadastre-se em cooperativas para melhores preços",
		"Planeje substituições antes da quebra",
	},
	"MANUTENÇÃO DE MÁQUINAS": {
		"Siga rigorosamente o plano de manutenção preventiva",
		"Treine operadores para cuidados básicos",
		"Mantenha histórico detalhado de cada equipamento",
		"Considere contratos de manutenção para equipamentos críticos",
	},
}

// genericTips is returned for categories without a dedicated entry.
var genericTips = []string{
	"Monitore gastos mensalmente",
	"Compare preços com outros fornecedores",
	"Busque alternativas mais econômicas",
	"Negocie pagamentos à vista",
}

// TipsForCategory returns saving tips for a category. Lookup is by the
// upper-cased name; unknown categories get the generic tips.
func TipsForCategory(category string) []string {
	if tips, ok := categoryTips[category]; ok {
		return tips
	}
	return genericTips
}

// PercentRange is an inclusive ideal share range, in percent of total spend.
type PercentRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Benchmarks holds ideal category shares by property size.
var Benchmarks = map[string]map[string]PercentRange{
	"pequeno": {
		"MÃO DE OBRA": {15, 25},
		"COMBUSTÍVEL": {8, 15},
		"NUTRIÇÃO":    {20, 35},
		"MANUTENÇÃO":  {5, 10},
		"DEFENSIVOS":  {10, 20},
	},
	"medio": {
		"MÃO DE OBRA": {12, 20},
		"COMBUSTÍVEL": {10, 18},
		"NUTRIÇÃO":    {25, 40},
		"MANUTENÇÃO":  {8, 15},
		"DEFENSIVOS":  {15, 25},
	},
}

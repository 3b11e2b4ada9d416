package scenario

// EquipmentTemplate describes a predefined equipment or infrastructure
// purchase.
type EquipmentTemplate struct {
	Name             string  `json:"name"`
	Cost             float64 `json:"cost"`
	MonthlySavings   float64 `json:"monthly_savings"`
	UsefulLifeYears  int     `json:"useful_life"`
	MaintenanceCost  float64 `json:"maintenance_cost"`
	DepreciationRate float64 `json:"depreciation_rate"`
}

// CLTWorkerTemplate parametrizes a formal hire.
type CLTWorkerTemplate struct {
	Name              string  `json:"name"`
	MonthlyCost       float64 `json:"monthly_cost"`
	ChargesMultiplier float64 `json:"charges_multiplier"`
	ProductivityGain  float64 `json:"productivity_gain"`
}

// DailyWorkerTemplate parametrizes day-labor hiring.
type DailyWorkerTemplate struct {
	Name             string  `json:"name"`
	DailyCost        float64 `json:"daily_cost"`
	DaysPerMonth     float64 `json:"days_per_month"`
	ProductivityGain float64 `json:"productivity_gain"`
}

// EquipmentTemplates holds the predefined purchase scenarios, keyed by the
// identifier accepted in Request.Equipment / Request.Investment.
var EquipmentTemplates = map[string]EquipmentTemplate{
	"tractor_new": {
		Name:             "Trator Novo (120cv)",
		Cost:             450000,
		MonthlySavings:   8000,
		UsefulLifeYears:  10,
		MaintenanceCost:  2500,
		DepreciationRate: 0.10,
	},
	"tractor_used": {
		Name:             "Trator Usado (120cv)",
		Cost:             250000,
		MonthlySavings:   6000,
		UsefulLifeYears:  6,
		MaintenanceCost:  4000,
		DepreciationRate: 0.15,
	},
	"irrigation_system": {
		Name:             "Sistema Irrigação (10ha)",
		Cost:             120000,
		MonthlySavings:   3500,
		UsefulLifeYears:  15,
		MaintenanceCost:  800,
		DepreciationRate: 0.067,
	},
	"grain_silo": {
		Name:             "Silo Graneleiro (500t)",
		Cost:             180000,
		MonthlySavings:   4200,
		UsefulLifeYears:  20,
		MaintenanceCost:  600,
		DepreciationRate: 0.05,
	},
}

// CLTWorker is the reference formal-hire profile.
var CLTWorker = CLTWorkerTemplate{
	Name:              "Funcionário CLT",
	MonthlyCost:       3500,
	ChargesMultiplier: 1.68,
	ProductivityGain:  2800,
}

// DailyWorker is the reference day-labor profile.
var DailyWorker = DailyWorkerTemplate{
	Name:             "Diarista",
	DailyCost:        120,
	DaysPerMonth:     20,
	ProductivityGain: 2200,
}

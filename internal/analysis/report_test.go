package analysis

import (
	"strings"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{950.5, "950.50"},
		{1234.56, "1,234.56"},
		{1234567.8, "1,234,567.80"},
		{-4200, "-4,200.00"},
	}

	for _, tc := range tests {
		if got := formatMoney(tc.in); got != tc.want {
			t.Errorf("formatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExecutiveSummary(t *testing.T) {
	txs := []Transaction{
		tx("COMBUSTÍVEL", 150, "15/01/2024"),
		tx("COMBUSTÍVEL", 200, "15/02/2024"),
		tx("NUTRIÇÃO", 50, "10/01/2024"),
	}
	agg := Aggregate(txs)
	alerts := GenerateAlerts(txs, agg.TopCategories)

	summary := ExecutiveSummary(agg, alerts)

	if !strings.Contains(summary, "3 transações") {
		t.Errorf("summary missing transaction count: %q", summary)
	}
	if !strings.Contains(summary, "R$ 400.00") {
		t.Errorf("summary missing total: %q", summary)
	}
	if !strings.Contains(summary, "'COMBUSTÍVEL'") {
		t.Errorf("summary missing dominant category: %q", summary)
	}
	if !strings.Contains(summary, "alertas urgentes") {
		t.Errorf("summary missing urgent alert mention: %q", summary)
	}
	if !strings.Contains(summary, "redução de até R$") {
		t.Errorf("summary missing savings estimate: %q", summary)
	}
}

func TestExecutiveSummary_NoAlerts(t *testing.T) {
	txs := []Transaction{
		tx("A", 10, "01/01/2024"),
		tx("B", 10, "01/01/2024"),
		tx("C", 10, "01/01/2024"),
		tx("D", 10, "01/01/2024"),
		tx("E", 10, "01/01/2024"),
	}
	agg := Aggregate(txs)

	summary := ExecutiveSummary(agg, nil)

	if strings.Contains(summary, "urgentes") {
		t.Errorf("summary must not mention urgent alerts: %q", summary)
	}
	if strings.Contains(summary, "redução") {
		t.Errorf("summary must not mention savings without alerts: %q", summary)
	}
}

package analysis

import (
	"errors"
	"strings"
	"testing"
)

func ledgerCSV(rows ...string) []byte {
	lines := append([]string{"descricao;valor;data;operacao;realizado"}, rows...)
	return []byte(strings.Join(lines, "\n") + "\n")
}

func TestNormalize_FiltersAndAbs(t *testing.T) {
	content := ledgerCSV(
		"COMBUSTÍVEL;-150.00;15/01/2024;SAÍDA;SIM",
		"COMBUSTÍVEL;200.00;15/02/2024;SAÍDA;SIM",
		"VENDA DE GADO;5000.00;10/01/2024;ENTRADA;SIM",
		"NUTRIÇÃO;-300.00;20/01/2024;SAÍDA;NÃO",
	)

	txs, err := Normalize(content)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if len(txs) != 2 {
		t.Fatalf("expected 2 realized outflows, got %d", len(txs))
	}
	if !txs[0].Amount.Equal(txs[0].Amount.Abs()) {
		t.Error("amount not absolute")
	}
	if got := txs[0].Amount.String(); got != "150" {
		t.Errorf("first amount = %s, want 150", got)
	}
	if got := txs[1].Amount.String(); got != "200" {
		t.Errorf("second amount = %s, want 200", got)
	}
	if txs[0].Description != "COMBUSTÍVEL" {
		t.Errorf("description = %q, want COMBUSTÍVEL", txs[0].Description)
	}
}

func TestNormalize_CaseAndWhitespace(t *testing.T) {
	content := ledgerCSV("  combustível ;-50.00;01/03/2024; saída ; sim ")

	txs, err := Normalize(content)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if txs[0].Description != "COMBUSTÍVEL" {
		t.Errorf("description = %q, want COMBUSTÍVEL", txs[0].Description)
	}
}

func TestNormalize_DropsBadRows(t *testing.T) {
	content := ledgerCSV(
		"COMBUSTÍVEL;abc;15/01/2024;SAÍDA;SIM",
		"COMBUSTÍVEL;-10.00;2024-01-15;SAÍDA;SIM",
		";-10.00;15/01/2024;SAÍDA;SIM",
		"NUTRIÇÃO;-10.00;15/01/2024;SAÍDA;SIM",
	)

	txs, err := Normalize(content)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected only the valid row, got %d", len(txs))
	}
	if txs[0].Description != "NUTRIÇÃO" {
		t.Errorf("description = %q, want NUTRIÇÃO", txs[0].Description)
	}
}

func TestNormalize_NoOutflows(t *testing.T) {
	content := ledgerCSV("VENDA;100.00;15/01/2024;ENTRADA;SIM")

	_, err := Normalize(content)
	if !errors.Is(err, ErrNoOutflows) {
		t.Errorf("expected ErrNoOutflows, got %v", err)
	}
}

func TestNormalize_MissingColumn(t *testing.T) {
	content := []byte("descricao;valor;data;operacao\nCOMBUSTÍVEL;-10.00;15/01/2024;SAÍDA\n")

	_, err := Normalize(content)
	if err == nil {
		t.Fatal("expected error for missing column, got nil")
	}
	if !strings.Contains(err.Error(), "realizado") {
		t.Errorf("error should name the missing column, got %v", err)
	}
}

func TestNormalize_Latin1Content(t *testing.T) {
	utf8CSV := string(ledgerCSV("COMBUSTÍVEL;-150.00;15/01/2024;SAÍDA;SIM"))

	// Re-encode to latin1 byte-by-byte.
	var latin1 []byte
	for _, r := range utf8CSV {
		latin1 = append(latin1, byte(r))
	}

	txs, err := Normalize(latin1)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(txs) != 1 || txs[0].Description != "COMBUSTÍVEL" {
		t.Errorf("latin1 content not decoded correctly: %+v", txs)
	}
}

package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one realized outflow from the ledger, already normalized:
// upper-cased description, absolute amount, parsed date.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// ErrNoOutflows is returned when the file parses but contains no realized
// outflow rows.
var ErrNoOutflows = errors.New("nenhuma transação de saída encontrada no arquivo")

const dateLayout = "02/01/2006"

var requiredColumns = []string{"descricao", "valor", "data", "operacao", "realizado"}

// Normalize decodes the raw CSV bytes, parses the semicolon-delimited rows
// and returns the realized outflows (operacao SAÍDA, realizado SIM) with
// absolute amounts. Rows with an unparseable amount or date, or an empty
// description, are dropped silently. Structural problems (bad delimiter,
// missing columns) fail the whole file.
func Normalize(content []byte) ([]Transaction, error) {
	text := DecodeText(content, DetectEncoding(content))

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("normalize: reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("normalize: missing required column %q", name)
		}
	}

	var txs []Transaction
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("normalize: reading row: %w", err)
		}

		tx, ok := parseRow(record, cols)
		if !ok {
			continue
		}
		txs = append(txs, tx)
	}

	if len(txs) == 0 {
		return nil, ErrNoOutflows
	}
	return txs, nil
}

func parseRow(record []string, cols map[string]int) (Transaction, bool) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(record) {
			return ""
		}
		return strings.ToUpper(strings.TrimSpace(record[i]))
	}

	desc := field("descricao")
	if desc == "" {
		return Transaction{}, false
	}
	if field("operacao") != "SAÍDA" || field("realizado") != "SIM" {
		return Transaction{}, false
	}

	amount, err := decimal.NewFromString(field("valor"))
	if err != nil {
		return Transaction{}, false
	}

	date, err := time.Parse(dateLayout, field("data"))
	if err != nil {
		return Transaction{}, false
	}

	return Transaction{Date: date, Description: desc, Amount: amount.Abs()}, true
}

package analysis

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Period is the date range covered by the analyzed transactions, formatted
// DD/MM/YYYY.
type Period struct {
	Start string `json:"inicio"`
	End   string `json:"fim"`
}

// TopCategory is one of the largest spend categories with its aggregates.
// MonthlyVariation is nil when the category has fewer than two months of
// data or the previous month's total is zero.
type TopCategory struct {
	Name             string   `json:"nome"`
	Total            float64  `json:"valor"`
	Percent          float64  `json:"percentual"`
	Transactions     int      `json:"transacoes"`
	AvgPerTx         float64  `json:"media_por_transacao"`
	MonthlyVariation *float64 `json:"variacao_mensal"`
}

// MonthlyPoint is one month of spend in a category's evolution series.
// Month is formatted YYYY-MM.
type MonthlyPoint struct {
	Month        string  `json:"mes"`
	Total        float64 `json:"valor"`
	Transactions int     `json:"transacoes"`
}

// Aggregation holds everything derived from the normalized transactions
// before alerting and enrichment.
type Aggregation struct {
	TotalSpend       decimal.Decimal
	TransactionCount int
	Period           Period
	TopCategories    []TopCategory
	MonthlyEvolution map[string][]MonthlyPoint
}

const topCategoryLimit = 5

// Aggregate computes totals, the analysis period, the top categories and the
// per-category monthly evolution. txs must be non-empty.
func Aggregate(txs []Transaction) Aggregation {
	total := decimal.Zero
	minDate, maxDate := txs[0].Date, txs[0].Date
	for _, tx := range txs {
		total = total.Add(tx.Amount)
		if tx.Date.Before(minDate) {
			minDate = tx.Date
		}
		if tx.Date.After(maxDate) {
			maxDate = tx.Date
		}
	}

	top := topCategories(txs, total)

	return Aggregation{
		TotalSpend:       total,
		TransactionCount: len(txs),
		Period: Period{
			Start: minDate.Format(dateLayout),
			End:   maxDate.Format(dateLayout),
		},
		TopCategories:    top,
		MonthlyEvolution: monthlyEvolution(txs, top),
	}
}

type categoryTotals struct {
	name  string
	total decimal.Decimal
	count int
}

// categoriesByTotal groups transactions by description and returns the
// groups sorted by total descending. Equal totals are broken by name
// ascending so the ranking is stable across runs.
func categoriesByTotal(txs []Transaction) []categoryTotals {
	byName := make(map[string]*categoryTotals)
	for _, tx := range txs {
		c, ok := byName[tx.Description]
		if !ok {
			c = &categoryTotals{name: tx.Description}
			byName[tx.Description] = c
		}
		c.total = c.total.Add(tx.Amount)
		c.count++
	}

	cats := make([]categoryTotals, 0, len(byName))
	for _, c := range byName {
		cats = append(cats, *c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if !cats[i].total.Equal(cats[j].total) {
			return cats[i].total.GreaterThan(cats[j].total)
		}
		return cats[i].name < cats[j].name
	})
	return cats
}

func topCategories(txs []Transaction, grandTotal decimal.Decimal) []TopCategory {
	cats := categoriesByTotal(txs)
	if len(cats) > topCategoryLimit {
		cats = cats[:topCategoryLimit]
	}

	top := make([]TopCategory, 0, len(cats))
	for _, c := range cats {
		catTotal := c.total.InexactFloat64()
		top = append(top, TopCategory{
			Name:             c.name,
			Total:            round2(catTotal),
			Percent:          round2(catTotal / grandTotal.InexactFloat64() * 100),
			Transactions:     c.count,
			AvgPerTx:         round2(catTotal / float64(c.count)),
			MonthlyVariation: monthlyVariation(txs, c.name),
		})
	}
	return top
}

// monthlyVariation computes the percent change between the category's last
// two months with data. Months without transactions do not count.
func monthlyVariation(txs []Transaction, category string) *float64 {
	months := monthlyTotals(txs, category)
	if len(months) < 2 {
		return nil
	}

	last := months[len(months)-1].total
	prev := months[len(months)-2].total
	if prev.IsZero() {
		return nil
	}

	v := round2(last.Sub(prev).Div(prev).InexactFloat64() * 100)
	return &v
}

type monthTotal struct {
	month string
	total decimal.Decimal
	count int
}

func monthlyTotals(txs []Transaction, category string) []monthTotal {
	byMonth := make(map[string]*monthTotal)
	for _, tx := range txs {
		if tx.Description != category {
			continue
		}
		key := tx.Date.Format("2006-01")
		m, ok := byMonth[key]
		if !ok {
			m = &monthTotal{month: key}
			byMonth[key] = m
		}
		m.total = m.total.Add(tx.Amount)
		m.count++
	}

	months := make([]monthTotal, 0, len(byMonth))
	for _, m := range byMonth {
		months = append(months, *m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].month < months[j].month })
	return months
}

func monthlyEvolution(txs []Transaction, top []TopCategory) map[string][]MonthlyPoint {
	evolution := make(map[string][]MonthlyPoint, len(top))
	for _, cat := range top {
		months := monthlyTotals(txs, cat.Name)
		points := make([]MonthlyPoint, 0, len(months))
		for _, m := range months {
			points = append(points, MonthlyPoint{
				Month:        m.month,
				Total:        m.total.InexactFloat64(),
				Transactions: m.count,
			})
		}
		evolution[cat.Name] = points
	}
	return evolution
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

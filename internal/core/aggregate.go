package core

import "sort"

// TotalsByCategory groups expense records by category and sums their net
// amounts, highest total first. Ties keep first-encounter order.
//
// Every record's amount is coerced before any grouping happens; a single
// non-numeric value aborts the whole aggregation with a *DataFormatError so
// a broken upstream record never produces a partial chart.
func TotalsByCategory(expenses []Expense) ([]CategoryTotal, error) {
	byCat := map[string]int64{}
	order := make([]string, 0)
	for _, e := range expenses {
		cents, err := ParseAmountToCents(e.Amount)
		if err != nil {
			return nil, &DataFormatError{Field: "valorLiquido", Value: e.Amount, Err: err}
		}
		if _, seen := byCat[e.Category]; !seen {
			order = append(order, e.Category)
		}
		byCat[e.Category] += cents
	}
	totals := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		totals = append(totals, CategoryTotal{Name: name, Amount: Money{Cents: byCat[name]}})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount.Cents > totals[j].Amount.Cents
	})
	return totals, nil
}

// SumTotals adds up a slice of category totals.
func SumTotals(totals []CategoryTotal) Money {
	var cents int64
	for _, t := range totals {
		cents += t.Amount.Cents
	}
	return Money{Cents: cents}
}

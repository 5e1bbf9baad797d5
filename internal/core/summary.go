package core

import "github.com/shopspring/decimal"

// GroupSummary totals a set of normalized categories.
type GroupSummary struct {
	Budgeted decimal.Decimal
	Balance  decimal.Decimal
	Activity decimal.Decimal
	Count    int
}

// Summarize adds up every category, including zero-budget ones.
func Summarize(categories []CategoryData) GroupSummary {
	var s GroupSummary
	for _, c := range categories {
		s.Budgeted = s.Budgeted.Add(c.Budgeted)
		s.Balance = s.Balance.Add(c.Balance)
		s.Activity = s.Activity.Add(c.Activity)
		s.Count++
	}
	return s
}

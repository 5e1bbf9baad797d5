// Package workspace pushes a category summary to a document workspace
// (Notion page, spreadsheet) instead of an object store.
package workspace

import (
	"context"
	"time"

	"ynabviz/internal/core"
)

// Headers of the category table, in column order.
var Headers = []string{"Category", "Budgeted", "Balance", "Activity"}

// Update is one summary push.
type Update struct {
	Categories []core.CategoryData
	UpdatedAt  time.Time
}

// Result describes what a sink wrote.
type Result struct {
	// Target identifies the page or range that was written.
	Target string
	Rows   int
}

// Writer is implemented by workspace sinks.
type Writer interface {
	Write(ctx context.Context, u Update) (Result, error)
}

// Rows formats categories as table rows with currency-formatted amounts.
// The header row is not included.
func Rows(categories []core.CategoryData) [][]string {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{
			c.Name,
			core.FormatCurrency(c.Budgeted),
			core.FormatCurrency(c.Balance),
			core.FormatCurrency(c.Activity),
		})
	}
	return rows
}

// Package budget defines the inbound port for budget category data.
package budget

import (
	"context"

	"ynabviz/internal/core"
)

// CategorySource returns every category group of a budget with amounts in
// milliunits.
type CategorySource interface {
	CategoryGroups(ctx context.Context, budgetID string) ([]core.CategoryGroup, error)
}

// Static serves a fixed set of groups. Used for local dry runs.
type Static []core.CategoryGroup

func (s Static) CategoryGroups(context.Context, string) ([]core.CategoryGroup, error) {
	return s, nil
}

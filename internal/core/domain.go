package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// FoodGroupName is the only category group the pipeline visualizes.
const FoodGroupName = "Food"

type (
	// CategoryRecord is a category as returned by the budgeting API.
	// All amounts are integer milliunits.
	CategoryRecord struct {
		Name     string
		Budgeted int64
		Balance  int64
		Activity int64
	}

	// CategoryGroup is a named collection of categories.
	CategoryGroup struct {
		Name       string
		Categories []CategoryRecord
	}

	// CategoryData is a normalized category in base currency units.
	CategoryData struct {
		Name     string
		Budgeted decimal.Decimal // may be zero
		Balance  decimal.Decimal // negative when overspent
		Activity decimal.Decimal
	}
)

var (
	ErrFoodGroupNotFound = errors.New("Food category group not found")
	ErrZeroBudget        = errors.New("category has zero budget")
	ErrEmptyName         = errors.New("empty category name")
)

// HasBudget reports whether the category can be charted.
func (c CategoryData) HasBudget() bool {
	return c.Budgeted.IsPositive()
}

// Remaining is the complementary share of the budget (budgeted - balance).
func (c CategoryData) Remaining() decimal.Decimal {
	return c.Budgeted.Sub(c.Balance)
}

func (c CategoryData) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// FindGroup returns the group whose name matches exactly (case-sensitive).
func FindGroup(groups []CategoryGroup, name string) (CategoryGroup, bool) {
	for _, g := range groups {
		if g.Name == name {
			return g, true
		}
	}
	return CategoryGroup{}, false
}

// GroupNames lists group names in order, for diagnostics.
func GroupNames(groups []CategoryGroup) []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names
}

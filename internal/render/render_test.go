package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ynabviz/internal/core"
)

func cat(name string, budgeted, balance, activity int64) core.CategoryData {
	return core.CategoryData{
		Name:     name,
		Budgeted: decimal.NewFromInt(budgeted),
		Balance:  decimal.NewFromInt(balance),
		Activity: decimal.NewFromInt(activity),
	}
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestSharesGroceries(t *testing.T) {
	s, err := Shares(cat("Groceries", 500, 300, -200))
	require.NoError(t, err)
	assert.Equal(t, int64(60), s.Percentage)
	assert.Equal(t, int64(40), s.Remaining)
	assert.Equal(t, "300.00", core.FormatAmount(s.BalanceAmount))
	assert.Equal(t, "200.00", core.FormatAmount(s.RemainingAmount))
}

func TestSharesInvariants(t *testing.T) {
	cases := []struct {
		budgeted, balance int64
		pct, remaining    int64
	}{
		{500, 300, 60, 40},
		{500, 500, 100, 0},
		{500, 0, 0, 100},
		{3, 1, 33, 67},
		{3, 2, 67, 33},
		{200, 1, 1, 99},      // 0.5% rounds up
		{400, 1, 0, 100},     // 0.25% rounds down
		{100, 150, 150, 0},   // balance above budget
		{100, -20, -20, 120}, // overspent into negative balance
	}
	for _, tc := range cases {
		s, err := Shares(cat("c", tc.budgeted, tc.balance, 0))
		require.NoError(t, err)
		assert.Equal(t, tc.pct, s.Percentage, "pct for %d/%d", tc.balance, tc.budgeted)
		assert.Equal(t, tc.remaining, s.Remaining, "remaining for %d/%d", tc.balance, tc.budgeted)
		if tc.balance <= tc.budgeted && s.Percentage >= 0 {
			assert.Equal(t, int64(100), s.Percentage+s.Remaining)
		}
		if tc.balance > tc.budgeted {
			assert.Zero(t, s.Remaining)
		}
	}
}

func TestSharesRejectsZeroBudget(t *testing.T) {
	_, err := Shares(cat("Dining", 0, 0, 0))
	require.ErrorIs(t, err, core.ErrZeroBudget)

	_, err = Fragment(cat("Dining", 0, 0, 0), Options{})
	require.ErrorIs(t, err, core.ErrZeroBudget)
}

func TestFragmentLegend(t *testing.T) {
	frag, err := Fragment(cat("Groceries", 500, 300, -200), Options{})
	require.NoError(t, err)
	doc := parse(t, Render(frag))

	assert.Equal(t, "Groceries", doc.Find(".chart-card h2").Text())
	var labels []string
	doc.Find(".legend-item span").Each(func(_ int, s *goquery.Selection) {
		labels = append(labels, s.Text())
	})
	assert.Equal(t, []string{"Balance: 60% ($300.00)", "Remaining: 40% ($200.00)"}, labels)

	style, _ := doc.Find(".pie").Attr("style")
	assert.Contains(t, style, "#3498db 0 60%")
	assert.Zero(t, doc.Find(".pace-marker").Length())
}

func TestFragmentEscapesNames(t *testing.T) {
	frag, err := Fragment(cat(`<script>alert("x")</script> & Co`, 100, 50, 0), Options{})
	require.NoError(t, err)
	html := Render(frag)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")

	doc := parse(t, html)
	assert.Equal(t, `<script>alert("x")</script> & Co`, doc.Find("h2").Text())
	name, _ := doc.Find(".chart-card").Attr("data-category")
	assert.Equal(t, `<script>alert("x")</script> & Co`, name)
}

func TestPaceMarker(t *testing.T) {
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	// 15/31 of the month elapsed
	assert.InDelta(t, -90-(15.0/31.0)*360, PaceAngle(now), 1e-9)
	assert.InDelta(t, -90-(28.0/28.0)*360, PaceAngle(time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)), 1e-9)

	frag, err := Fragment(cat("Groceries", 500, 300, 0), Options{ShowPace: true, Now: func() time.Time { return now }})
	require.NoError(t, err)
	doc := parse(t, Render(frag))
	style, ok := doc.Find(".pace-marker").Attr("style")
	require.True(t, ok)
	assert.Equal(t, "transform: rotate(-264.19deg)", style)
}

func TestAssembleFiltersAndPreservesOrder(t *testing.T) {
	in := []core.CategoryData{
		cat("Restaurants", 200, 50, -150),
		cat("Dining", 0, 0, 0),
		cat("Groceries", 500, 300, -200),
		cat("Snacks", -10, 0, 0),
		cat("Coffee", 40, 40, 0),
	}
	d, err := Assemble(in, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Restaurants", "Groceries", "Coffee"}, d.Rendered)
	assert.Equal(t, 2, d.Filtered)
	assert.Equal(t, len(in), len(d.Rendered)+d.Filtered)

	doc := parse(t, d.HTML)
	var names []string
	doc.Find(".grid .chart-card h2").Each(func(_ int, s *goquery.Selection) {
		names = append(names, s.Text())
	})
	assert.Equal(t, d.Rendered, names)
	assert.Equal(t, "Food Budget", doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find("script").Length())
	assert.True(t, strings.HasPrefix(d.HTML, "<!DOCTYPE html>"))
}

func TestAssembleEmptyGrid(t *testing.T) {
	d, err := Assemble([]core.CategoryData{cat("Dining", 0, 0, 0)}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, d.Filtered)
	assert.Empty(t, d.Rendered)

	doc := parse(t, d.HTML)
	assert.Equal(t, 1, doc.Find(".grid").Length())
	assert.Zero(t, doc.Find(".grid").Children().Length())

	d, err = Assemble(nil, Options{Title: "Empty"})
	require.NoError(t, err)
	assert.Contains(t, d.HTML, "<title>Empty</title>")
}

func TestCategoryPage(t *testing.T) {
	html, err := CategoryPage(cat("Groceries", 500, 300, -200), Options{})
	require.NoError(t, err)
	doc := parse(t, html)
	assert.Equal(t, "Groceries Budget Ratio", doc.Find("title").Text())
	assert.Equal(t, "Groceries Budget Ratio", doc.Find(".container h2").Text())
	assert.Equal(t, 2, doc.Find(".legend-item").Length())

	_, err = CategoryPage(cat("Dining", 0, 0, 0), Options{})
	assert.True(t, errors.Is(err, core.ErrZeroBudget))
}

func TestChartImage(t *testing.T) {
	png, err := ChartImage([]core.CategoryData{
		cat("Groceries", 500, 300, -200),
		cat("Dining", 0, 0, 0),
		cat("Restaurants", 100, 130, 0),
	}, Options{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = ChartImage([]core.CategoryData{cat("Dining", 0, 0, 0)}, Options{})
	assert.ErrorIs(t, err, ErrNoBars)
}

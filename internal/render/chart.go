package render

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ynabviz/internal/core"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// Share is the balance/remaining split of one category.
type Share struct {
	Percentage      int64
	Remaining       int64
	BalanceAmount   decimal.Decimal
	RemainingAmount decimal.Decimal
}

// Options tune the rendered output.
type Options struct {
	// Title of the dashboard page. Defaults to "Food Budget".
	Title string
	// ShowPace draws the month burn-down marker on every pie.
	ShowPace bool
	// Now is used for the pace marker. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) title() string {
	if o.Title != "" {
		return o.Title
	}
	return core.FoodGroupName + " Budget"
}

// Shares computes the percentage split. Callers must filter zero budgets
// first; a zero budget returns ErrZeroBudget.
func Shares(c core.CategoryData) (Share, error) {
	if c.Budgeted.IsZero() {
		return Share{}, fmt.Errorf("%q: %w", c.Name, core.ErrZeroBudget)
	}
	ratio := c.Balance.Div(c.Budgeted)
	// round half up, matching integer percentage display
	pct := ratio.Mul(hundred).Add(half).Floor().IntPart()
	remaining := 100 - pct
	if remaining < 0 {
		remaining = 0
	}
	return Share{
		Percentage:      pct,
		Remaining:       remaining,
		BalanceAmount:   c.Balance,
		RemainingAmount: c.Remaining(),
	}, nil
}

// PaceAngle maps the elapsed fraction of the month to a marker rotation.
func PaceAngle(now time.Time) float64 {
	days := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	elapsed := float64(now.Day()) / float64(days)
	return -90 - elapsed*360
}

// Fragment renders the chart card of one category.
func Fragment(c core.CategoryData, opts Options) (*Element, error) {
	share, err := Shares(c)
	if err != nil {
		return nil, err
	}
	card := Box("chart-card", El("h2", Text(c.Name))).Append(chartBody(share, opts)...)
	return card.Attr("data-category", c.Name), nil
}

func chartBody(share Share, opts Options) []Node {
	container := Box("chart-container", Styled("pie", pieStyle(share.Percentage)))
	if opts.ShowPace {
		container.Append(Styled("pace-marker", fmt.Sprintf("transform: rotate(%.2fdeg)", PaceAngle(opts.now()))))
	}
	legend := Box("legend",
		legendItem("balance", fmt.Sprintf("Balance: %d%% (%s)", share.Percentage, core.FormatCurrency(share.BalanceAmount))),
		legendItem("remaining", fmt.Sprintf("Remaining: %d%% (%s)", share.Remaining, core.FormatCurrency(share.RemainingAmount))),
	)
	return []Node{container, legend}
}

func legendItem(class, label string) Node {
	return Box("legend-item", Box("color-box "+class), El("span", Text(label)))
}

func pieStyle(pct int64) string {
	fill := pct
	if fill < 0 {
		fill = 0
	}
	if fill > 100 {
		fill = 100
	}
	return fmt.Sprintf("background: conic-gradient(%s 0 %d%%, %s %d%% 100%%)", colorBalance, fill, colorRemaining, fill)
}

package render

import (
	"fmt"

	"ynabviz/internal/core"
)

// Dashboard is the assembled single-page document.
type Dashboard struct {
	HTML string
	// Rendered lists the charted category names in input order.
	Rendered []string
	// Filtered counts categories skipped for having no budget.
	Filtered int
}

// Assemble renders every category with a positive budget into one page.
// Zero-budget categories are skipped silently and only counted.
func Assemble(categories []core.CategoryData, opts Options) (Dashboard, error) {
	grid := Box("grid")
	d := Dashboard{Rendered: make([]string, 0, len(categories))}
	for _, c := range categories {
		if !c.HasBudget() {
			d.Filtered++
			continue
		}
		frag, err := Fragment(c, opts)
		if err != nil {
			return Dashboard{}, fmt.Errorf("render %q: %w", c.Name, err)
		}
		grid.Append(frag)
		d.Rendered = append(d.Rendered, c.Name)
	}

	body := El("body", El("h1", Text(opts.title())), grid, El("script", trusted(clickScript)))
	d.HTML = document(opts.title(), baseCSS+dashboardCSS, body)
	return d, nil
}

// CategoryPage renders a standalone page for one category.
func CategoryPage(c core.CategoryData, opts Options) (string, error) {
	share, err := Shares(c)
	if err != nil {
		return "", err
	}
	title := c.Name + " Budget Ratio"
	container := Box("container", El("h2", Text(title))).Append(chartBody(share, opts)...)
	return document(title, baseCSS+pageCSS, El("body", container)), nil
}

func document(title, css string, body *Element) string {
	head := El("head",
		El("meta").Attr("charset", "utf-8"),
		El("meta").Attr("name", "viewport").Attr("content", "width=device-width, initial-scale=1"),
		El("title", Text(title)),
		El("style", trusted(css)),
	)
	return "<!DOCTYPE html>\n" + Render(El("html", head, body))
}

package notion

import "ynabviz/internal/workspace"

type errorResponse struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type (
	pageUpdate struct {
		Properties map[string]property `json:"properties"`
	}

	property struct {
		Date *dateValue `json:"date,omitempty"`
	}

	dateValue struct {
		Start string `json:"start"`
	}
)

type (
	appendChildren struct {
		Children []block `json:"children"`
	}

	block struct {
		Object   string    `json:"object,omitempty"`
		Type     string    `json:"type"`
		Table    *table    `json:"table,omitempty"`
		TableRow *tableRow `json:"table_row,omitempty"`
	}

	table struct {
		TableWidth      int     `json:"table_width"`
		HasColumnHeader bool    `json:"has_column_header"`
		HasRowHeader    bool    `json:"has_row_header"`
		Children        []block `json:"children"`
	}

	tableRow struct {
		Cells [][]richText `json:"cells"`
	}

	richText struct {
		Type string   `json:"type"`
		Text textPart `json:"text"`
	}

	textPart struct {
		Content string `json:"content"`
	}

	appendResponse struct {
		Results []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"results"`
	}
)

// tableAppend builds a single table block with a header row followed by rows.
func tableAppend(rows [][]string) appendChildren {
	children := make([]block, 0, len(rows)+1)
	children = append(children, row(workspace.Headers))
	for _, r := range rows {
		children = append(children, row(r))
	}
	return appendChildren{Children: []block{{
		Object: "block",
		Type:   "table",
		Table: &table{
			TableWidth:      len(workspace.Headers),
			HasColumnHeader: true,
			Children:        children,
		},
	}}}
}

func row(cells []string) block {
	out := make([][]richText, len(cells))
	for i, cell := range cells {
		out[i] = []richText{{Type: "text", Text: textPart{Content: cell}}}
	}
	return block{Type: "table_row", TableRow: &tableRow{Cells: out}}
}

package services

import (
	"encoding/json"
	"net/http"

	"ynabviz/internal/core"
)

const (
	MessageSuccess     = "Success"
	MessageServerError = "Internal server error"
)

// Response is the transport-neutral result of a refresh. Triggers copy
// StatusCode and the JSON encoding of Body onto their own response type.
type Response struct {
	StatusCode int
	Body       any
}

// CategoryJSON is a normalized category with amounts as JSON numbers.
type CategoryJSON struct {
	Name     string  `json:"name"`
	Budgeted float64 `json:"budgeted"`
	Balance  float64 `json:"balance"`
	Activity float64 `json:"activity"`
}

type SuccessBody struct {
	Message      string         `json:"message"`
	CategoryData []CategoryJSON `json:"categoryData"`
	// VisualizationBaseURL is set for object store sinks.
	VisualizationBaseURL string   `json:"visualizationBaseUrl,omitempty"`
	VisualizationURLs    []string `json:"visualizationUrls,omitempty"`
	// NotionUpdate is set for workspace sinks.
	NotionUpdate *WorkspaceUpdate `json:"notionUpdate,omitempty"`
}

type WorkspaceUpdate struct {
	Sink   string `json:"sink"`
	Target string `json:"target"`
	Rows   int    `json:"rows"`
}

type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func SuccessResponse(out Outcome, sink string) Response {
	body := SuccessBody{
		Message:      MessageSuccess,
		CategoryData: CategoriesJSON(out.Categories),
	}
	if out.Workspace != nil {
		body.NotionUpdate = &WorkspaceUpdate{Sink: sink, Target: out.Workspace.Target, Rows: out.Workspace.Rows}
	} else {
		body.VisualizationBaseURL = out.BaseURL
		if out.Report != nil {
			body.VisualizationURLs = out.Report.URLs()
		}
	}
	return Response{StatusCode: http.StatusOK, Body: body}
}

func ErrorResponse(err error) Response {
	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Response{
		StatusCode: http.StatusInternalServerError,
		Body:       ErrorBody{Message: MessageServerError, Error: msg},
	}
}

// CategoriesJSON converts categories preserving order. The result is never nil.
func CategoriesJSON(categories []core.CategoryData) []CategoryJSON {
	out := make([]CategoryJSON, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryJSON{
			Name:     c.Name,
			Budgeted: c.Budgeted.InexactFloat64(),
			Balance:  c.Balance.InexactFloat64(),
			Activity: c.Activity.InexactFloat64(),
		})
	}
	return out
}

// JSON encodes the body.
func (r Response) JSON() ([]byte, error) {
	return json.Marshal(r.Body)
}

// Headers returned with every response.
func (r Response) Headers() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

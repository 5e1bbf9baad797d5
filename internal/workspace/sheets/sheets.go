// Package sheets writes the category summary to a Google spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"ynabviz/internal/log"
	"ynabviz/internal/workspace"
)

// DefaultSheetName is used when no sheet name is configured.
const DefaultSheetName = "Food Budget"

var _ workspace.Writer = (*Client)(nil)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// Credentials selects the service account used to reach the Sheets API.
// JSON wins over File; with neither set GOOGLE_APPLICATION_CREDENTIALS is tried.
type Credentials struct {
	JSON string
	File string
}

func New(svc *gsheet.Service, spreadsheetID, sheetName string, logger *log.Logger) *Client {
	if strings.TrimSpace(sheetName) == "" {
		sheetName = DefaultSheetName
	}
	if logger == nil {
		logger = log.NewDiscard()
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger.WithComponent(log.ComponentWorkspace),
	}
}

// NewFromCredentials builds a client backed by a service account.
func NewFromCredentials(ctx context.Context, creds Credentials, spreadsheetID, sheetName string, logger *log.Logger) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return New(svc, spreadsheetID, sheetName, logger), nil
}

func newSheetsService(ctx context.Context, creds Credentials, opts ...goption.ClientOption) (*gsheet.Service, error) {
	file := strings.TrimSpace(creds.File)
	if strings.TrimSpace(creds.JSON) == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(creds.JSON) != "":
		credentialsJSON = []byte(creds.JSON)
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	opts = append([]goption.ClientOption{
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope),
	}, opts...)
	service, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Write replaces the table in columns A:D and stamps the update time in F1:G1.
func (c *Client) Write(ctx context.Context, u workspace.Update) (workspace.Result, error) {
	if c.svc == nil {
		return workspace.Result{}, errors.New("sheets service not initialized")
	}

	tableRange := c.a1("A:D")
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, tableRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return workspace.Result{}, fmt.Errorf("clear %s: %w", tableRange, err)
	}

	rows := workspace.Rows(u.Categories)
	values := make([][]any, 0, len(rows)+1)
	values = append(values, toRow(workspace.Headers))
	for _, r := range rows {
		values = append(values, toRow(r))
	}

	start := c.a1("A1")
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, start, &gsheet.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return workspace.Result{}, fmt.Errorf("update %s: %w", start, err)
	}

	stamp := c.a1("F1:G1")
	vr := &gsheet.ValueRange{Values: [][]any{{"Last Updated", u.UpdatedAt.Format(time.RFC3339)}}}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, stamp, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return workspace.Result{}, fmt.Errorf("update %s: %w", stamp, err)
	}

	c.logger.InfoContext(ctx, "Spreadsheet updated",
		log.FieldCategories, len(rows),
		"spreadsheet_id", c.spreadsheetID,
		"sheet", c.sheetName)
	return workspace.Result{Target: start, Rows: len(rows)}, nil
}

// a1 qualifies cells with the quoted sheet name; quotes in the name are doubled.
func (c *Client) a1(cells string) string {
	return "'" + strings.ReplaceAll(c.sheetName, "'", "''") + "'!" + cells
}

func toRow(cells []string) []any {
	out := make([]any, len(cells))
	for i, v := range cells {
		out[i] = v
	}
	return out
}

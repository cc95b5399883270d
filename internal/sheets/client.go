package sheets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	newTabRows    = 100
	newTabColumns = 26
)

var (
	_ TabOpener = (*Client)(nil)
	_ Sheet     = (*Tab)(nil)
)

// Client wraps the Sheets v4 service.
type Client struct {
	svc *sheets.Service
}

// NewClient creates a Client authenticated with service account JSON.
func NewClient(ctx context.Context, credentials []byte) (*Client, error) {
	return NewClientWithOptions(ctx,
		option.WithCredentialsJSON(credentials),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
}

// NewClientWithOptions creates a Client from raw client options.
func NewClientWithOptions(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Tab opens the worksheet titled title. A missing tab is created when
// create is set, otherwise *TabNotFoundError is returned.
func (c *Client) Tab(ctx context.Context, spreadsheetID, title string, create bool) (Sheet, error) {
	spreadsheet, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(spreadsheetID, err)
	}

	for _, s := range spreadsheet.Sheets {
		if s.Properties != nil && s.Properties.Title == title {
			return &Tab{svc: c.svc, spreadsheetID: spreadsheetID, title: title}, nil
		}
	}

	if !create {
		return nil, &TabNotFoundError{SpreadsheetID: spreadsheetID, Title: title}
	}

	log.Printf("[SHEETS] Worksheet %q not found, creating it", title)
	_, err = c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: title,
					GridProperties: &sheets.GridProperties{
						RowCount:    newTabRows,
						ColumnCount: newTabColumns,
					},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create worksheet %q: %w", title, err)
	}
	return &Tab{svc: c.svc, spreadsheetID: spreadsheetID, title: title}, nil
}

func classify(spreadsheetID string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return &SpreadsheetNotFoundError{SpreadsheetID: spreadsheetID, Cause: err}
	}
	return fmt.Errorf("failed to open spreadsheet %q: %w", spreadsheetID, err)
}

// Tab is a worksheet in a spreadsheet. It implements Sheet.
type Tab struct {
	svc           *sheets.Service
	spreadsheetID string
	title         string
}

// FirstRow returns the cells of row 1.
func (t *Tab) FirstRow(ctx context.Context) ([]string, error) {
	resp, err := t.svc.Spreadsheets.Values.Get(t.spreadsheetID, t.a1("1:1")).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	row := make([]string, 0, len(resp.Values[0]))
	for _, cell := range resp.Values[0] {
		row = append(row, fmt.Sprint(cell))
	}
	return row, nil
}

// AppendRows appends rows as raw values below existing data.
func (t *Tab) AppendRows(ctx context.Context, rows [][]string) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values = append(values, cells)
	}

	_, err := t.svc.Spreadsheets.Values.Append(t.spreadsheetID, t.a1("A1"), &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// a1 qualifies a range with the quoted tab title.
func (t *Tab) a1(cells string) string {
	return "'" + strings.ReplaceAll(t.title, "'", "''") + "'!" + cells
}

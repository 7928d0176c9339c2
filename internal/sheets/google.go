package sheets

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// Client wraps the Sheets API service for the two ledger workbooks.
type Client struct {
	svc *sheetsv4.Service
}

// NewClient creates a Sheets API client from raw service-account credentials.
func NewClient(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	svc, err := sheetsv4.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("NewClient: create sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Worksheet opens one tab of a spreadsheet by title.
func (c *Client) Worksheet(ctx context.Context, spreadsheetID, title string) (*GoogleWorksheet, error) {
	meta, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("Worksheet: get spreadsheet %s: %w", spreadsheetID, err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return &GoogleWorksheet{
				svc:           c.svc,
				spreadsheetID: spreadsheetID,
				sheetID:       sh.Properties.SheetId,
				title:         title,
			}, nil
		}
	}
	return nil, fmt.Errorf("Worksheet: tab %q not found in spreadsheet %s", title, spreadsheetID)
}

// MonthTitle returns the tab title for a date's month, e.g. "May".
// Monthly ledger tabs are named after the month.
func MonthTitle(d civil.Date) string {
	return d.Month.String()
}

// GoogleWorksheet implements Worksheet over the Sheets API.
type GoogleWorksheet struct {
	svc           *sheetsv4.Service
	spreadsheetID string
	sheetID       int64
	title         string
}

var _ Worksheet = (*GoogleWorksheet)(nil)

func (g *GoogleWorksheet) Rows(ctx context.Context) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, g.rangeAll()).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("Rows: read %s: %w", g.title, err)
	}
	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, v := range raw {
			row[j] = fmt.Sprint(v)
		}
		rows[i] = row
	}
	return rows, nil
}

func (g *GoogleWorksheet) ColumnValues(ctx context.Context, col int) ([]string, error) {
	letter := ColumnLetter(col)
	rng := fmt.Sprintf("'%s'!%s:%s", g.title, letter, letter)
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("ColumnValues: read %s column %s: %w", g.title, letter, err)
	}
	var values []string
	for _, raw := range resp.Values {
		if len(raw) == 0 {
			values = append(values, "")
			continue
		}
		values = append(values, fmt.Sprint(raw[0]))
	}
	for len(values) > 0 && values[len(values)-1] == "" {
		values = values[:len(values)-1]
	}
	return values, nil
}

func (g *GoogleWorksheet) Value(ctx context.Context, row, col int) (string, error) {
	rng := fmt.Sprintf("'%s'!%s%d", g.title, ColumnLetter(col), row)
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("Value: read %s!%s%d: %w", g.title, ColumnLetter(col), row, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return fmt.Sprint(resp.Values[0][0]), nil
}

func (g *GoogleWorksheet) Find(ctx context.Context, needle string) (CellRef, bool, error) {
	rows, err := g.Rows(ctx)
	if err != nil {
		return CellRef{}, false, err
	}
	lowered := strings.ToLower(needle)
	for r, row := range rows {
		for c, value := range row {
			if strings.Contains(strings.ToLower(value), lowered) {
				return CellRef{Row: r + 1, Col: c + 1, Value: value}, true, nil
			}
		}
	}
	return CellRef{}, false, nil
}

func (g *GoogleWorksheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	rng := fmt.Sprintf("'%s'!%s%d", g.title, ColumnLetter(col), row)
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{{value}}}
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("UpdateCell: write %s: %w", rng, err)
	}
	return nil
}

func (g *GoogleWorksheet) InsertRow(ctx context.Context, index int, values []string) error {
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			InsertDimension: &sheetsv4.InsertDimensionRequest{
				Range: &sheetsv4.DimensionRange{
					SheetId:    g.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(index - 1),
					EndIndex:   int64(index),
				},
			},
		}},
	}
	if _, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("InsertRow: insert row %d in %s: %w", index, g.title, err)
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	rng := fmt.Sprintf("'%s'!A%d", g.title, index)
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{cells}}
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("InsertRow: write row %d in %s: %w", index, g.title, err)
	}
	return nil
}

func (g *GoogleWorksheet) rangeAll() string {
	return fmt.Sprintf("'%s'", g.title)
}

package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Row is one raw member row as it appears in the spreadsheet:
// first name(s), paternal surname, maternal surname, email, phone, category.
type Row struct {
	FirstName string
	Paternal  string
	Maternal  string
	Email     string
	Phone     string
	Category  string
}

// Directory reads the club's member spreadsheet with a service account.
type Directory struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
}

func NewDirectory(ctx context.Context, credsFile, spreadsheetID, readRange string) (*Directory, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Directory{svc: svc, spreadsheetID: spreadsheetID, readRange: readRange}, nil
}

// Fetch pulls all member rows. Short rows are padded, never skipped; row
// filtering is the sync service's call, not the reader's.
func (d *Directory) Fetch(ctx context.Context) ([]Row, error) {
	resp, err := d.svc.Spreadsheets.Values.Get(d.spreadsheetID, d.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", d.spreadsheetID, err)
	}
	rows := make([]Row, 0, len(resp.Values))
	for _, raw := range resp.Values {
		rows = append(rows, Row{
			FirstName: cell(raw, 0),
			Paternal:  cell(raw, 1),
			Maternal:  cell(raw, 2),
			Email:     cell(raw, 3),
			Phone:     cell(raw, 4),
			Category:  cell(raw, 5),
		})
	}
	return rows, nil
}

func cell(raw []interface{}, i int) string {
	if i >= len(raw) {
		return ""
	}
	s, _ := raw[i].(string)
	return s
}

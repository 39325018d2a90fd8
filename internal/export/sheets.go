package export

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ErrSheetNotFound is returned when a spreadsheet has no sheet with the
// requested title.
var ErrSheetNotFound = errors.New("sheet not found")

// SheetsClient is the subset of the Google Sheets API the exporter uses.
type SheetsClient interface {
	// Create makes a spreadsheet with a single sheet and returns the
	// spreadsheet ID and the numeric ID of that sheet.
	Create(ctx context.Context, title, sheetTitle string) (spreadsheetID string, sheetID int64, err error)
	// SheetID resolves a sheet title to its numeric ID.
	SheetID(ctx context.Context, spreadsheetID, title string) (int64, error)
	// Share grants edit access to the given email address.
	Share(ctx context.Context, spreadsheetID, email string) error
	WriteValues(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error
	BatchUpdate(ctx context.Context, spreadsheetID string, reqs []*sheets.Request) error
}

// ClientFactory builds a client for one export. Credentials are read on
// every call.
type ClientFactory func(ctx context.Context) (SheetsClient, error)

// GoogleClientFactory authenticates with a service-account credentials file.
func GoogleClientFactory(credentialsFile string) ClientFactory {
	return func(ctx context.Context) (SheetsClient, error) {
		opts := []option.ClientOption{
			option.WithCredentialsFile(credentialsFile),
			option.WithScopes(sheets.SpreadsheetsScope, drive.DriveFileScope),
		}
		srv, err := sheets.NewService(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("sheets service: %w", err)
		}
		drv, err := drive.NewService(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("drive service: %w", err)
		}
		return &googleClient{srv: srv, drive: drv}, nil
	}
}

type googleClient struct {
	srv   *sheets.Service
	drive *drive.Service
}

func (c *googleClient) Create(ctx context.Context, title, sheetTitle string) (string, int64, error) {
	resp, err := c.srv.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title, Locale: "ru_RU"},
		Sheets: []*sheets.Sheet{{
			Properties: &sheets.SheetProperties{
				Title:          sheetTitle,
				GridProperties: &sheets.GridProperties{RowCount: 100, ColumnCount: 10},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return "", 0, err
	}
	var sheetID int64
	if len(resp.Sheets) > 0 && resp.Sheets[0].Properties != nil {
		sheetID = resp.Sheets[0].Properties.SheetId
	}
	return resp.SpreadsheetId, sheetID, nil
}

func (c *googleClient) SheetID(ctx context.Context, spreadsheetID, title string) (int64, error) {
	resp, err := c.srv.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	for _, sh := range resp.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrSheetNotFound, title)
}

// Share adds a writer permission on the Drive file behind the spreadsheet.
// Spreadsheets created by a service account are otherwise private to it.
func (c *googleClient) Share(ctx context.Context, spreadsheetID, email string) error {
	_, err := c.drive.Permissions.Create(spreadsheetID, &drive.Permission{
		Type:         "user",
		Role:         "writer",
		EmailAddress: email,
	}).SendNotificationEmail(false).Context(ctx).Do()
	return err
}

func (c *googleClient) WriteValues(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	_, err := c.srv.Spreadsheets.Values.
		Update(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (c *googleClient) BatchUpdate(ctx context.Context, spreadsheetID string, reqs []*sheets.Request) error {
	_, err := c.srv.Spreadsheets.
		BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{Requests: reqs}).
		Context(ctx).
		Do()
	return err
}

// formatRequests styles the header row and auto-sizes the exported columns.
func formatRequests(sheetID int64, columns int64) []*sheets.Request {
	return []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:         sheetID,
					StartRowIndex:   0,
					EndRowIndex:     1,
					ForceSendFields: []string{"SheetId", "StartRowIndex"},
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor: &sheets.Color{Red: 0.2, Green: 0.6, Blue: 0.8},
						TextFormat: &sheets.TextFormat{
							Bold:            true,
							ForegroundColor: &sheets.Color{Red: 1, Green: 1, Blue: 1},
						},
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:         sheetID,
					Dimension:       "COLUMNS",
					StartIndex:      0,
					EndIndex:        columns,
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		},
	}
}

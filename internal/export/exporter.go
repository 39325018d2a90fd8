// Package export writes the process table to a Google spreadsheet.
package export

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Tleuberdina/bot-project/internal/domain"
)

const (
	newSpreadsheetTitle = "Бизнес-процессы"
	newSheetTitle       = "Процессы"
	urlPrefix           = "https://docs.google.com/spreadsheets/d/"
)

// ProcessLister is the storage operation the exporter needs.
type ProcessLister interface {
	ListProcesses(ctx context.Context) ([]domain.Process, error)
}

// Options configures the destination.
type Options struct {
	SpreadsheetID string        // empty: create a new spreadsheet on every export
	SheetName     string        // sheet written when SpreadsheetID is set
	ShareWith     []string      // emails given edit access to created spreadsheets
	Timeout       time.Duration // 0: no timeout
}

// Exporter snapshots all processes into a spreadsheet.
type Exporter struct {
	repo      ProcessLister
	newClient ClientFactory
	opts      Options
	log       *zap.Logger
}

// New creates an Exporter.
func New(repo ProcessLister, newClient ClientFactory, opts Options, log *zap.Logger) *Exporter {
	return &Exporter{repo: repo, newClient: newClient, opts: opts, log: log}
}

// ExportAll writes the header and every process to the destination, applies
// header styling and column auto-sizing, and returns the spreadsheet URL.
// A new spreadsheet is shared with Options.ShareWith. Sharing and formatting
// failures are logged and do not fail the export. Nothing is retried.
func (e *Exporter) ExportAll(ctx context.Context) (string, error) {
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	processes, err := e.repo.ListProcesses(ctx)
	if err != nil {
		return "", fmt.Errorf("list processes: %w", err)
	}
	values := Values(processes)

	client, err := e.newClient(ctx)
	if err != nil {
		return "", err
	}

	spreadsheetID := e.opts.SpreadsheetID
	sheetName := e.opts.SheetName
	var sheetID int64
	if spreadsheetID == "" {
		spreadsheetID, sheetID, err = client.Create(ctx, newSpreadsheetTitle, newSheetTitle)
		if err != nil {
			return "", fmt.Errorf("create spreadsheet: %w", err)
		}
		sheetName = newSheetTitle
		e.log.Info("spreadsheet created", zap.String("spreadsheetID", spreadsheetID))
		e.share(ctx, client, spreadsheetID)
	}

	if err := client.WriteValues(ctx, spreadsheetID, sheetName+"!A1", values); err != nil {
		return "", fmt.Errorf("write values: %w", err)
	}

	if e.opts.SpreadsheetID == "" {
		e.format(ctx, client, spreadsheetID, sheetID)
	} else if id, err := client.SheetID(ctx, spreadsheetID, sheetName); err != nil {
		e.log.Warn("resolve sheet failed, skipping formatting",
			zap.Error(err),
			zap.String("spreadsheetID", spreadsheetID),
			zap.String("sheet", sheetName),
		)
	} else {
		e.format(ctx, client, spreadsheetID, id)
	}

	e.log.Info("processes exported",
		zap.Int("rows", len(values)),
		zap.String("spreadsheetID", spreadsheetID),
	)
	return urlPrefix + spreadsheetID, nil
}

func (e *Exporter) format(ctx context.Context, client SheetsClient, spreadsheetID string, sheetID int64) {
	if err := client.BatchUpdate(ctx, spreadsheetID, formatRequests(sheetID, int64(len(Header())))); err != nil {
		e.log.Warn("format spreadsheet failed", zap.Error(err), zap.String("spreadsheetID", spreadsheetID))
	}
}

func (e *Exporter) share(ctx context.Context, client SheetsClient, spreadsheetID string) {
	for _, email := range e.opts.ShareWith {
		if err := client.Share(ctx, spreadsheetID, email); err != nil {
			e.log.Warn("share spreadsheet failed",
				zap.Error(err),
				zap.String("spreadsheetID", spreadsheetID),
				zap.String("email", email),
			)
		}
	}
}

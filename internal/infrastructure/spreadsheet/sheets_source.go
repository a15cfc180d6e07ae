// Package spreadsheet loads the product-name mapping table from Google Sheets.
package spreadsheet

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/kobo/backend/internal/domain/integration"
	"github.com/kobo/backend/internal/infrastructure/config"
)

// valueReader fetches a cell range; it is the slice of the Sheets API the
// source needs, kept narrow so tests can stub it.
type valueReader interface {
	Read(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
}

type sheetsValueReader struct {
	service *sheets.Service
}

func (r *sheetsValueReader) Read(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := r.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// SheetsMappingSource implements integration.MappingSource over a two-column
// spreadsheet range: raw listing title, display name.
type SheetsMappingSource struct {
	reader        valueReader
	spreadsheetID string
	readRange     string
	logger        *zap.Logger
}

// NewSheetsMappingSource creates a Google Sheets backed mapping source
func NewSheetsMappingSource(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*SheetsMappingSource, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets spreadsheet id is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsMappingSource{
		reader:        &sheetsValueReader{service: service},
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.ReadRange,
		logger:        logger,
	}, nil
}

// Load reads the mapping range. Rows with a blank key or name are skipped
// and logged; the sheet is maintained by hand and stray rows are expected.
func (s *SheetsMappingSource) Load(ctx context.Context) ([]integration.ProductNameMapping, error) {
	values, err := s.reader.Read(ctx, s.spreadsheetID, s.readRange)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping sheet: %w", err)
	}

	rows := make([]integration.ProductNameMapping, 0, len(values))
	for i, value := range values {
		rawKey, mappedName := cellString(value, 0), cellString(value, 1)
		if strings.TrimSpace(rawKey) == "" && strings.TrimSpace(mappedName) == "" {
			continue
		}

		row, err := integration.NewProductNameMapping(rawKey, mappedName)
		if err != nil {
			s.logger.Warn("Skipping invalid mapping row",
				zap.Int("row", i+1),
				zap.String("raw_key", rawKey),
				zap.Error(err),
			)
			continue
		}
		rows = append(rows, row)
	}

	s.logger.Info("Mapping sheet loaded",
		zap.String("spreadsheet_id", s.spreadsheetID),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	s, _ := row[idx].(string)
	return s
}

var _ integration.MappingSource = (*SheetsMappingSource)(nil)

package facility

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/onnwee/praca/internal/tracing"
)

// Import errors.
var (
	// ErrUnsupportedFormat indicates a file extension other than .csv,
	// .xlsx or .xls.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyFile indicates a workbook without any sheet to read.
	ErrEmptyFile = errors.New("file has no sheets")
)

// errMissingFields marks a row lacking one of the required values,
// whether the cell is blank or the column is absent from the header.
var errMissingFields = errors.New("missing required fields")

// maxReportedErrors caps the error details in the summary; rows beyond
// the cap still count toward com_erros.
const maxReportedErrors = 10

// Spreadsheet column names. Matching is case-insensitive.
const (
	colName         = "nome"
	colType         = "tipo"
	colLatitude     = "latitude"
	colLongitude    = "longitude"
	colAddress      = "endereco"
	colPhone        = "telefone"
	colOpeningHours = "horario_funcionamento"
	colDescription  = "descricao"
)

var requiredColumns = []string{colName, colType, colLatitude, colLongitude}

// RowError describes one failed import row. Linha is the 1-based
// position in the file, counting the header as row 1.
type RowError struct {
	Row   int    `json:"linha"`
	Name  string `json:"nome,omitempty"`
	Error string `json:"erro"`
}

// ImportSummary reports the outcome of a bulk import. Processing never
// stops at a bad row, so the summary always covers the whole file.
type ImportSummary struct {
	TotalRows   int        `json:"total_linhas"`
	Imported    int        `json:"importados_com_sucesso"`
	Failed      int        `json:"com_erros"`
	SuccessRate float64    `json:"taxa_sucesso"`
	Errors      []RowError `json:"detalhes_erros,omitempty"`
}

// Import loads facilities in bulk from a CSV or Excel file. The
// extension picks the parser; anything else fails with
// ErrUnsupportedFormat before any row is touched. Each data row goes
// through the regular creation path, so row IDs are deterministic and
// re-importing the same file overwrites instead of duplicating.
//
// Bad content never aborts the import: a header-only file yields an
// empty summary, and a header missing a required column fails each of
// its rows individually.
func (s *Service) Import(ctx context.Context, filename string, data []byte) (summary *ImportSummary, err error) {
	ctx, end := tracing.StartSpan(ctx, "import_facilities")
	defer func() { end(err) }()

	var rows [][]string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = parseCSV(data)
	case ".xlsx", ".xls":
		rows, err = parseExcel(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}
	summary = &ImportSummary{}
	if len(rows) == 0 {
		return summary, nil
	}

	columns := mapColumns(rows[0])
	summary.TotalRows = len(rows) - 1
	for i, row := range rows[1:] {
		// Header is row 1, so the first data row is 2.
		rowNum := i + 2

		in, err := buildInput(columns, row)
		if err == nil {
			_, err = s.Create(ctx, in)
		}
		if err != nil {
			summary.Failed++
			if s.metrics != nil {
				s.metrics.IncImportRow(OutcomeFailed)
			}
			if len(summary.Errors) < maxReportedErrors {
				summary.Errors = append(summary.Errors, RowError{
					Row:   rowNum,
					Name:  cell(columns, row, colName),
					Error: err.Error(),
				})
			}
			continue
		}

		summary.Imported++
		if s.metrics != nil {
			s.metrics.IncImportRow(OutcomeImported)
		}
	}

	if summary.TotalRows > 0 {
		rate := float64(summary.Imported) / float64(summary.TotalRows) * 100
		summary.SuccessRate = math.Round(rate*100) / 100
	}

	tracing.SetAttributes(ctx,
		attribute.Int("import.rows", summary.TotalRows),
		attribute.Int("import.failed", summary.Failed),
	)
	s.logger.Info("bulk import finished",
		"arquivo", filename,
		"total_linhas", summary.TotalRows,
		"importados", summary.Imported,
		"com_erros", summary.Failed,
	)
	return summary, nil
}

func parseCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func parseExcel(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// mapColumns resolves header names to indices, case-insensitively.
// Absent required columns surface later as per-row failures.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return columns
}

func buildInput(columns map[string]int, row []string) (CreateInput, error) {
	var missing []string
	for _, required := range requiredColumns {
		if cell(columns, row, required) == "" {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return CreateInput{}, fmt.Errorf("%w: %s", errMissingFields, strings.Join(missing, ", "))
	}

	latitude, err := parseCoordinate(cell(columns, row, colLatitude))
	if err != nil {
		return CreateInput{}, fmt.Errorf("invalid latitude: %w", err)
	}
	longitude, err := parseCoordinate(cell(columns, row, colLongitude))
	if err != nil {
		return CreateInput{}, fmt.Errorf("invalid longitude: %w", err)
	}

	return CreateInput{
		Name:         cell(columns, row, colName),
		Type:         cell(columns, row, colType),
		Latitude:     latitude,
		Longitude:    longitude,
		Address:      cell(columns, row, colAddress),
		Phone:        cell(columns, row, colPhone),
		OpeningHours: cell(columns, row, colOpeningHours),
		Description:  cell(columns, row, colDescription),
	}, nil
}

// cell returns the trimmed value for a named column, or "" when the
// column is absent or the row is short.
func cell(columns map[string]int, row []string, column string) string {
	idx, ok := columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseCoordinate accepts both dot and comma decimal separators; the
// spreadsheets this loads come from pt-BR locales.
func parseCoordinate(value string) (float64, error) {
	if value == "" {
		return 0, errors.New("value is empty")
	}
	return strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
}

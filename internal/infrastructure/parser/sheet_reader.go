package parser

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
	"github.com/yourusername/sku-target-cleaner/internal/domain/repository"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type sheetReader struct{}

// NewSheetReader creates a reader for .xlsx/.xlsm and .csv files
func NewSheetReader() repository.SheetReader {
	return &sheetReader{}
}

// ReadSheetFromBytes reads an uploaded file; the extension picks the format
func (r *sheetReader) ReadSheetFromBytes(ctx context.Context, data []byte, filename string, opts entity.ReadOptions) (entity.Sheet, error) {
	if err := ctx.Err(); err != nil {
		return entity.Sheet{}, err
	}
	if opts.HeaderRow < 0 {
		return entity.Sheet{}, fmt.Errorf("header row must not be negative, got %d", opts.HeaderRow)
	}

	var (
		name string
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		name, rows, err = readWorkbook(data, opts.SheetName)
	case ".csv", ".txt":
		name = strings.TrimSuffix(filename, filepath.Ext(filename))
		rows, err = readCSV(data)
	default:
		return entity.Sheet{}, fmt.Errorf("unsupported file format %q (want .xlsx or .csv)", filepath.Ext(filename))
	}
	if err != nil {
		return entity.Sheet{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	log.Printf("📋 %s [%s]: %d rows, header on row %d", filename, name, len(rows), opts.HeaderRow+1)

	if len(rows) <= opts.HeaderRow {
		return entity.Sheet{}, entity.NewStructuralError(name,
			"header row %d not found, sheet has %d rows", opts.HeaderRow+1, len(rows))
	}

	return entity.Sheet{
		Name:      name,
		HeaderRow: opts.HeaderRow,
		Header:    rows[opts.HeaderRow],
		Rows:      rows[opts.HeaderRow+1:],
	}, nil
}

// readWorkbook reads raw cell values so numbers are not affected by
// display formats like thousands separators or fixed decimals.
func readWorkbook(data []byte, sheetName string) (string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, entity.NewStructuralError("", "excel file has no sheets")
	}

	name := sheets[0]
	if sheetName != "" {
		idx, err := f.GetSheetIndex(sheetName)
		if err != nil || idx < 0 {
			return "", nil, entity.NewStructuralError(sheetName,
				"sheet not found (available: %s)", strings.Join(sheets, ", "))
		}
		name = sheetName
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return name, rows, nil
}

// readCSV decodes UTF-8 with or without BOM; Excel's "CSV UTF-8" export
// adds one and it would otherwise stick to the first header.
func readCSV(data []byte) ([][]string, error) {
	decoded := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		rows = append(rows, trimTrailingEmpty(record))
	}
	return rows, nil
}

// trimTrailingEmpty makes csv rows look like excelize rows, which stop at
// the last non-empty cell.
func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}

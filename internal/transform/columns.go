package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
)

// SelectStoreColumns finds the store target columns of the main sheet.
//
// Pattern scan keeps every column whose header parses as a store header and
// fails with entity.ErrNoStoreColumns when none does. Positional selection
// takes the configured inclusive range as is; headers that do not parse are
// kept and skipped later, per cell.
func SelectStoreColumns(sheet entity.Sheet, opts entity.Options) ([]entity.StoreColumn, error) {
	if opts.Selection == entity.SelectionPositional {
		return selectPositional(sheet, opts)
	}

	var columns []entity.StoreColumn
	for idx, header := range sheet.Header {
		platform, store, ok := ParseHeader(header, opts.StrictSeparator)
		if !ok {
			continue
		}
		columns = append(columns, entity.StoreColumn{
			Index:     idx,
			StoreCode: store,
			Platform:  platform,
			RawHeader: header,
		})
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("%w in %q: no header of the form \"<store>%s<platform> <name>\"",
			entity.ErrNoStoreColumns, sheet.Name, separatorFor(opts.StrictSeparator))
	}
	return columns, nil
}

func selectPositional(sheet entity.Sheet, opts entity.Options) ([]entity.StoreColumn, error) {
	start, end := opts.PositionalStart, opts.PositionalEnd
	if start < 0 || end < start {
		return nil, entity.NewStructuralError(sheet.Name, "invalid store column range %d..%d", start, end)
	}
	if width := sheet.Width(); end >= width {
		return nil, entity.NewStructuralError(sheet.Name,
			"store column range %s:%s is outside the sheet (last column %s)",
			columnLabel(start), columnLabel(end), columnLabel(width-1))
	}

	columns := make([]entity.StoreColumn, 0, end-start+1)
	for idx := start; idx <= end; idx++ {
		header := sheet.HeaderAt(idx)
		column := entity.StoreColumn{Index: idx, RawHeader: header}
		if platform, store, ok := ParseHeader(header, opts.StrictSeparator); ok {
			column.Platform = platform
			column.StoreCode = store
		}
		columns = append(columns, column)
	}
	return columns, nil
}

// ResolveSKUColumn returns the column holding SKUs: the one headed
// opts.SKUHeader (case-insensitive), else opts.SKUFallbackIndex.
func ResolveSKUColumn(sheet entity.Sheet, opts entity.Options) (int, error) {
	if name := strings.TrimSpace(opts.SKUHeader); name != "" {
		for idx, header := range sheet.Header {
			if strings.EqualFold(strings.TrimSpace(header), name) {
				return idx, nil
			}
		}
	}

	fallback := opts.SKUFallbackIndex
	if fallback < 0 || fallback >= sheet.Width() {
		return 0, entity.NewStructuralError(sheet.Name,
			"no %q column and fallback column %s is outside the sheet",
			opts.SKUHeader, columnLabel(fallback))
	}
	return fallback, nil
}

// ParseColumnRange parses an inclusive spreadsheet column range such as
// "S:AH" into 0-based indexes. Plain numbers are read as 0-based indexes.
func ParseColumnRange(raw string) (start, end int, err error) {
	left, right, found := strings.Cut(strings.TrimSpace(raw), ":")
	if !found {
		return 0, 0, fmt.Errorf("column range %q: want FROM:TO, e.g. S:AH", raw)
	}

	if start, err = columnIndex(left); err != nil {
		return 0, 0, fmt.Errorf("column range %q: %w", raw, err)
	}
	if end, err = columnIndex(right); err != nil {
		return 0, 0, fmt.Errorf("column range %q: %w", raw, err)
	}
	if end < start {
		return 0, 0, fmt.Errorf("column range %q ends before it starts", raw)
	}
	return start, end, nil
}

func columnIndex(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative column index %d", n)
		}
		return n, nil
	}

	n, err := excelize.ColumnNameToNumber(raw)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// columnLabel spreadsheet letter of a 0-based column, for messages.
func columnLabel(idx int) string {
	name, err := excelize.ColumnNumberToName(idx + 1)
	if err != nil {
		return "#" + strconv.Itoa(idx)
	}
	return name
}

func separatorFor(strict bool) string {
	if strict {
		return strictSeparator
	}
	return looseSeparator
}

package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
	"github.com/yourusername/sku-target-cleaner/internal/domain/repository"
)

const xlsxSheetName = "Cleaned"

type xlsxWriter struct {
	style HeaderStyle
}

// NewXLSXWriter writes the same columns as the csv writer into one sheet;
// goals are stored as numbers.
func NewXLSXWriter(style HeaderStyle) repository.RecordWriter {
	return &xlsxWriter{style: style}
}

func (x *xlsxWriter) Write(w io.Writer, records []entity.OutputRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(xlsxSheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := Header(x.style)
	headerRow := make([]any, len(header))
	for i, name := range header {
		headerRow[i] = name
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.Month, r.Brand, r.Platform, r.Store, r.SKU, r.Grade, r.MonthlyGoal}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write xlsx record %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush xlsx: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func (x *xlsxWriter) Extension() string { return ".xlsx" }

func (x *xlsxWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

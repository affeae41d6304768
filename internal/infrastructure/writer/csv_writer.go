package writer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
	"github.com/yourusername/sku-target-cleaner/internal/domain/repository"
)

type csvWriter struct {
	style HeaderStyle
}

// NewCSVWriter UTF-8, comma separated, header row first, no index column
func NewCSVWriter(style HeaderStyle) repository.RecordWriter {
	return &csvWriter{style: style}
}

func (c *csvWriter) Write(w io.Writer, records []entity.OutputRecord) error {
	out := csv.NewWriter(w)

	if err := out.Write(Header(c.style)); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, record := range records {
		if err := out.Write(recordFields(record)); err != nil {
			return fmt.Errorf("failed to write csv record %d: %w", i+1, err)
		}
	}

	out.Flush()
	return out.Error()
}

func (c *csvWriter) Extension() string { return ".csv" }

func (c *csvWriter) ContentType() string { return "text/csv" }

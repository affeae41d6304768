package repository

import (
	"io"

	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
)

// RecordWriter serializes cleaned records
type RecordWriter interface {
	// Write writes the header row and every record, in order
	Write(w io.Writer, records []entity.OutputRecord) error

	// Extension file extension including the dot, e.g. ".csv"
	Extension() string

	// ContentType MIME type of the output
	ContentType() string
}

package repository

import (
	"context"

	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
)

// SheetReader reads xlsx or csv files into a Sheet
type SheetReader interface {
	// ReadSheetFromBytes reads an uploaded file; filename picks the format
	ReadSheetFromBytes(ctx context.Context, data []byte, filename string, opts entity.ReadOptions) (entity.Sheet, error)
}

package transform

import (
	"strings"

	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
)

// noiseSKUs values found in the SKU column on aggregate and header rows
var noiseSKUs = map[string]struct{}{
	"target":      {},
	"total":       {},
	"grand total": {},
	"gmv":         {},
	"sku":         {},
}

// IsNoiseSKU reports whether a SKU cell marks a total/header row rather
// than a product.
func IsNoiseSKU(sku string) bool {
	_, ok := noiseSKUs[strings.ToLower(strings.TrimSpace(sku))]
	return ok
}

// Transform builds the records for one month and brand from the target
// sheet and the grade sheet. Records come out row by row and, within a
// row, in store column order, so equal input always gives equal output.
func Transform(main, grade entity.Sheet, opts entity.Options) (entity.Result, error) {
	grades, err := BuildGradeMap(grade)
	if err != nil {
		return entity.Result{}, err
	}

	skuCol, err := ResolveSKUColumn(main, opts)
	if err != nil {
		return entity.Result{}, err
	}

	columns, err := SelectStoreColumns(main, opts)
	if err != nil {
		return entity.Result{}, err
	}

	result := entity.Result{
		StoreColumns: columns,
		SKUColumn:    skuCol,
		GradedSKUs:   grades.Len(),
	}

	for i, row := range main.Rows {
		line := main.SourceRow(i)

		rawSKU := entity.CellAt(row, skuCol)
		sku := strings.TrimSpace(rawSKU)
		if sku == "" {
			result.Diagnostics.Add(entity.Skip{Row: line, Column: -1, Reason: entity.SkipBlankSKU})
			continue
		}
		if IsNoiseSKU(sku) {
			result.Diagnostics.Add(entity.Skip{Row: line, Column: -1, Value: rawSKU, Reason: entity.SkipNoiseRow})
			continue
		}

		productGrade := grades.Grade(sku)

		for _, col := range columns {
			value := entity.CellAt(row, col.Index)

			goal, reason, ok := CoerceGoal(value)
			if !ok {
				result.Diagnostics.Add(entity.Skip{
					Row: line, Column: col.Index, Header: col.RawHeader, Value: value, Reason: reason,
				})
				continue
			}

			// Positional selection does not guarantee a parsable header.
			platform, store, ok := ParseHeader(col.RawHeader, opts.StrictSeparator)
			if !ok {
				result.Diagnostics.Add(entity.Skip{
					Row: line, Column: col.Index, Header: col.RawHeader, Value: value, Reason: entity.SkipInvalidHeader,
				})
				continue
			}

			result.Records = append(result.Records, entity.OutputRecord{
				Month:       opts.Month,
				Brand:       opts.Brand,
				Platform:    platform,
				Store:       store,
				SKU:         sku,
				Grade:       productGrade,
				MonthlyGoal: goal,
			})
		}
	}

	return result, nil
}

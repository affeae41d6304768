package transform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
)

func gradeSheet(rows ...[]string) entity.Sheet {
	return entity.Sheet{Name: "grades", Header: []string{"SKU", "Grade"}, Rows: rows}
}

func testOptions() entity.Options {
	opts := entity.DefaultOptions()
	opts.Month = "2026-01-01"
	opts.Brand = "freemir"
	return opts
}

func TestTransform_SingleStoreRecord(t *testing.T) {
	t.Parallel()

	main := entity.Sheet{
		Name:   "targets",
		Header: []string{"No", "SKU", "TTFROS004 - TikTok Electric"},
		Rows:   [][]string{{"1", "ABC123", "150"}},
	}

	result, err := Transform(main, gradeSheet([]string{"ABC123", "A"}), testOptions())
	require.NoError(t, err)

	require.Equal(t, []entity.OutputRecord{{
		Month:       "2026-01-01",
		Brand:       "freemir",
		Platform:    "TikTok",
		Store:       "TTFROS004",
		SKU:         "ABC123",
		Grade:       "A",
		MonthlyGoal: 150,
	}}, result.Records)
	assert.Equal(t, 1, result.SKUColumn)
	assert.Len(t, result.StoreColumns, 1)
	assert.Equal(t, 1, result.GradedSKUs)
	assert.Zero(t, result.Diagnostics.Total())
}

func TestTransform_MonthAndBrandVerbatim(t *testing.T) {
	t.Parallel()

	main := entity.Sheet{
		Header: []string{"SKU", "A1 - Shopee Mall"},
		Rows:   [][]string{{"ABC123", "12"}},
	}
	opts := testOptions()
	opts.Month = "Q1 plan"
	opts.Brand = " Freemir ID"

	result, err := Transform(main, gradeSheet(), opts)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Q1 plan", result.Records[0].Month)
	assert.Equal(t, " Freemir ID", result.Records[0].Brand)
	assert.Zero(t, result.GradedSKUs)
}

func TestTransform_NoiseRowsEmitNothing(t *testing.T) {
	t.Parallel()

	main := entity.Sheet{
		Header: []string{"SKU", "A1 - Shopee Mall"},
		Rows: [][]string{
			{"Grand Total", "9000"},
			{" TOTAL ", "10"},
			{"target", "10"},
			{"GMV", "10"},
			{"sku", "10"},
			{"", "10"},
			{"   ", "10"},
			{},
		},
	}

	result, err := Transform(main, gradeSheet(), testOptions())
	require.NoError(t, err)

	assert.True(t, result.Empty())
	assert.Equal(t, 5, result.Diagnostics.Count(entity.SkipNoiseRow))
	assert.Equal(t, 3, result.Diagnostics.Count(entity.SkipBlankSKU))
}

func TestTransform_UnusableCellsEmitNothing(t *testing.T) {
	t.Parallel()

	main := entity.Sheet{
		Header: []string{"SKU", "A1 - Shopee Mall", "B2 - Lazada Home", "C3 - TikTok Shop", "D4 - Blibli Store"},
		Rows:   [][]string{{"ABC123", "-5", "0", "n/a"}},
	}

	result, err := Transform(main, gradeSheet(), testOptions())
	require.NoError(t, err)

	assert.Empty(t, result.Records)
	assert.Equal(t, 2, result.Diagnostics.Count(entity.SkipNonPositive))
	assert.Equal(t, 1, result.Diagnostics.Count(entity.SkipNonNumeric))
	assert.Equal(t, 1, result.Diagnostics.Count(entity.SkipEmptyCell))

	skip := result.Diagnostics.Skips[0]
	assert.Equal(t, entity.Skip{Row: 2, Column: 1, Header: "A1 - Shopee Mall", Value: "-5", Reason: entity.SkipNonPositive}, skip)
}

func TestTransform_MissingGradeFallsBack(t *testing.T) {
	t.Parallel()

	main := entity.Sheet{
		Header: []string{"SKU", "A1 - Shopee Mall"},
		Rows:   [][]string{{"XYZ999", "12"}},
	}

	result, err := Transform(main, gradeSheet([]string{"ABC123", "A"}), testOptions())
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, GradeFallback, result.Records[0].Grade)
}

func TestTransform_NoStoreColumns(t *testing.T) {
	t.Parallel()

	main := entity.Sheet{
		Header: []string{"No", "SKU", "Name", "Total"},
		Rows:   [][]string{{"1", "ABC123", "Fan", "10"}},
	}

	_, err := Transform(main, gradeSheet(), testOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrNoStoreColumns))
}

func TestTransform_StructuralErrors(t *testing.T) {
	t.Parallel()

	main := entity.Sheet{Header: []string{"Name", "A1 - Shopee Mall"}, Rows: [][]string{{"x", "1"}}}
	_, err := Transform(main, gradeSheet(), testOptions())
	assert.True(t, errors.Is(err, entity.ErrStructural), "no SKU column")

	main = entity.Sheet{Header: []string{"SKU", "A1 - Shopee Mall"}}
	_, err = Transform(main, entity.Sheet{Header: []string{"SKU"}}, testOptions())
	assert.True(t, errors.Is(err, entity.ErrStructural), "one-column grade sheet")
}

func TestTransform_RowMajorOrder(t *testing.T) {
	t.Parallel()

	main := entity.Sheet{
		Header: []string{"SKU", "A1 - Shopee Mall", "Notes", "B2 - Lazada Home"},
		Rows: [][]string{
			{"SKU-1", "10", "x", "20"},
			{"SKU-2", "30", "", "40.7"},
		},
	}

	result, err := Transform(main, gradeSheet([]string{"SKU-2", "B"}), testOptions())
	require.NoError(t, err)
	require.Len(t, result.Records, 4)

	var got []string
	for _, r := range result.Records {
		got = append(got, r.SKU+"@"+r.Store)
	}
	assert.Equal(t, []string{"SKU-1@A1", "SKU-1@B2", "SKU-2@A1", "SKU-2@B2"}, got)
	assert.Equal(t, int64(40), result.Records[3].MonthlyGoal)
	assert.Equal(t, "B", result.Records[3].Grade)
	assert.Equal(t, GradeFallback, result.Records[0].Grade)
}

func TestTransform_PositionalRevalidatesHeaders(t *testing.T) {
	t.Parallel()

	header := make([]string, 6)
	header[0] = "SKU"
	header[2] = "A1 - Shopee Mall"
	header[3] = "Subtotal"
	header[4] = "B2 - Lazada Home"

	main := entity.Sheet{
		Header: header,
		Rows:   [][]string{{"ABC123", "", "5", "99", "7", "1"}},
	}

	opts := testOptions()
	opts.Selection = entity.SelectionPositional
	opts.PositionalStart = 2
	opts.PositionalEnd = 4

	result, err := Transform(main, gradeSheet(), opts)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "A1", result.Records[0].Store)
	assert.Equal(t, "B2", result.Records[1].Store)
	assert.Equal(t, 1, result.Diagnostics.Count(entity.SkipInvalidHeader))
}

func TestTransform_FallbackSKUColumn(t *testing.T) {
	t.Parallel()

	main := entity.Sheet{
		HeaderRow: 3,
		Header:    []string{"a", "b", "c", "d", "e", "Kode", "A1 - Shopee Mall"},
		Rows: [][]string{
			{"", "", "", "", "", "Target", "500"},
			{"", "", "", "", "", "ABC123", "25"},
		},
	}

	result, err := Transform(main, gradeSheet(), testOptions())
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "ABC123", result.Records[0].SKU)
	assert.Equal(t, 5, result.SKUColumn)
	assert.Equal(t, 5, result.Diagnostics.Skips[0].Row, "header on row 4, first data row is 5")
}

func TestTransform_Idempotent(t *testing.T) {
	t.Parallel()

	main := entity.Sheet{
		Header: []string{"SKU", "A1 - Shopee Mall", "B2 - Lazada Home"},
		Rows: [][]string{
			{"SKU-1", "10", "20"},
			{"Total", "30", "40"},
			{"SKU-2", "n/a", "5"},
		},
	}
	grades := gradeSheet([]string{"SKU-1", "A"})

	first, err := Transform(main, grades, testOptions())
	require.NoError(t, err)
	second, err := Transform(main, grades, testOptions())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	for _, r := range first.Records {
		assert.Positive(t, r.MonthlyGoal)
		assert.NotEmpty(t, r.Grade)
	}
}

package writer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
	"github.com/yourusername/sku-target-cleaner/internal/domain/repository"
)

// HeaderStyle naming of the output header row
type HeaderStyle string

const (
	HeaderPlain     HeaderStyle = "plain"
	HeaderBilingual HeaderStyle = "bilingual"
)

var (
	plainHeader     = []string{"Month", "Brand", "Platform", "Store", "SKU", "Product Grade", "Monthly Goal"}
	bilingualHeader = []string{"月份/Month", "品牌/Brand", "平台/Platform", "店铺/Store", "SKU", "产品等级/Product grade", "月目标/Monthly goal"}
)

// Header returns the output column names for a style.
func Header(style HeaderStyle) []string {
	if style == HeaderBilingual {
		return append([]string(nil), bilingualHeader...)
	}
	return append([]string(nil), plainHeader...)
}

// ParseHeaderStyle accepts "plain" or "bilingual".
func ParseHeaderStyle(raw string) (HeaderStyle, error) {
	switch HeaderStyle(strings.ToLower(strings.TrimSpace(raw))) {
	case "", HeaderPlain:
		return HeaderPlain, nil
	case HeaderBilingual:
		return HeaderBilingual, nil
	default:
		return "", fmt.Errorf("unknown header style %q (want plain or bilingual)", raw)
	}
}

// New returns the writer for an output format: "csv" or "xlsx".
func New(format string, style HeaderStyle) (repository.RecordWriter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "csv":
		return NewCSVWriter(style), nil
	case "xlsx":
		return NewXLSXWriter(style), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want csv or xlsx)", format)
	}
}

func recordFields(r entity.OutputRecord) []string {
	return []string{
		r.Month,
		r.Brand,
		r.Platform,
		r.Store,
		r.SKU,
		r.Grade,
		strconv.FormatInt(r.MonthlyGoal, 10),
	}
}

package entity

import (
	"fmt"
	"strings"
)

// StoreColumn a target column whose header names a store and a platform
type StoreColumn struct {
	Index     int
	StoreCode string
	Platform  string
	RawHeader string
}

// Valid reports whether the header parsed into a store and platform.
// Positional selection keeps columns that did not.
func (c StoreColumn) Valid() bool {
	return c.StoreCode != "" && c.Platform != ""
}

// OutputRecord one SKU x store x month row of the cleaned output
type OutputRecord struct {
	Month       string
	Brand       string
	Platform    string
	Store       string
	SKU         string
	Grade       string
	MonthlyGoal int64
}

// SelectionMode how store columns are found in the target sheet
type SelectionMode string

const (
	SelectionPatternScan SelectionMode = "pattern"
	SelectionPositional  SelectionMode = "positional"
)

// ParseSelectionMode accepts the names used on the command line and in the bot.
func ParseSelectionMode(raw string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "pattern", "pattern-scan", "scan":
		return SelectionPatternScan, nil
	case "positional", "fixed", "range":
		return SelectionPositional, nil
	default:
		return "", fmt.Errorf("unknown column selection mode %q (want pattern or positional)", raw)
	}
}

// Options configuration of one transform run
type Options struct {
	Month string
	Brand string

	HeaderRow int

	Selection       SelectionMode
	PositionalStart int // inclusive, 0-based
	PositionalEnd   int // inclusive, 0-based

	// StrictSeparator requires " - " instead of a bare "-" in store headers.
	StrictSeparator bool

	SKUHeader        string
	SKUFallbackIndex int
}

// DefaultOptions matches the layout of the regional target workbook:
// header on the 4th row, SKU in column F, store targets in S..AH.
func DefaultOptions() Options {
	return Options{
		Brand:            "freemir",
		HeaderRow:        3,
		Selection:        SelectionPatternScan,
		PositionalStart:  18,
		PositionalEnd:    33,
		SKUHeader:        "SKU",
		SKUFallbackIndex: 5,
	}
}

// Result everything one transform run produced
type Result struct {
	Records      []OutputRecord
	StoreColumns []StoreColumn
	SKUColumn    int
	GradedSKUs   int
	Diagnostics  Diagnostics
}

// Empty is a valid outcome, distinct from a failed run.
func (r Result) Empty() bool {
	return len(r.Records) == 0
}

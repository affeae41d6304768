package entity

import "sort"

// SkipReason why a row or cell produced no record
type SkipReason string

const (
	SkipBlankSKU        SkipReason = "blank_sku"
	SkipNoiseRow        SkipReason = "noise_row"
	SkipEmptyCell       SkipReason = "empty_cell"
	SkipNonNumeric      SkipReason = "non_numeric"
	SkipNonPositive     SkipReason = "non_positive"
	SkipTruncatedToZero SkipReason = "truncated_to_zero"
	SkipInvalidHeader   SkipReason = "invalid_header"
)

// Skip a single swallowed row or cell. Column is -1 for whole-row skips.
type Skip struct {
	Row    int
	Column int
	Header string
	Value  string
	Reason SkipReason
}

// Diagnostics aggregated skips of one run
type Diagnostics struct {
	Skips  []Skip
	Counts map[SkipReason]int
}

// Add records a skip.
func (d *Diagnostics) Add(skip Skip) {
	if d.Counts == nil {
		d.Counts = make(map[SkipReason]int)
	}
	d.Skips = append(d.Skips, skip)
	d.Counts[skip.Reason]++
}

// Count returns how many skips had the given reason.
func (d Diagnostics) Count(reason SkipReason) int {
	return d.Counts[reason]
}

// Total number of skips.
func (d Diagnostics) Total() int {
	return len(d.Skips)
}

// Reasons returns the reasons seen, sorted by name.
func (d Diagnostics) Reasons() []SkipReason {
	reasons := make([]SkipReason, 0, len(d.Counts))
	for reason := range d.Counts {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}

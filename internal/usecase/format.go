package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
)

var unsafeFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// NormalizeMonth accepts free text. "2026-01" and "2026-1-5" style dates
// become YYYY-MM-DD; anything else is kept trimmed.
func NormalizeMonth(raw string) string {
	month := strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", "2006-1-2", "2006-01", "2006-1", "2006/01/02", "2006/01"} {
		if t, err := time.Parse(layout, month); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return month
}

// FirstOfMonth default month value: the first day of t's month.
func FirstOfMonth(t time.Time) string {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).Format("2006-01-02")
}

// OutputFilename Cleaned_<brand>_<month><ext>
func OutputFilename(brand, month, ext string) string {
	name := fmt.Sprintf("Cleaned_%s_%s", brand, month)
	name = strings.Trim(unsafeFilenameChars.ReplaceAllString(name, "_"), "_")
	return name + ext
}

// PreviewTable renders the first n records as an aligned text table.
func PreviewTable(records []entity.OutputRecord, n int) string {
	if n <= 0 || n > len(records) {
		n = len(records)
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tBRAND\tPLATFORM\tSTORE\tSKU\tGRADE\tGOAL")
	for _, r := range records[:n] {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n", r.Month, r.Brand, r.Platform, r.Store, r.SKU, r.Grade, r.MonthlyGoal)
	}
	tw.Flush()

	if n < len(records) {
		fmt.Fprintf(&sb, "... %d more\n", len(records)-n)
	}
	return sb.String()
}

// DescribeDiagnostics one-line summary of skip counts, e.g.
// "empty_cell=12 noise_row=2".
func DescribeDiagnostics(d entity.Diagnostics) string {
	if d.Total() == 0 {
		return "none"
	}
	parts := make([]string, 0, len(d.Counts))
	for _, reason := range d.Reasons() {
		parts = append(parts, fmt.Sprintf("%s=%d", reason, d.Count(reason)))
	}
	return strings.Join(parts, " ")
}

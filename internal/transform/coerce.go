package transform

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
)

var maxGoal = decimal.NewFromInt(math.MaxInt64)

// maxGoalDigits integer digits of math.MaxInt64
const maxGoalDigits = 19

// ParseNumber reads a cell as a number. Besides plain and exponent notation
// it accepts thousands separators and accounting negatives like "(5)".
// ok is false for anything else, including "n/a", "-", NaN and Inf.
func ParseNumber(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// CoerceGoal turns a target cell into a monthly goal. Fractions are
// truncated toward zero. reason says why a cell yields no goal.
func CoerceGoal(raw string) (goal int64, reason entity.SkipReason, ok bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, entity.SkipEmptyCell, false
	}

	d, ok := ParseNumber(raw)
	if !ok {
		return 0, entity.SkipNonNumeric, false
	}
	if d.Sign() <= 0 {
		return 0, entity.SkipNonPositive, false
	}

	// Bound the magnitude from coefficient digits and exponent before any
	// arithmetic: rescaling "1e200000000" would build a huge big.Int.
	intDigits := d.NumDigits() + int(d.Exponent())
	if intDigits <= 0 {
		return 0, entity.SkipTruncatedToZero, false
	}
	if intDigits > maxGoalDigits || d.GreaterThan(maxGoal) {
		return 0, entity.SkipNonNumeric, false
	}

	goal = d.IntPart()
	if goal == 0 {
		return 0, entity.SkipTruncatedToZero, false
	}
	return goal, "", true
}

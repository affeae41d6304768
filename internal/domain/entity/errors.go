package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrStructural a required sheet, column or row is missing
	ErrStructural = errors.New("structural error")

	// ErrNoStoreColumns pattern scan matched no store header
	ErrNoStoreColumns = errors.New("no store columns found")
)

// StructuralError names the sheet and what is wrong with its layout.
type StructuralError struct {
	Sheet  string
	Reason string
}

// NewStructuralError builds a StructuralError with a formatted reason.
func NewStructuralError(sheet, format string, args ...any) *StructuralError {
	return &StructuralError{Sheet: sheet, Reason: fmt.Sprintf(format, args...)}
}

func (e *StructuralError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("%v: %s", ErrStructural, e.Reason)
	}
	return fmt.Sprintf("%v in %q: %s", ErrStructural, e.Sheet, e.Reason)
}

func (e *StructuralError) Unwrap() error {
	return ErrStructural
}

package selection

import (
	"errors"
	"fmt"
)

// ErrCountOutOfRange is matched by every ValidationError.
var ErrCountOutOfRange = errors.New("selection count out of range")

// ValidationError reports a SelectFirstN request outside [0, total].
// The ledger is left unchanged when it is returned.
type ValidationError struct {
	Count int
	Total int
}

func (e *ValidationError) Error() string {
	if e.Count < 0 {
		return fmt.Sprintf("invalid selection count %d: must be a non-negative number", e.Count)
	}
	return fmt.Sprintf("cannot select more than %d rows (requested %d)", e.Total, e.Count)
}

// Unwrap allows errors.Is(err, ErrCountOutOfRange).
func (e *ValidationError) Unwrap() error {
	return ErrCountOutOfRange
}

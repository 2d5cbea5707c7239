package shares

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidIndex is returned when an operation references an entry that does not exist.
	ErrInvalidIndex = errors.New("invalid recipient index")
	// ErrBelowMinimumRecipients is returned when a removal would leave fewer recipients than configured.
	ErrBelowMinimumRecipients = errors.New("below minimum recipients")
	// ErrTooManyRecipients is returned when an addition would exceed the configured cap.
	ErrTooManyRecipients = errors.New("too many recipients")

	ErrTotalOutOfTolerance = errors.New("share total is not 100")
	ErrMissingAddress      = errors.New("recipient address is empty")
	ErrNonPositiveShare    = errors.New("recipient share must be greater than 0")
	ErrEmptySet            = errors.New("recipient set is empty")
)

// ValidationError reports the first rule a recipient set violated at submission time.
// Index is -1 for rules that apply to the whole set.
type ValidationError struct {
	Index int
	Total float64
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v (total %.2f)", e.Err, e.Total)
	}

	return fmt.Sprintf("recipient %d: %v", e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

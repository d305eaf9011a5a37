package mask

import "github.com/pkg/errors"

// ErrInvalidState is returned when an operation needs a mask (or an image
// upstream of one) that does not exist yet.
var ErrInvalidState = errors.New("invalid state")

var (
	errNoMaskToFilter = errors.Wrap(ErrInvalidState, "no mask to filter")
	errNoMaskToTrace  = errors.Wrap(ErrInvalidState, "no mask to trace")
)

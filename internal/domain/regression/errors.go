package regression

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidParameters = errors.New("invalid fitted parameters")
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
)

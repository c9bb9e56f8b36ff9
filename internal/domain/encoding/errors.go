package encoding

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownCategory   = errors.New("unknown category")
	ErrInvalidVocabulary = errors.New("invalid vocabulary")
)

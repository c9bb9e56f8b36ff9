package artifact

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingArtifact = errors.New("artifact missing")
	ErrCorruptArtifact = errors.New("artifact corrupt")
)

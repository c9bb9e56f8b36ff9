package model

import "errors"

// ErrOutOfRange reports a numeric attribute outside its domain bounds.
var ErrOutOfRange = errors.New("value out of range")

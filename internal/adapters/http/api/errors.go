package api

import (
	"errors"
	"net/http"

	"github.com/okian/gaji/internal/domain/encoding"
	"github.com/okian/gaji/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// Error codes returned in the body of failed requests.
const (
	CodeBadRequest      = "bad_request"
	CodeTooLarge        = "request_too_large"
	CodeUnknownCategory = "unknown_category"
	CodeOutOfRange      = "out_of_range"
	CodeInternal        = "internal_error"
)

// classify maps a prediction error to its HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, CodeBadRequest
	case errors.Is(err, encoding.ErrUnknownCategory):
		return http.StatusBadRequest, CodeUnknownCategory
	case errors.Is(err, model.ErrOutOfRange):
		return http.StatusBadRequest, CodeOutOfRange
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

package pricing

import (
	"errors"
	"fmt"

	"github.com/kilianp07/evprice/core/prediction"
)

// ErrInvalidInput is returned when a required field is missing or outside
// its plausible domain. No prediction is attempted.
var ErrInvalidInput = errors.New("invalid input")

// ErrModelUnavailable is returned when no model is loaded or the model
// rejected the encoded vector. It is the same value as
// prediction.ErrModelUnavailable.
var ErrModelUnavailable = prediction.ErrModelUnavailable

// ValidationError describes the first invalid field of a request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

// Is makes ValidationError match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Error codes shared by the transports.
const (
	CodeInvalidInput     = "invalid_input"
	CodeModelUnavailable = "model_unavailable"
	CodeInternal         = "internal"
)

// ErrorCode classifies err for transport responses.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrModelUnavailable):
		return CodeModelUnavailable
	}
	return CodeInternal
}

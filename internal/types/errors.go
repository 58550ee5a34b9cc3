package types

import "errors"

// Domain specific errors shared by the planner, gateway and HTTP layer.
var (
	ErrNotFound   = errors.New("requested item not found")
	ErrBadRequest = errors.New("bad request")
	ErrValidation = errors.New("validation error")
	ErrGeneration = errors.New("content generation failed")
)

// GenerationError describes a failed call to the generative backend.
// Message is the human readable reason shown to the user.
type GenerationError struct {
	Op      string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Message
	}
	return e.Op + ": " + e.Message + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrGeneration}
	}
	return []error{ErrGeneration, e.Err}
}

// NewGenerationError wraps err as a GenerationError for op.
func NewGenerationError(op, message string, err error) error {
	return &GenerationError{Op: op, Message: message, Err: err}
}

// UserMessage flattens err into the single string shown to the user.
// A GenerationError contributes its Message; any other error its text.
// fallback is used when err is nil or carries no message.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		if genErr.Message != "" {
			return genErr.Message
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

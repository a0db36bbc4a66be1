package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNoModelConfigured   = errors.New("no AI model configured for this role")
	ErrEmptyRequest        = errors.New("user request is empty")
	ErrUnsupportedProvider = errors.New("unsupported model provider")
)

// GenerationError indicates a final-generation response could not be reduced
// to a single executable statement. RawResponse carries the unmodified model
// output so the GUI can offer it for inspection.
type GenerationError struct {
	Reason      string
	RawResponse string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generated SQL unusable: %s", e.Reason)
}

// NewGenerationError creates a GenerationError with the raw model output attached.
func NewGenerationError(reason, rawResponse string) *GenerationError {
	return &GenerationError{Reason: reason, RawResponse: rawResponse}
}

// IsGenerationError reports whether err wraps a GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

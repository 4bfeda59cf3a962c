package document

import (
	"errors"
	"fmt"
)

// ErrNilRenderer is returned when Render is called on a nil renderer.
var ErrNilRenderer = errors.New("document: renderer is nil")

// GenerationError reports a failure while serializing a finished document.
type GenerationError struct {
	Filename string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("document: generate pdf: %v", e.Err)
	}
	return fmt.Sprintf("document: generate %s: %v", e.Filename, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

package obj

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedFace   = errors.New("malformed face")
	ErrFaceIndex       = errors.New("face index out of range")
	ErrMalformedVertex = errors.New("malformed vertex")
	ErrUnknownMaterial = errors.New("unknown material")
	ErrNoResolver      = errors.New("no material resolver")
)

// LineError ties a parse failure to the 1-based line it happened on.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("obj line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

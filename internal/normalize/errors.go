package normalize

import (
	"errors"
	"fmt"
)

// ErrMalformedValue is wrapped by every normalization failure.
var ErrMalformedValue = errors.New("malformed value")

// ValueError describes a raw cell that could not be normalized.
type ValueError struct {
	Field  string
	Raw    string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Raw, e.Reason)
}

func (e *ValueError) Unwrap() error { return ErrMalformedValue }

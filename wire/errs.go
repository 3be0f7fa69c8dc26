package wire

import (
	"errors"
	"fmt"
)

var (
	ErrMalformed = errors.New("malformed wire format")
	ErrFormat    = errors.New("unknown wire format")
)

// MalformedError reports a shape violation at a path inside the wire
// document, such as "$.nodes[2].attributes[0].name".
type MalformedError struct {
	Path   string
	Reason string
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrMalformed.Error(), e.Path, e.Reason)
}

func malformed(path, format string, args ...any) error {
	return &MalformedError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

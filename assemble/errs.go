package assemble

import "errors"

var (
	// ErrMissingRoot is returned when no wire node is tagged as a document.
	ErrMissingRoot = errors.New("missing document root")
	// ErrMissingContext is returned when a subtree is assembled without a
	// Context: wire ids cannot be resolved in isolation.
	ErrMissingContext = errors.New("missing build context")
)

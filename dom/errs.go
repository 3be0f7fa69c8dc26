package dom

import (
	"errors"
	"fmt"
)

var (
	// ErrHierarchy reports that a claimed parent/child/sibling relation does
	// not hold, or that an insertion would break the tree shape.
	ErrHierarchy = errors.New("hierarchy violation")
	// ErrUnsupported reports an operation the node kind cannot carry out,
	// such as adding a child to an Attr or Text node.
	ErrUnsupported = errors.New("unsupported operation")

	ErrAttributeNotFound          = errors.New("attribute not found")
	ErrAttributeNamespaceNotFound = errors.New("attribute namespace not found")

	ErrWrongDocument    = fmt.Errorf("%w: node belongs to another document", ErrHierarchy)
	ErrInvalidCharacter = errors.New("invalid character")
	ErrSyntax           = errors.New("syntax error")
	ErrIndexSize        = errors.New("index out of range")
	ErrNamespace        = errors.New("namespace error")
	ErrInUseAttribute   = errors.New("attribute in use")
	ErrNoSelectorEngine = fmt.Errorf("%w: no selector engine registered", ErrUnsupported)
)

func hierarchyf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrHierarchy, fmt.Sprintf(format, args...))
}

func unsupportedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, fmt.Sprintf(format, args...))
}

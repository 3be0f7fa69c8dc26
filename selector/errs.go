package selector

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax       = errors.New("selector syntax error")
	ErrSymbolExists = errors.New("pseudo-class exists")
)

// SyntaxError locates a selector syntax error by byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrSyntax.Error(), e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxErr(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

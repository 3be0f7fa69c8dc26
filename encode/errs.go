package encode

import "errors"

var (
	ErrEncoding = errors.New("encoding error")
	ErrNullNode = errors.New("cannot encode null node")
)

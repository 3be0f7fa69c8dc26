package libdiff

import (
	"errors"
	"fmt"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) String() string {
	switch o {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	}
	return "<unknown op>"
}

func (o Op) MarshalText() ([]byte, error) {
	switch o {
	case Equal, Insert, Delete:
		return []byte(o.String()), nil
	}
	return nil, fmt.Errorf("%w: op %d", ErrPatch, int(o))
}

func (o *Op) UnmarshalText(d []byte) error {
	switch string(d) {
	case "equal":
		*o = Equal
	case "insert":
		*o = Insert
	case "delete":
		*o = Delete
	default:
		return fmt.Errorf("%w: unknown op %q", ErrPatch, d)
	}
	return nil
}

var ErrPatch = errors.New("cannot patch")

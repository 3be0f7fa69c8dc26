package wire

import (
	"fmt"
	"strings"
)

// QuirksMode is the legacy-compatibility mode a document was parsed in.
// The zero value is NoQuirks.
type QuirksMode uint8

const (
	NoQuirks QuirksMode = iota
	Quirks
	LimitedQuirks
)

func (q QuirksMode) String() string {
	switch q {
	case Quirks:
		return "quirks"
	case LimitedQuirks:
		return "limited-quirks"
	default:
		return "no-quirks"
	}
}

// ParseQuirksMode is lenient: unrecognized input means NoQuirks.
func ParseQuirksMode(s string) QuirksMode {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "all", "yes", "full", "quirks":
		return Quirks
	case "some", "limited", "partial", "limited-quirks":
		return LimitedQuirks
	default:
		return NoQuirks
	}
}

func (q QuirksMode) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *QuirksMode) UnmarshalText(d []byte) error {
	if q == nil {
		return fmt.Errorf("nil quirks mode")
	}
	*q = ParseQuirksMode(string(d))
	return nil
}

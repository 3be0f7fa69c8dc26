package libdiff

import (
	"fmt"
	"strings"
)

// Patch applies edits to from. Kept and deleted text must match from.
func Patch(from string, edits []Edit) (string, error) {
	var b strings.Builder
	rest := from
	for i, e := range edits {
		switch e.Op {
		case Insert:
			b.WriteString(e.Text)
			continue
		case Equal, Delete:
		default:
			return "", fmt.Errorf("%w: edit %d has op %s", ErrPatch, i, e.Op)
		}
		if !strings.HasPrefix(rest, e.Text) {
			return "", fmt.Errorf("%w: edit %d expected %q, got %q", ErrPatch, i, e.Text, head(rest, len(e.Text)))
		}
		if e.Op == Equal {
			b.WriteString(e.Text)
		}
		rest = rest[len(e.Text):]
	}
	if rest != "" {
		return "", fmt.Errorf("%w: %d trailing bytes not covered by the edits", ErrPatch, len(rest))
	}
	return b.String(), nil
}

// Reverse returns the edits undoing edits.
func Reverse(edits []Edit) []Edit {
	res := make([]Edit, len(edits))
	for i, e := range edits {
		switch e.Op {
		case Insert:
			e.Op = Delete
		case Delete:
			e.Op = Insert
		}
		res[i] = e
	}
	return res
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

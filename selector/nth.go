package selector

import (
	"strconv"
	"strings"
)

// Nth is an An+B expression as used by :nth-child and friends.
type Nth struct {
	A, B int
}

// ParseNth parses "odd", "even" or An+B with optional whitespace around the
// sign of B.
func ParseNth(s string) (Nth, error) {
	src := strings.ToLower(strings.TrimSpace(s))
	switch src {
	case "odd":
		return Nth{A: 2, B: 1}, nil
	case "even":
		return Nth{A: 2, B: 0}, nil
	case "":
		return Nth{}, syntaxErr(0, "empty An+B expression")
	}
	i := strings.IndexByte(src, 'n')
	if i == -1 {
		b, err := strconv.Atoi(src)
		if err != nil {
			return Nth{}, syntaxErr(0, "invalid An+B expression %q", s)
		}
		return Nth{B: b}, nil
	}
	var n Nth
	switch a := src[:i]; a {
	case "", "+":
		n.A = 1
	case "-":
		n.A = -1
	default:
		v, err := strconv.Atoi(a)
		if err != nil {
			return Nth{}, syntaxErr(0, "invalid An+B coefficient %q", a)
		}
		n.A = v
	}
	rest := strings.TrimSpace(src[i+1:])
	if rest == "" {
		return n, nil
	}
	sign := 1
	switch rest[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return Nth{}, syntaxErr(i+1, "invalid An+B offset %q", rest)
	}
	digits := strings.TrimSpace(rest[1:])
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return Nth{}, syntaxErr(i+1, "invalid An+B offset %q", rest)
	}
	b, err := strconv.Atoi(digits)
	if err != nil {
		return Nth{}, syntaxErr(i+1, "invalid An+B offset %q", rest)
	}
	n.B = sign * b
	return n, nil
}

// Matches reports whether the 1-based position i is An+B for some n >= 0.
func (n Nth) Matches(i int) bool {
	if n.A == 0 {
		return i == n.B
	}
	d := i - n.B
	return d%n.A == 0 && d/n.A >= 0
}

func (n Nth) String() string {
	if n.A == 0 {
		return strconv.Itoa(n.B)
	}
	var b strings.Builder
	switch n.A {
	case 1:
	case -1:
		b.WriteByte('-')
	default:
		b.WriteString(strconv.Itoa(n.A))
	}
	b.WriteByte('n')
	switch {
	case n.B > 0:
		b.WriteString("+" + strconv.Itoa(n.B))
	case n.B < 0:
		b.WriteString(strconv.Itoa(n.B))
	}
	return b.String()
}

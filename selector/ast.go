package selector

import (
	"strconv"
	"strings"
)

// Selector is a node of a parsed selector.
type Selector interface {
	String() string
	Specificity() Specificity
}

type Combinator byte

const (
	Descendant        Combinator = ' '
	Child             Combinator = '>'
	NextSibling       Combinator = '+'
	SubsequentSibling Combinator = '~'
)

func (c Combinator) String() string {
	if c == Descendant {
		return " "
	}
	return " " + string(c) + " "
}

// Universal is the * selector.
type Universal struct{}

type Type struct {
	Name string
}

type Class struct {
	Name string
}

type ID struct {
	Name string
}

// Attribute is an attribute selector. An empty Op tests for presence.
// Flag is 0, 'i' or 's'.
type Attribute struct {
	Name  string
	Op    string
	Value string
	Flag  byte
}

// Pseudo is a pseudo-class. Func is set for the functional form; its
// argument is held in Args (selector arguments), Nth and Of (the nth
// family) or Raw.
type Pseudo struct {
	Name string
	Func bool
	Raw  string
	Args []Selector
	Nth  Nth
	Of   *List

	sym Symbol
}

// Compound is a sequence of simple selectors that all apply to one element.
type Compound struct {
	Parts []Selector
}

// Complex joins two selectors by a combinator. Left is a *Compound or a
// *Complex, so chains nest to the left.
type Complex struct {
	Left  Selector
	Comb  Combinator
	Right *Compound
}

// Relative is an argument of :has(), anchored at the element being tested.
type Relative struct {
	Comb Combinator
	Sel  Selector
}

// List is a comma separated selector list.
type List struct {
	Items []Selector
}

func (*Universal) String() string { return "*" }
func (s *Type) String() string    { return escapeIdent(s.Name) }
func (s *Class) String() string   { return "." + escapeIdent(s.Name) }
func (s *ID) String() string      { return "#" + escapeIdent(s.Name) }

func (s *Attribute) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(escapeIdent(s.Name))
	if s.Op != "" {
		b.WriteString(s.Op)
		b.WriteString(strconv.Quote(s.Value))
		if s.Flag != 0 {
			b.WriteByte(' ')
			b.WriteByte(s.Flag)
		}
	}
	b.WriteByte(']')
	return b.String()
}

func (s *Pseudo) String() string {
	if !s.Func {
		return ":" + s.Name
	}
	var arg string
	switch {
	case s.Args != nil:
		arg = joinSelectors(s.Args)
	case s.sym != nil && s.sym.Args() == NthArg:
		arg = s.Nth.String()
		if s.Of != nil {
			arg += " of " + s.Of.String()
		}
	default:
		arg = s.Raw
	}
	return ":" + s.Name + "(" + arg + ")"
}

func (s *Compound) String() string {
	var b strings.Builder
	for _, p := range s.Parts {
		b.WriteString(p.String())
	}
	return b.String()
}

func (s *Complex) String() string {
	return s.Left.String() + s.Comb.String() + s.Right.String()
}

func (s *Relative) String() string {
	if s.Comb == Descendant {
		return s.Sel.String()
	}
	return string(s.Comb) + " " + s.Sel.String()
}

func (s *List) String() string {
	return joinSelectors(s.Items)
}

func joinSelectors(sels []Selector) string {
	parts := make([]string, len(sels))
	for i, s := range sels {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

func escapeIdent(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= 0x80 || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 || (i == 1 && s[0] == '-') {
				b.WriteString(`\` + strconv.FormatInt(int64(r), 16) + " ")
				continue
			}
			b.WriteRune(r)
		case r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// flatten turns a complex selector into its compound steps, left to right,
// and the combinators between them.
func flatten(s Selector) ([]*Compound, []Combinator) {
	switch x := s.(type) {
	case *Compound:
		return []*Compound{x}, nil
	case *Complex:
		steps, combs := flatten(x.Left)
		return append(steps, x.Right), append(combs, x.Comb)
	}
	return nil, nil
}

package wire

import "slices"

var defaultSeed = []string{
	"", "html", "head", "body", "div", "span", "script", "style", "a", "img",
	"meta", "link", "rel", "class", "id", "hidden", "disabled", "content",
	"type", "href", "src", "title", "alt", "value",
}

var extendedSeed = []string{
	"xmlns",
	"xlink",
	"http://www.w3.org/1999/xhtml",
	"http://www.w3.org/2000/svg",
	"http://www.w3.org/1999/xlink",
	"http://www.w3.org/XML/1998/namespace",
	"http://www.w3.org/2000/xmlns/",
	"http://www.w3.org/1998/Math/MathML",
	"svg",
	"xml",
	"align",
	"lang",
	"for",
	"width",
	"height",
	"role",
	"aria-hidden",
	"aria-label",
	"aria-labelledby",
	"aria-describedby",
}

// Interner is an append-only string table handing out stable indices. Equal
// strings always intern to the same index.
type Interner struct {
	table []string
	index map[string]uint32
}

// NewInterner returns an interner pre-seeded with seed, in order.
func NewInterner(seed ...string) *Interner {
	in := &Interner{index: make(map[string]uint32, len(seed)+64)}
	for _, s := range seed {
		in.Intern(s)
	}
	return in
}

// DefaultInterner is seeded with the strings that show up in almost every
// HTML document, so their indices are stable across documents.
func DefaultInterner() *Interner {
	return NewInterner(defaultSeed...)
}

// ExtendedInterner adds namespace URIs and common attribute names to the
// default seed.
func ExtendedInterner() *Interner {
	return NewInterner(append(slices.Clone(defaultSeed), extendedSeed...)...)
}

func (in *Interner) Intern(s string) uint32 {
	if i, ok := in.index[s]; ok {
		return i
	}
	i := uint32(len(in.table))
	in.table = append(in.table, s)
	in.index[s] = i
	return i
}

// Ref interns s and returns a pointer to its index, the form optional wire
// fields use.
func (in *Interner) Ref(s string) *uint32 {
	i := in.Intern(s)
	return &i
}

func (in *Interner) Lookup(i uint32) (string, bool) {
	if int(i) >= len(in.table) {
		return "", false
	}
	return in.table[i], true
}

func (in *Interner) Len() int {
	return len(in.table)
}

// Strings returns a copy of the table.
func (in *Interner) Strings() []string {
	return slices.Clone(in.table)
}

package selector

import (
	"fmt"
	"slices"
	"strings"

	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/wire"
)

// MatchFunc is a compiled selector predicate.
type MatchFunc func(el dom.Element, sc *Scope) bool

// Scope is the context a match is evaluated in. Root is what :scope
// denotes: an element, or a document or fragment node whose top-level
// elements match :scope.
type Scope struct {
	Root dom.Node
	// Bounded confines the combinators of complex selectors to Root and its
	// descendants.
	Bounded bool
}

func (sc *Scope) parent(el dom.Element) dom.Element {
	if sc.Bounded && el.Node == sc.Root {
		return dom.Element{}
	}
	return el.ParentElement()
}

func (sc *Scope) prev(el dom.Element) dom.Element {
	if sc.Bounded && el.Node == sc.Root {
		return dom.Element{}
	}
	return el.PreviousElementSibling()
}

// global returns sc without its bound.
func (sc *Scope) global() *Scope {
	if !sc.Bounded {
		return sc
	}
	return &Scope{Root: sc.Root}
}

func quirks(el dom.Element) bool {
	return el.OwnerDocument().QuirksMode() == wire.Quirks
}

// compile builds the stateless predicate of s. Complex selectors are
// matched right to left against the whole tree.
func compile(s Selector) (MatchFunc, error) {
	switch x := s.(type) {
	case *List:
		return compileAny(x.Items)
	case *Complex:
		ch, err := newChain(x)
		if err != nil {
			return nil, err
		}
		return func(el dom.Element, sc *Scope) bool {
			return ch.match(len(ch.steps)-1, el, sc, nil)
		}, nil
	case *Compound:
		fns := make([]MatchFunc, len(x.Parts))
		for i, p := range x.Parts {
			fn, err := compile(p)
			if err != nil {
				return nil, err
			}
			fns[i] = fn
		}
		if len(fns) == 1 {
			return fns[0], nil
		}
		return func(el dom.Element, sc *Scope) bool {
			for _, fn := range fns {
				if !fn(el, sc) {
					return false
				}
			}
			return true
		}, nil
	case *Universal:
		return func(dom.Element, *Scope) bool { return true }, nil
	case *Type:
		lower := strings.ToLower(x.Name)
		return func(el dom.Element, _ *Scope) bool {
			if el.IsHTML() {
				return el.LocalName() == lower
			}
			return el.LocalName() == x.Name
		}, nil
	case *Class:
		return func(el dom.Element, _ *Scope) bool {
			v, ok := el.GetAttribute("class")
			if !ok {
				return false
			}
			q := quirks(el)
			for _, c := range strings.Fields(v) {
				if c == x.Name || (q && strings.EqualFold(c, x.Name)) {
					return true
				}
			}
			return false
		}, nil
	case *ID:
		return func(el dom.Element, _ *Scope) bool {
			id := el.ID()
			return id != "" && (id == x.Name || (quirks(el) && strings.EqualFold(id, x.Name)))
		}, nil
	case *Attribute:
		return compileAttr(x), nil
	case *Pseudo:
		sym := x.sym
		if sym == nil {
			sym = Lookup(x.Name)
		}
		if sym == nil {
			return nil, fmt.Errorf("%w: unknown pseudo-class :%s", ErrSyntax, x.Name)
		}
		return sym.Instance(x)
	}
	return nil, fmt.Errorf("%w: cannot compile %T", ErrSyntax, s)
}

func compileAny(sels []Selector) (MatchFunc, error) {
	fns := make([]MatchFunc, len(sels))
	for i, s := range sels {
		fn, err := compile(s)
		if err != nil {
			return nil, err
		}
		fns[i] = fn
	}
	return func(el dom.Element, sc *Scope) bool {
		for _, fn := range fns {
			if fn(el, sc) {
				return true
			}
		}
		return false
	}, nil
}

func compileAttr(a *Attribute) MatchFunc {
	lname := strings.ToLower(a.Name)
	want := a.Value
	fold := a.Flag == 'i'
	if fold {
		want = strings.ToLower(want)
	}
	return func(el dom.Element, _ *Scope) bool {
		name := a.Name
		if el.IsHTML() {
			name = lname
		}
		v, ok := el.GetAttributeNS("", name)
		if !ok {
			return false
		}
		if fold {
			v = strings.ToLower(v)
		}
		return attrOp(a.Op, v, want)
	}
}

func attrOp(op, v, want string) bool {
	switch op {
	case "":
		return true
	case "=":
		return v == want
	case "~=":
		if want == "" || strings.ContainsAny(want, " \t\n\r\f") {
			return false
		}
		return slices.Contains(strings.Fields(v), want)
	case "|=":
		return v == want || strings.HasPrefix(v, want+"-")
	case "^=":
		return want != "" && strings.HasPrefix(v, want)
	case "$=":
		return want != "" && strings.HasSuffix(v, want)
	case "*=":
		return want != "" && strings.Contains(v, want)
	}
	return false
}

// chain is a complex selector split into compiled steps. combs[i] joins
// steps[i] and steps[i+1].
type chain struct {
	steps []MatchFunc
	combs []Combinator
	// global[i] is set when steps[i] has a top-level :global(). The
	// combinator that reaches such a step leaves the scope bound.
	global []bool
	// leftGlobal is set when any step but the last is global.
	leftGlobal bool
}

func newChain(s Selector) (*chain, error) {
	compounds, combs := flatten(s)
	if compounds == nil {
		return nil, fmt.Errorf("%w: cannot compile %T", ErrSyntax, s)
	}
	ch := &chain{
		combs:  combs,
		steps:  make([]MatchFunc, len(compounds)),
		global: make([]bool, len(compounds)),
	}
	for i, c := range compounds {
		fn, err := compile(c)
		if err != nil {
			return nil, err
		}
		ch.steps[i] = fn
		ch.global[i] = isGlobal(c)
		if ch.global[i] && i < len(compounds)-1 {
			ch.leftGlobal = true
		}
	}
	return ch, nil
}

func isGlobal(c *Compound) bool {
	for _, part := range c.Parts {
		if p, ok := part.(*Pseudo); ok && strings.EqualFold(p.Name, "global") {
			return true
		}
	}
	return false
}

// anchor pins the leftmost step of a relative selector to an element.
type anchor struct {
	el   dom.Element
	comb Combinator
}

// match reports whether el matches steps[:i+1] with el as the subject of
// step i. With a non-nil anchor the leftmost step must also stand in the
// anchor's relation to the anchor element.
func (ch *chain) match(i int, el dom.Element, sc *Scope, a *anchor) bool {
	if !ch.steps[i](el, sc) {
		return false
	}
	if i == 0 {
		return a == nil || related(a.comb, a.el, el)
	}
	next := func(p dom.Element) bool {
		return ch.match(i-1, p, sc, a)
	}
	nav := sc
	if ch.global[i-1] {
		nav = sc.global()
	}
	switch ch.combs[i-1] {
	case Child:
		p := nav.parent(el)
		return !p.IsNull() && next(p)
	case Descendant:
		for p := nav.parent(el); !p.IsNull(); p = nav.parent(p) {
			if next(p) {
				return true
			}
		}
	case NextSibling:
		s := nav.prev(el)
		return !s.IsNull() && next(s)
	case SubsequentSibling:
		for s := nav.prev(el); !s.IsNull(); s = nav.prev(s) {
			if next(s) {
				return true
			}
		}
	}
	return false
}

// related reports whether el stands in relation c to the element to.
func related(c Combinator, to, el dom.Element) bool {
	switch c {
	case Child:
		return el.ParentElement() == to
	case Descendant:
		for p := el.ParentElement(); !p.IsNull(); p = p.ParentElement() {
			if p == to {
				return true
			}
		}
	case NextSibling:
		return el.PreviousElementSibling() == to
	case SubsequentSibling:
		for s := el.PreviousElementSibling(); !s.IsNull(); s = s.PreviousElementSibling() {
			if s == to {
				return true
			}
		}
	}
	return false
}

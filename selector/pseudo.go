package selector

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/signadot/dawm/debug"
	"github.com/signadot/dawm/dom"
)

// ArgKind says how the argument of a functional pseudo-class is parsed.
type ArgKind int

const (
	NoArg ArgKind = iota
	SelectorArg
	RelativeArg
	NthArg
	RawArg
)

// Symbol is a registered pseudo-class.
type Symbol interface {
	String() string
	Args() ArgKind
	// Instance validates the argument of p and returns its predicate.
	Instance(p *Pseudo) (MatchFunc, error)
}

var (
	mu sync.RWMutex
	d  = map[string]Symbol{}
)

// Register adds a pseudo-class. Names are case-insensitive.
func Register(s Symbol) error {
	mu.Lock()
	defer mu.Unlock()
	name := strings.ToLower(s.String())
	_, present := d[name]
	if present {
		return fmt.Errorf("%s: %w", name, ErrSymbolExists)
	}
	d[name] = s
	return nil
}

func init() {
	Register(PseudoClass("root", func(el dom.Element) bool {
		return el.Parent().Type() == dom.DocumentNode
	}))
	Register(PseudoClass("empty", isEmpty))
	Register(PseudoClass("checked", isChecked))
	Register(PseudoClass("disabled", isDisabled))
	Register(PseudoClass("enabled", func(el dom.Element) bool {
		return isFormControl(el) && !isDisabled(el)
	}))
	Register(PseudoClass("required", func(el dom.Element) bool {
		return isInput(el) && el.HasAttribute("required")
	}))
	Register(PseudoClass("optional", func(el dom.Element) bool {
		return isInput(el) && !el.HasAttribute("required")
	}))
	Register(PseudoClass("link", isLink))
	Register(PseudoClass("any-link", isLink))
	Register(scopeSym)

	Register(&nthSymbol{name: "first-child", fixed: true})
	Register(&nthSymbol{name: "last-child", last: true, fixed: true})
	Register(&nthSymbol{name: "first-of-type", ofType: true, fixed: true})
	Register(&nthSymbol{name: "last-of-type", last: true, ofType: true, fixed: true})
	Register(&nthSymbol{name: "nth-child"})
	Register(&nthSymbol{name: "nth-last-child", last: true})
	Register(&nthSymbol{name: "nth-of-type", ofType: true})
	Register(&nthSymbol{name: "nth-last-of-type", last: true, ofType: true})
	Register(&onlySymbol{name: "only-child"})
	Register(&onlySymbol{name: "only-of-type", ofType: true})

	Register(&logicSymbol{name: "is"})
	Register(&logicSymbol{name: "matches"})
	Register(&logicSymbol{name: "where"})
	Register(&logicSymbol{name: "not", negate: true})
	Register(&logicSymbol{name: "global", global: true})
	Register(hasSym)
	Register(langSym)
}

// Lookup returns the pseudo-class registered under name, or nil.
func Lookup(name string) Symbol {
	mu.RLock()
	defer mu.RUnlock()
	return d[strings.ToLower(name)]
}

// Names returns the registered pseudo-class names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]string, 0, len(d))
	for k := range d {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

type flagSymbol struct {
	name string
	f    MatchFunc
}

// PseudoClass returns a Symbol for an argument-less pseudo-class testing f.
func PseudoClass(name string, f func(dom.Element) bool) Symbol {
	return &flagSymbol{name: name, f: func(el dom.Element, _ *Scope) bool { return f(el) }}
}

func (s *flagSymbol) String() string { return s.name }
func (s *flagSymbol) Args() ArgKind  { return NoArg }

func (s *flagSymbol) Instance(*Pseudo) (MatchFunc, error) {
	return s.f, nil
}

var scopeSym = &flagSymbol{name: "scope", f: func(el dom.Element, sc *Scope) bool {
	if sc == nil || sc.Root.IsNull() {
		return el.Parent().Type() == dom.DocumentNode
	}
	if sc.Root.Type() == dom.ElementNode {
		return el.Node == sc.Root
	}
	return el.Parent() == sc.Root
}}

// nthSymbol covers the positional pseudo-classes. fixed ones take no
// argument and mean position 1.
type nthSymbol struct {
	name   string
	last   bool
	ofType bool
	fixed  bool
}

func (s *nthSymbol) String() string { return s.name }

func (s *nthSymbol) Args() ArgKind {
	if s.fixed {
		return NoArg
	}
	return NthArg
}

func (s *nthSymbol) Instance(p *Pseudo) (MatchFunc, error) {
	nth := p.Nth
	if s.fixed {
		nth = Nth{B: 1}
	}
	var of MatchFunc
	if p.Of != nil {
		fn, err := compile(p.Of)
		if err != nil {
			return nil, err
		}
		of = fn
	}
	return func(el dom.Element, sc *Scope) bool {
		if of != nil && !of(el, sc) {
			return false
		}
		same := func(o dom.Element) bool {
			switch {
			case s.ofType:
				return sameType(o, el)
			case of != nil:
				return of(o, sc)
			}
			return true
		}
		return nth.Matches(position(el, s.last, same))
	}, nil
}

type onlySymbol struct {
	name   string
	ofType bool
}

func (s *onlySymbol) String() string { return s.name }
func (s *onlySymbol) Args() ArgKind  { return NoArg }

func (s *onlySymbol) Instance(*Pseudo) (MatchFunc, error) {
	return func(el dom.Element, _ *Scope) bool {
		same := func(o dom.Element) bool {
			return !s.ofType || sameType(o, el)
		}
		return position(el, false, same) == 1 && position(el, true, same) == 1
	}, nil
}

// position returns the 1-based index of el among its element siblings
// satisfying same, counting from the end when last is set.
func position(el dom.Element, last bool, same func(dom.Element) bool) int {
	step := dom.Element.PreviousElementSibling
	if last {
		step = dom.Element.NextElementSibling
	}
	i := 1
	for s := step(el); !s.IsNull(); s = step(s) {
		if same(s) {
			i++
		}
	}
	return i
}

func sameType(a, b dom.Element) bool {
	return a.LocalName() == b.LocalName() && a.NamespaceURI() == b.NamespaceURI()
}

// logicSymbol covers :is, :matches, :where, :not and :global. :global
// lifts the scope bound for its argument.
type logicSymbol struct {
	name   string
	negate bool
	global bool
}

func (s *logicSymbol) String() string { return s.name }
func (s *logicSymbol) Args() ArgKind  { return SelectorArg }

func (s *logicSymbol) Instance(p *Pseudo) (MatchFunc, error) {
	fn, err := compileAny(p.Args)
	if err != nil {
		return nil, err
	}
	switch {
	case s.negate:
		return func(el dom.Element, sc *Scope) bool {
			return !fn(el, sc)
		}, nil
	case s.global:
		return func(el dom.Element, sc *Scope) bool {
			ok := fn(el, sc.global())
			if debug.Select() {
				debug.Logf(":global(%s) on %s: %t", joinSelectors(p.Args), el, ok)
			}
			return ok
		}, nil
	}
	return fn, nil
}

type hasSymbol struct{}

var hasSym = hasSymbol{}

func (hasSymbol) String() string { return "has" }
func (hasSymbol) Args() ArgKind  { return RelativeArg }

func (hasSymbol) Instance(p *Pseudo) (MatchFunc, error) {
	type relative struct {
		ch   *chain
		comb Combinator
	}
	rels := make([]relative, len(p.Args))
	for i, a := range p.Args {
		r, ok := a.(*Relative)
		if !ok {
			return nil, fmt.Errorf("%w: :has() argument %s is not relative", ErrSyntax, a)
		}
		ch, err := newChain(r.Sel)
		if err != nil {
			return nil, err
		}
		rels[i] = relative{ch: ch, comb: r.Comb}
	}
	return func(el dom.Element, sc *Scope) bool {
		inner := sc.global()
		for _, r := range rels {
			a := &anchor{el: el, comb: r.comb}
			last := len(r.ch.steps) - 1
			test := func(n dom.Node) bool {
				c := n.AsElement()
				return !c.IsNull() && r.ch.match(last, c, inner, a)
			}
			switch r.comb {
			case Descendant, Child:
				for n := range el.Descendants() {
					if test(n) {
						return true
					}
				}
			default:
				for s := el.NextElementSibling(); !s.IsNull(); s = s.NextElementSibling() {
					if test(s.Node) {
						return true
					}
					for n := range s.Descendants() {
						if test(n) {
							return true
						}
					}
				}
			}
		}
		return false
	}, nil
}

type langSymbol struct{}

var langSym = langSymbol{}

func (langSymbol) String() string { return "lang" }
func (langSymbol) Args() ArgKind  { return RawArg }

// Instance matches elements whose language, inherited from the nearest
// lang or xml:lang attribute, equals the argument or starts with it
// followed by a hyphen.
func (langSymbol) Instance(p *Pseudo) (MatchFunc, error) {
	want := strings.ToLower(strings.Trim(p.Raw, `"'`))
	if want == "" {
		return nil, fmt.Errorf("%w: :lang() needs a language", ErrSyntax)
	}
	return func(el dom.Element, _ *Scope) bool {
		for cur := el; !cur.IsNull(); cur = cur.ParentElement() {
			v, ok := cur.GetAttributeNS(dom.XMLNamespace, "lang")
			if !ok {
				v, ok = cur.GetAttributeNS("", "lang")
			}
			if ok {
				v = strings.ToLower(v)
				return v == want || strings.HasPrefix(v, want+"-")
			}
		}
		return false
	}, nil
}

func isEmpty(el dom.Element) bool {
	for c := range el.ChildSeq() {
		switch c.Type() {
		case dom.ElementNode:
			return false
		case dom.TextNode, dom.CDATASectionNode:
			if c.NodeValue() != "" {
				return false
			}
		}
	}
	return true
}

func isHTMLNamed(el dom.Element, names ...string) bool {
	return el.NamespaceURI() == dom.HTMLNamespace && slices.Contains(names, el.LocalName())
}

func isFormControl(el dom.Element) bool {
	return isHTMLNamed(el, "button", "input", "select", "textarea", "optgroup", "option", "fieldset")
}

func isInput(el dom.Element) bool {
	return isHTMLNamed(el, "input", "select", "textarea")
}

func isDisabled(el dom.Element) bool {
	if !isFormControl(el) {
		return false
	}
	if el.HasAttribute("disabled") {
		return true
	}
	for p := el.ParentElement(); !p.IsNull(); p = p.ParentElement() {
		if isHTMLNamed(p, "fieldset") && p.HasAttribute("disabled") {
			return true
		}
	}
	return false
}

func isChecked(el dom.Element) bool {
	switch {
	case isHTMLNamed(el, "input"):
		t := strings.ToLower(el.Attribute("type"))
		return (t == "checkbox" || t == "radio") && el.HasAttribute("checked")
	case isHTMLNamed(el, "option"):
		return el.HasAttribute("selected")
	}
	return false
}

func isLink(el dom.Element) bool {
	return isHTMLNamed(el, "a", "area") && el.HasAttribute("href")
}

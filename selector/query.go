package selector

import (
	"github.com/signadot/dawm/debug"
	"github.com/signadot/dawm/dom"
)

// Matcher is a compiled selector list.
type Matcher struct {
	list   *List
	chains []*chain
	fn     MatchFunc
}

// Compile parses and compiles s.
func Compile(s string) (*Matcher, error) {
	l, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return CompileList(l)
}

// MustCompile is like Compile but panics on error.
func MustCompile(s string) *Matcher {
	m, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return m
}

// CompileList compiles a parsed selector list.
func CompileList(l *List) (*Matcher, error) {
	m := &Matcher{list: l, chains: make([]*chain, len(l.Items))}
	for i, item := range l.Items {
		ch, err := newChain(item)
		if err != nil {
			return nil, err
		}
		m.chains[i] = ch
	}
	fn, err := compile(l)
	if err != nil {
		return nil, err
	}
	m.fn = fn
	return m, nil
}

func (m *Matcher) Selector() *List {
	return m.list
}

func (m *Matcher) String() string {
	return m.list.String()
}

func (m *Matcher) Specificity() Specificity {
	return m.list.Specificity()
}

// Match reports whether el matches, evaluated against the whole tree with
// el as the :scope element.
func (m *Matcher) Match(el dom.Element) bool {
	if el.IsNull() {
		return false
	}
	return m.fn(el, &Scope{Root: el.Node})
}

// MatchIn is Match with an explicit scope.
func (m *Matcher) MatchIn(el dom.Element, sc *Scope) bool {
	if el.IsNull() {
		return false
	}
	return m.fn(el, sc)
}

// QueryAll returns the elements under scope that match m, in document
// order. scope itself is never returned.
func (m *Matcher) QueryAll(scope dom.Node) []dom.Element {
	return m.walk(scope, 0)
}

// Query returns the first element QueryAll would return, or the null
// Element.
func (m *Matcher) Query(scope dom.Node) dom.Element {
	res := m.walk(scope, 1)
	if len(res) == 0 {
		return dom.Element{}
	}
	return res[0]
}

// walk visits scope and its descendants once in document order. For each
// chain, lefts[i] holds the elements seen so far that matched steps[:i+1];
// an element matches step i+1 when it matches the compound and its
// combinator relation reaches an element in lefts[i]. Ancestors and
// preceding siblings are always visited first, so the sets are complete
// when consulted. Chains with :global() in a left step are matched right
// to left instead.
func (m *Matcher) walk(scope dom.Node, limit int) []dom.Element {
	if scope.IsNull() {
		return nil
	}
	sc := &Scope{Root: scope, Bounded: true}
	lefts := make([][]map[dom.Element]bool, len(m.chains))
	for i, ch := range m.chains {
		lefts[i] = make([]map[dom.Element]bool, len(ch.steps)-1)
		for j := range lefts[i] {
			lefts[i][j] = map[dom.Element]bool{}
		}
	}
	visit := func(el dom.Element, root bool) bool {
		hit := false
		for ci, ch := range m.chains {
			last := len(ch.steps) - 1
			if ch.leftGlobal {
				// left steps may match outside the walked subtree.
				hit = hit || (!root && ch.match(last, el, sc, nil))
				continue
			}
			for i, step := range ch.steps {
				if root && i > 0 {
					break
				}
				if !step(el, sc) {
					continue
				}
				if i > 0 && !leftHolds(ch.combs[i-1], el, lefts[ci][i-1], sc) {
					continue
				}
				if i == last {
					hit = hit || !root
					continue
				}
				lefts[ci][i][el] = true
			}
		}
		return hit
	}
	if root := scope.AsElement(); !root.IsNull() {
		visit(root, true)
	}
	var res []dom.Element
	for n := range scope.Descendants() {
		el := n.AsElement()
		if el.IsNull() || !visit(el, false) {
			continue
		}
		res = append(res, el)
		if limit > 0 && len(res) == limit {
			break
		}
	}
	if debug.Select() {
		debug.Logf("query %s under %s: %d matches", m, scope, len(res))
	}
	return res
}

func leftHolds(c Combinator, el dom.Element, left map[dom.Element]bool, sc *Scope) bool {
	if len(left) == 0 {
		return false
	}
	switch c {
	case Child:
		return left[sc.parent(el)]
	case Descendant:
		for p := sc.parent(el); !p.IsNull(); p = sc.parent(p) {
			if left[p] {
				return true
			}
		}
	case NextSibling:
		return left[sc.prev(el)]
	case SubsequentSibling:
		for s := sc.prev(el); !s.IsNull(); s = sc.prev(s) {
			if left[s] {
				return true
			}
		}
	}
	return false
}

// QueryAll returns the elements under scope matching sel, in document
// order.
func QueryAll(scope dom.Node, sel string) ([]dom.Element, error) {
	m, err := Compile(sel)
	if err != nil {
		return nil, err
	}
	return m.QueryAll(scope), nil
}

// Query returns the first element under scope matching sel, or the null
// Element.
func Query(scope dom.Node, sel string) (dom.Element, error) {
	m, err := Compile(sel)
	if err != nil {
		return dom.Element{}, err
	}
	return m.Query(scope), nil
}

// Matches reports whether el matches sel.
func Matches(el dom.Element, sel string) (bool, error) {
	m, err := Compile(sel)
	if err != nil {
		return false, err
	}
	return m.Match(el), nil
}

// Closest returns the nearest inclusive ancestor of el matching sel, or
// the null Element. :scope denotes el throughout.
func Closest(el dom.Element, sel string) (dom.Element, error) {
	m, err := Compile(sel)
	if err != nil {
		return dom.Element{}, err
	}
	sc := &Scope{Root: el.Node}
	for cur := el; !cur.IsNull(); cur = cur.ParentElement() {
		if m.MatchIn(cur, sc) {
			return cur, nil
		}
	}
	return dom.Element{}, nil
}

// Engine adapts the package functions to dom.SelectorEngine.
type Engine struct{}

func (Engine) QueryAll(scope dom.Node, sel string) ([]dom.Element, error) {
	return QueryAll(scope, sel)
}

func (Engine) Query(scope dom.Node, sel string) (dom.Element, error) {
	return Query(scope, sel)
}

func (Engine) Matches(el dom.Element, sel string) (bool, error) {
	return Matches(el, sel)
}

func (Engine) Closest(el dom.Element, sel string) (dom.Element, error) {
	return Closest(el, sel)
}

func init() {
	dom.SetSelectorEngine(Engine{})
}

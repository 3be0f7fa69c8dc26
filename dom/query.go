package dom

import (
	"sync"

	"github.com/signadot/dawm/debug"
)

// SelectorEngine evaluates selector strings over a tree.
type SelectorEngine interface {
	// QueryAll returns the elements under scope matching sel, in document
	// order. scope itself is never returned.
	QueryAll(scope Node, sel string) ([]Element, error)
	// Query returns the first such element, or the null Element.
	Query(scope Node, sel string) (Element, error)
	// Matches reports whether el matches sel.
	Matches(el Element, sel string) (bool, error)
	// Closest returns the nearest inclusive ancestor of el matching sel,
	// with el as :scope, or the null Element.
	Closest(el Element, sel string) (Element, error)
}

var (
	engineMu sync.RWMutex
	engine   SelectorEngine
)

// SetSelectorEngine registers the engine used by the selector methods of
// Node and Element.
func SetSelectorEngine(e SelectorEngine) {
	engineMu.Lock()
	defer engineMu.Unlock()
	engine = e
}

func selectorEngine() (SelectorEngine, error) {
	engineMu.RLock()
	defer engineMu.RUnlock()
	if engine == nil {
		return nil, ErrNoSelectorEngine
	}
	return engine, nil
}

// QuerySelector returns the first descendant element of n matching sel.
// An invalid selector matches nothing.
func (n Node) QuerySelector(sel string) Element {
	e, err := selectorEngine()
	if err != nil {
		return Element{}
	}
	el, err := e.Query(n, sel)
	if err != nil {
		if debug.Select() {
			debug.Logf("querySelector %q: %v", sel, err)
		}
		return Element{}
	}
	return el
}

// QuerySelectorAll returns a static list of the descendant elements of n
// matching sel, in document order. An invalid selector matches nothing.
func (n Node) QuerySelectorAll(sel string) *NodeList {
	l := NewNodeList()
	e, err := selectorEngine()
	if err != nil {
		return l
	}
	els, err := e.QueryAll(n, sel)
	if err != nil {
		if debug.Select() {
			debug.Logf("querySelectorAll %q: %v", sel, err)
		}
		return l
	}
	for _, el := range els {
		l.s.push(el.Node)
	}
	return l
}

// Matches reports whether e matches sel. Invalid selectors are reported as
// errors.
func (e Element) Matches(sel string) (bool, error) {
	eng, err := selectorEngine()
	if err != nil {
		return false, err
	}
	return eng.Matches(e, sel)
}

// Closest returns the nearest inclusive ancestor of e matching sel, or the
// null Element. :scope denotes e for every candidate.
func (e Element) Closest(sel string) (Element, error) {
	eng, err := selectorEngine()
	if err != nil {
		return Element{}, err
	}
	return eng.Closest(e, sel)
}

package eval

import "github.com/signadot/dawm/dom"

// Symbol is a name made available to every filter expression. Instance
// binds it to the element under test; it is also called with the null
// Element at compile time, where only the type of the result matters.
type Symbol interface {
	String() string
	Instance(el dom.Element) any
}

type name string

func (s name) String() string {
	return string(s)
}

type funcSymbol struct {
	name
	f func(dom.Element) any
}

func (s funcSymbol) Instance(el dom.Element) any {
	return s.f(el)
}

// Func returns a Symbol named n whose value for an element is f(el).
func Func(n string, f func(dom.Element) any) Symbol {
	return funcSymbol{name: name(n), f: f}
}

package eval

import (
	"errors"
	"fmt"

	"github.com/signadot/dawm/debug"
	"github.com/signadot/dawm/dom"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var (
	ErrCompile = errors.New("filter compile error")
	ErrEval    = errors.New("filter evaluation error")
)

// Filter is a compiled boolean expression over an element, such as
//
//	tag == "a" && hasClass("ext") && attr("href") startsWith "http"
//
// The names in scope are the registered symbols; see [Symbols].
type Filter struct {
	src     string
	symbols []Symbol
	prog    *vm.Program
}

// Compile compiles src against the symbols registered so far.
func Compile(src string) (*Filter, error) {
	syms := Symbols()
	prog, err := expr.Compile(src, expr.Env(env(syms, dom.Element{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	return &Filter{src: src, symbols: syms, prog: prog}, nil
}

func MustCompile(src string) *Filter {
	f, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Filter) String() string {
	return f.src
}

// Match evaluates f with el bound to the symbols.
func (f *Filter) Match(el dom.Element) (bool, error) {
	out, err := expr.Run(f.prog, env(f.symbols, el))
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrEval, el, err)
	}
	ok, _ := out.(bool)
	if debug.Select() {
		debug.Logf("filter %q on %s: %t", f.src, el, ok)
	}
	return ok, nil
}

// Filter returns the elements of els that f matches, in order.
func (f *Filter) Filter(els []dom.Element) ([]dom.Element, error) {
	res := []dom.Element{}
	for _, el := range els {
		ok, err := f.Match(el)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, el)
		}
	}
	return res, nil
}

// QueryAll returns the descendant elements of scope that f matches, in tree
// order.
func (f *Filter) QueryAll(scope dom.Node) ([]dom.Element, error) {
	var els []dom.Element
	for n := range scope.Descendants() {
		if el := n.AsElement(); !el.IsNull() {
			els = append(els, el)
		}
	}
	return f.Filter(els)
}

func env(syms []Symbol, el dom.Element) map[string]any {
	m := make(map[string]any, len(syms))
	for _, s := range syms {
		m[s.String()] = s.Instance(el)
	}
	return m
}

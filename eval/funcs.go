package eval

import (
	"strings"

	"github.com/signadot/dawm/debug"
	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/selector"
)

func builtins() []Symbol {
	return []Symbol{
		Func("tag", func(el dom.Element) any {
			return strings.ToLower(el.LocalName())
		}),
		Func("ns", func(el dom.Element) any {
			return el.NamespaceURI()
		}),
		Func("id", func(el dom.Element) any {
			if el.IsNull() {
				return ""
			}
			return el.ID()
		}),
		Func("classes", func(el dom.Element) any {
			if el.IsNull() {
				return []string{}
			}
			return el.ClassList().Tokens()
		}),
		Func("attrs", func(el dom.Element) any {
			res := map[string]string{}
			if el.IsNull() {
				return res
			}
			for _, a := range el.AttrList() {
				res[a.Name()] = a.Value()
			}
			return res
		}),
		Func("text", func(el dom.Element) any {
			return el.TextContent()
		}),
		Func("attr", func(el dom.Element) any {
			return func(name string) string {
				return el.Attribute(name)
			}
		}),
		Func("hasAttr", func(el dom.Element) any {
			return func(name string) bool {
				return el.HasAttribute(name)
			}
		}),
		Func("hasClass", func(el dom.Element) any {
			return func(name string) bool {
				return el.ClassList().Contains(name)
			}
		}),
		Func("matches", func(el dom.Element) any {
			return func(sel string) (bool, error) {
				return selector.Matches(el, sel)
			}
		}),
		Func("within", func(el dom.Element) any {
			return func(sel string) (bool, error) {
				c, err := selector.Closest(el, sel)
				if err != nil {
					return false, err
				}
				if debug.Select() {
					debug.Logf("within(%q) from %s: %s", sel, el, c)
				}
				return !c.IsNull(), nil
			}
		}),
	}
}

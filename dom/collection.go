package dom

import (
	"fmt"
	"iter"
	"strings"

	"github.com/signadot/dawm/wire"
)

// HTMLCollection is a live, element-only collection rooted at an owner
// node.
type HTMLCollection struct {
	s        *seq[Element]
	owner    Node
	children bool
}

// Children returns the live collection of n's element children.
func (n Node) Children() *HTMLCollection {
	return &HTMLCollection{
		s: newSeq[Element]("children of "+n.String(), func(yield func(Element) bool) {
			for c := n.FirstChild(); !c.IsNull(); c = c.NextSibling() {
				if c.Type() == ElementNode && !yield(Element{c}) {
					return
				}
			}
		}),
		owner:    n,
		children: true,
	}
}

// descendantCollection returns a live collection of the descendant elements
// of n for which match holds.
func (n Node) descendantCollection(name string, match func(Element) bool) *HTMLCollection {
	return &HTMLCollection{
		s: newSeq[Element](name, func(yield func(Element) bool) {
			for c := range n.Descendants() {
				if c.Type() != ElementNode {
					continue
				}
				if el := (Element{c}); match(el) && !yield(el) {
					return
				}
			}
		}),
		owner: n,
	}
}

// GetElementsByTagName matches qualified names; "*" matches every element.
// In HTML documents HTML elements are matched against the lowercased name.
func (n Node) GetElementsByTagName(qualifiedName string) *HTMLCollection {
	lower := strings.ToLower(qualifiedName)
	return n.descendantCollection("tag "+qualifiedName, func(el Element) bool {
		if qualifiedName == "*" {
			return true
		}
		r := el.rec()
		q := qualify(r.prefix, r.local)
		if el.inHTML() {
			return q == lower
		}
		return q == qualifiedName
	})
}

// GetElementsByTagNameNS matches namespace and local name; "*" is a
// wildcard for either.
func (n Node) GetElementsByTagNameNS(ns, local string) *HTMLCollection {
	return n.descendantCollection("tagNS "+ns+" "+local, func(el Element) bool {
		r := el.rec()
		return (ns == "*" || r.ns == ns) && (local == "*" || r.local == local)
	})
}

// GetElementsByClassName matches elements carrying every class in the
// whitespace-separated names. Quirks mode documents compare classes ASCII
// case-insensitively.
func (n Node) GetElementsByClassName(names string) *HTMLCollection {
	want := strings.Fields(names)
	return n.descendantCollection("class "+names, func(el Element) bool {
		if len(want) == 0 {
			return false
		}
		have := strings.Fields(el.ClassName())
		quirks := el.doc.quirks == wire.Quirks
	outer:
		for _, w := range want {
			for _, h := range have {
				if h == w || (quirks && strings.EqualFold(h, w)) {
					continue outer
				}
			}
			return false
		}
		return true
	})
}

func (c *HTMLCollection) Len() int {
	return c.s.len()
}

// Item returns the i-th element, or the null Element when i is out of
// range.
func (c *HTMLCollection) Item(i int) Element {
	el, _ := c.s.item(i)
	return el
}

// NamedItem returns the first element whose id is name, or failing that the
// first HTML element whose name attribute is name.
func (c *HTMLCollection) NamedItem(name string) Element {
	if name == "" {
		return Element{}
	}
	if el, ok := c.s.find(func(el Element) bool { return el.ID() == name }); ok {
		return el
	}
	el, _ := c.s.find(func(el Element) bool {
		if el.NamespaceURI() != HTMLNamespace {
			return false
		}
		v, ok := el.GetAttribute("name")
		return ok && v == name
	})
	return el
}

func (c *HTMLCollection) All() iter.Seq2[int, Element] {
	return c.s.all()
}

func (c *HTMLCollection) Slice() []Element {
	return c.s.slice()
}

// Set replaces the i-th element in its parent by el. For a children
// collection an index equal to the length appends el to the owner.
func (c *HTMLCollection) Set(i int, el Element) error {
	size := c.Len()
	if i == size && c.children {
		_, err := c.owner.AppendChild(el.Node)
		return err
	}
	if i < 0 || i >= size {
		return fmt.Errorf("%w: %d", ErrIndexSize, i)
	}
	old := c.Item(i)
	_, err := old.Parent().ReplaceChild(el.Node, old.Node)
	return err
}

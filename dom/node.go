package dom

import (
	"fmt"
	"iter"
)

// Node is a handle to a node in a Document's arena. Node values compare
// equal exactly when they denote the same node. The zero Node is null.
type Node struct {
	doc *Document
	id  ID
}

func (n Node) IsNull() bool {
	return n.doc == nil || n.id == 0
}

func (n Node) rec() *record {
	return n.doc.rec(n.id)
}

// NodeID returns the arena index of n.
func (n Node) NodeID() ID {
	return n.id
}

// OwnerDocument returns the document whose arena holds n. A Document node
// is its own owner.
func (n Node) OwnerDocument() *Document {
	return n.doc
}

func (n Node) Type() NodeType {
	if n.IsNull() {
		return 0
	}
	return n.rec().kind
}

func (n Node) NodeName() string {
	if n.IsNull() {
		return ""
	}
	r := n.rec()
	switch r.kind {
	case ElementNode:
		return Element{n}.TagName()
	case AttributeNode:
		return qualify(r.prefix, r.local)
	}
	return r.name
}

// NodeValue returns the value of attribute and character data nodes, and
// "" for every other kind.
func (n Node) NodeValue() string {
	if n.IsNull() {
		return ""
	}
	r := n.rec()
	if r.kind == AttributeNode || isCharacterData(r.kind) {
		return r.value
	}
	return ""
}

// SetNodeValue sets the value of attribute and character data nodes and
// does nothing for other kinds.
func (n Node) SetNodeValue(v string) {
	if n.IsNull() {
		return
	}
	switch r := n.rec(); {
	case r.kind == AttributeNode:
		Attr{n}.SetValue(v)
	case isCharacterData(r.kind):
		r.value = v
		n.doc.touch()
	}
}

func (n Node) NamespaceURI() string {
	if n.IsNull() {
		return ""
	}
	return n.rec().ns
}

func (n Node) Prefix() string {
	if n.IsNull() {
		return ""
	}
	return n.rec().prefix
}

func (n Node) LocalName() string {
	if n.IsNull() {
		return ""
	}
	return n.rec().local
}

func (n Node) Parent() Node {
	if n.IsNull() {
		return Node{}
	}
	return n.doc.node(n.rec().parent)
}

func (n Node) ParentElement() Element {
	p := n.Parent()
	if p.Type() != ElementNode {
		return Element{}
	}
	return Element{p}
}

func (n Node) FirstChild() Node {
	if n.IsNull() {
		return Node{}
	}
	return n.doc.node(n.rec().first)
}

func (n Node) LastChild() Node {
	if n.IsNull() {
		return Node{}
	}
	return n.doc.node(n.rec().last)
}

func (n Node) PreviousSibling() Node {
	if n.IsNull() {
		return Node{}
	}
	return n.doc.node(n.rec().prev)
}

func (n Node) NextSibling() Node {
	if n.IsNull() {
		return Node{}
	}
	return n.doc.node(n.rec().next)
}

func (n Node) HasChildNodes() bool {
	return !n.FirstChild().IsNull()
}

// ChildSeq iterates over the child nodes of n. The next sibling is read
// before yielding, so the loop body may detach the current child.
func (n Node) ChildSeq() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for c := n.FirstChild(); !c.IsNull(); {
			next := c.NextSibling()
			if !yield(c) {
				return
			}
			c = next
		}
	}
}

// Descendants iterates over the descendants of n in tree order, excluding n.
func (n Node) Descendants() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if n.IsNull() {
			return
		}
		for c := n.FirstChild(); !c.IsNull(); c = c.following(n) {
			if !yield(c) {
				return
			}
		}
	}
}

// following returns the node after n in tree order, staying inside root.
func (n Node) following(root Node) Node {
	if c := n.FirstChild(); !c.IsNull() {
		return c
	}
	for cur := n; !cur.IsNull() && cur != root; cur = cur.Parent() {
		if s := cur.NextSibling(); !s.IsNull() {
			return s
		}
	}
	return Node{}
}

// FirstElementChild, LastElementChild, ChildElementCount and the element
// sibling accessors skip non-element nodes.
func (n Node) FirstElementChild() Element {
	for c := n.FirstChild(); !c.IsNull(); c = c.NextSibling() {
		if c.Type() == ElementNode {
			return Element{c}
		}
	}
	return Element{}
}

func (n Node) LastElementChild() Element {
	for c := n.LastChild(); !c.IsNull(); c = c.PreviousSibling() {
		if c.Type() == ElementNode {
			return Element{c}
		}
	}
	return Element{}
}

func (n Node) ChildElementCount() int {
	i := 0
	for c := n.FirstChild(); !c.IsNull(); c = c.NextSibling() {
		if c.Type() == ElementNode {
			i++
		}
	}
	return i
}

func (n Node) NextElementSibling() Element {
	for s := n.NextSibling(); !s.IsNull(); s = s.NextSibling() {
		if s.Type() == ElementNode {
			return Element{s}
		}
	}
	return Element{}
}

func (n Node) PreviousElementSibling() Element {
	for s := n.PreviousSibling(); !s.IsNull(); s = s.PreviousSibling() {
		if s.Type() == ElementNode {
			return Element{s}
		}
	}
	return Element{}
}

// AsElement returns n as an Element, or the null Element if n is not one.
func (n Node) AsElement() Element {
	if n.Type() != ElementNode {
		return Element{}
	}
	return Element{n}
}

// AsAttr returns n as an Attr, or the null Attr if n is not one.
func (n Node) AsAttr() Attr {
	if n.Type() != AttributeNode {
		return Attr{}
	}
	return Attr{n}
}

func (n Node) IsSameNode(o Node) bool {
	return n == o
}

// Contains reports whether o is an inclusive descendant of n.
func (n Node) Contains(o Node) bool {
	if n.IsNull() || o.IsNull() || n.doc != o.doc {
		return false
	}
	for cur := o; !cur.IsNull(); cur = cur.Parent() {
		if cur == n {
			return true
		}
	}
	return false
}

// GetRootNode returns the topmost ancestor of n.
func (n Node) GetRootNode() Node {
	root := n
	for p := n.Parent(); !p.IsNull(); p = p.Parent() {
		root = p
	}
	return root
}

// IsConnected reports whether n is in its document's tree.
func (n Node) IsConnected() bool {
	return !n.IsNull() && n.GetRootNode() == n.doc.Node()
}

func (n Node) String() string {
	if n.IsNull() {
		return "<null>"
	}
	r := n.rec()
	switch r.kind {
	case ElementNode:
		return fmt.Sprintf("<%s>#%d", n.NodeName(), n.id)
	case AttributeNode:
		return fmt.Sprintf("@%s=%q#%d", n.NodeName(), r.value, n.id)
	case TextNode, CDATASectionNode, CommentNode:
		return fmt.Sprintf("%s %q#%d", r.name, r.value, n.id)
	}
	return fmt.Sprintf("%s#%d", n.NodeName(), n.id)
}

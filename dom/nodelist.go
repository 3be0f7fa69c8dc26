package dom

import (
	"fmt"
	"iter"
)

// NodeList is an ordered list of nodes. Child lists are live and write
// through to the tree; lists built with NewNodeList are static and are
// changed only through Set, Append and Insert.
type NodeList struct {
	s     *seq[Node]
	owner Node
}

// NewNodeList returns a static list holding nodes.
func NewNodeList(nodes ...Node) *NodeList {
	l := &NodeList{s: newSeq[Node]("node list", nil)}
	for _, n := range nodes {
		l.s.push(n)
	}
	return l
}

// ChildNodes returns the live list of n's children.
func (n Node) ChildNodes() *NodeList {
	return &NodeList{
		s:     newSeq[Node]("childNodes of "+n.String(), n.ChildSeq()),
		owner: n,
	}
}

func (l *NodeList) Len() int {
	return l.s.len()
}

// Item returns the i-th node, or the null node when i is out of range.
func (l *NodeList) Item(i int) Node {
	n, _ := l.s.item(i)
	return n
}

func (l *NodeList) All() iter.Seq2[int, Node] {
	return l.s.all()
}

func (l *NodeList) Slice() []Node {
	return l.s.slice()
}

// Live reports whether the list is re-derived from the tree on every read.
func (l *NodeList) Live() bool {
	return l.s.live()
}

// Set stores n at index i. On a child list this replaces the i-th child of
// the owner (or appends when i equals the length) through the mutation
// core; on a static list it only changes the list.
func (l *NodeList) Set(i int, n Node) error {
	if !l.s.live() {
		if i == l.s.l.Len() {
			l.s.push(n)
			return nil
		}
		if !l.s.set(i, n) {
			return fmt.Errorf("%w: %d", ErrIndexSize, i)
		}
		return nil
	}
	size := l.Len()
	switch {
	case i == size:
		_, err := l.owner.AppendChild(n)
		return err
	case i < 0 || i > size:
		return fmt.Errorf("%w: %d", ErrIndexSize, i)
	}
	_, err := l.owner.ReplaceChild(n, l.Item(i))
	return err
}

// Append adds n to the end of a static list.
func (l *NodeList) Append(n Node) error {
	if l.s.live() {
		return unsupportedf("append to a live node list")
	}
	l.s.push(n)
	return nil
}

// Insert adds n at index i of a static list.
func (l *NodeList) Insert(i int, n Node) error {
	if l.s.live() {
		return unsupportedf("insert into a live node list")
	}
	if !l.s.insert(i, n) {
		return fmt.Errorf("%w: %d", ErrIndexSize, i)
	}
	return nil
}

// Remove drops index i from a static list.
func (l *NodeList) Remove(i int) error {
	if l.s.live() {
		return unsupportedf("remove from a live node list")
	}
	if !l.s.remove(i) {
		return fmt.Errorf("%w: %d", ErrIndexSize, i)
	}
	return nil
}

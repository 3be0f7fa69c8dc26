package dom

import (
	"slices"

	"github.com/signadot/dawm/debug"
)

// InsertBefore inserts newChild into n before refChild, or at the end when
// refChild is null. A fragment has its children moved in order and ends up
// empty; a node that already has a parent is moved, never copied.
func (n Node) InsertBefore(newChild, refChild Node) (Node, error) {
	if newChild == refChild && !newChild.IsNull() {
		if refChild.Parent() != n {
			return Node{}, hierarchyf("%s is not a child of %s", refChild, n)
		}
		return newChild, nil
	}
	if err := n.ensureInsert([]Node{newChild}, refChild, nil); err != nil {
		return Node{}, err
	}
	n.doc.insert(n, newChild, refChild)
	return newChild, nil
}

func (n Node) AppendChild(newChild Node) (Node, error) {
	return n.InsertBefore(newChild, Node{})
}

// ReplaceChild replaces oldChild with newChild and returns oldChild.
func (n Node) ReplaceChild(newChild, oldChild Node) (Node, error) {
	if oldChild.IsNull() {
		return Node{}, hierarchyf("null child")
	}
	if !n.IsNull() && fixedChildren(n.Type()) {
		return Node{}, unsupportedf("%s nodes have no children", n.Type())
	}
	if oldChild.Parent() != n || n.IsNull() {
		return Node{}, hierarchyf("%s is not a child of %s", oldChild, n)
	}
	if newChild == oldChild {
		return oldChild, nil
	}
	skip := func(c Node) bool { return c == oldChild }
	if err := n.ensureInsert([]Node{newChild}, oldChild, skip); err != nil {
		return Node{}, err
	}
	ref := oldChild.NextSibling()
	if ref == newChild {
		ref = newChild.NextSibling()
	}
	n.doc.detach(oldChild)
	n.doc.insert(n, newChild, ref)
	return oldChild, nil
}

// RemoveChild detaches child from n and returns it. The detached node can be
// inserted again.
func (n Node) RemoveChild(child Node) (Node, error) {
	if n.IsNull() {
		return Node{}, hierarchyf("null parent")
	}
	if fixedChildren(n.Type()) {
		return Node{}, unsupportedf("%s nodes have no children", n.Type())
	}
	if child.IsNull() || child.Parent() != n {
		return Node{}, hierarchyf("%s is not a child of %s", child, n)
	}
	n.doc.detach(child)
	return child, nil
}

// Remove detaches n from its parent, if any.
func (n Node) Remove() {
	if n.IsNull() || n.rec().parent == 0 {
		return
	}
	n.doc.detach(n)
}

// Append inserts nodes after the last child of n.
func (n Node) Append(nodes ...Node) error {
	if len(nodes) == 0 {
		return nil
	}
	if err := n.ensureInsert(nodes, Node{}, inSet(nodes)); err != nil {
		return err
	}
	n.insertAll(nodes, Node{})
	return nil
}

// Prepend inserts nodes before the first child of n.
func (n Node) Prepend(nodes ...Node) error {
	if len(nodes) == 0 {
		return nil
	}
	skip := inSet(nodes)
	ref := n.firstChildWhere(func(c Node) bool { return !skip(c) })
	if err := n.ensureInsert(nodes, ref, skip); err != nil {
		return err
	}
	n.insertAll(nodes, ref)
	return nil
}

// ReplaceChildren removes all children of n and appends nodes.
func (n Node) ReplaceChildren(nodes ...Node) error {
	if !n.IsNull() && fixedChildren(n.Type()) {
		return unsupportedf("%s nodes have no children", n.Type())
	}
	skip := func(c Node) bool { return c.Parent() == n }
	if len(nodes) > 0 {
		if err := n.ensureInsert(nodes, Node{}, skip); err != nil {
			return err
		}
	}
	moving := inSet(nodes)
	for c := range n.ChildSeq() {
		if !moving(c) {
			n.doc.detach(c)
		}
	}
	n.insertAll(nodes, Node{})
	return nil
}

// Before inserts nodes into n's parent just before n. It does nothing when
// n has no parent.
func (n Node) Before(nodes ...Node) error {
	p := n.Parent()
	if p.IsNull() || len(nodes) == 0 {
		return nil
	}
	skip := inSet(nodes)
	ref := n.siblingFrom(skip)
	if err := p.ensureInsert(nodes, ref, skip); err != nil {
		return err
	}
	p.insertAll(nodes, ref)
	return nil
}

// After inserts nodes into n's parent just after n. It does nothing when n
// has no parent.
func (n Node) After(nodes ...Node) error {
	p := n.Parent()
	if p.IsNull() || len(nodes) == 0 {
		return nil
	}
	skip := inSet(nodes)
	ref := n.NextSibling().siblingFrom(skip)
	if err := p.ensureInsert(nodes, ref, skip); err != nil {
		return err
	}
	p.insertAll(nodes, ref)
	return nil
}

// ReplaceWith replaces n in its parent by nodes.
func (n Node) ReplaceWith(nodes ...Node) error {
	p := n.Parent()
	if p.IsNull() {
		return nil
	}
	moving := inSet(nodes)
	skip := func(c Node) bool { return c == n || moving(c) }
	ref := n.NextSibling().siblingFrom(skip)
	if len(nodes) > 0 {
		if err := p.ensureInsert(nodes, ref, skip); err != nil {
			return err
		}
	}
	if !moving(n) {
		n.doc.detach(n)
	}
	p.insertAll(nodes, ref)
	return nil
}

func inSet(nodes []Node) func(Node) bool {
	return func(c Node) bool { return slices.Contains(nodes, c) }
}

// siblingFrom returns the first of n and its following siblings for which
// skip is false.
func (n Node) siblingFrom(skip func(Node) bool) Node {
	for s := n; !s.IsNull(); s = s.NextSibling() {
		if !skip(s) {
			return s
		}
	}
	return Node{}
}

func (n Node) firstChildWhere(f func(Node) bool) Node {
	for c := n.FirstChild(); !c.IsNull(); c = c.NextSibling() {
		if f(c) {
			return c
		}
	}
	return Node{}
}

func (n Node) insertAll(nodes []Node, ref Node) {
	for _, c := range nodes {
		n.doc.insert(n, c, ref)
	}
}

// ensureInsert checks that inserting nodes into n before child keeps the
// tree well formed. Children of n for which skip returns true are treated
// as already gone. Nothing is modified.
func (n Node) ensureInsert(nodes []Node, child Node, skip func(Node) bool) error {
	if n.IsNull() {
		return hierarchyf("null parent")
	}
	pk := n.Type()
	if fixedChildren(pk) {
		return unsupportedf("%s nodes have no children", pk)
	}
	if skip == nil {
		skip = func(Node) bool { return false }
	}
	if !child.IsNull() && child.Parent() != n {
		if child.doc != n.doc {
			return ErrWrongDocument
		}
		return hierarchyf("%s is not a child of %s", child, n)
	}
	var effective []Node
	for _, c := range nodes {
		if c.IsNull() {
			return hierarchyf("null node")
		}
		if c.doc != n.doc {
			return ErrWrongDocument
		}
		if c.Contains(n) {
			return hierarchyf("%s is an inclusive ancestor of %s", c, n)
		}
		switch c.Type() {
		case DocumentFragmentNode:
			effective = slices.AppendSeq(effective, c.ChildSeq())
		case DocumentTypeNode:
			if len(nodes) > 1 {
				return hierarchyf("document type among several nodes")
			}
			effective = append(effective, c)
		case ElementNode, TextNode, CDATASectionNode, ProcessingInstructionNode, CommentNode:
			effective = append(effective, c)
		default:
			return hierarchyf("cannot insert %s node", c.Type())
		}
	}
	var elems, doctypes, texts int
	for _, c := range effective {
		switch c.Type() {
		case ElementNode:
			elems++
		case DocumentTypeNode:
			doctypes++
		case TextNode, CDATASectionNode:
			texts++
		}
	}
	if pk != DocumentNode {
		if doctypes > 0 {
			return hierarchyf("document type outside a document")
		}
		return nil
	}
	switch {
	case texts > 0:
		return hierarchyf("text as a child of a document")
	case elems > 1:
		return hierarchyf("document with more than one element")
	case elems == 1:
		if n.hasChildOf(ElementNode, skip) {
			return hierarchyf("document already has an element")
		}
		for s := child; !s.IsNull(); s = s.NextSibling() {
			if s.Type() == DocumentTypeNode && !skip(s) {
				return hierarchyf("element before the document type")
			}
		}
	case doctypes == 1:
		if n.hasChildOf(DocumentTypeNode, skip) {
			return hierarchyf("document already has a document type")
		}
		if child.IsNull() {
			if n.hasChildOf(ElementNode, skip) {
				return hierarchyf("document type after the element")
			}
			break
		}
		for s := child.PreviousSibling(); !s.IsNull(); s = s.PreviousSibling() {
			if s.Type() == ElementNode && !skip(s) {
				return hierarchyf("document type after the element")
			}
		}
	}
	return nil
}

func (n Node) hasChildOf(t NodeType, skip func(Node) bool) bool {
	for c := n.FirstChild(); !c.IsNull(); c = c.NextSibling() {
		if c.Type() == t && !skip(c) {
			return true
		}
	}
	return false
}

// insert links node into parent before child. Callers validate first;
// insert itself cannot fail.
func (d *Document) insert(parent, node, child Node) {
	if node.Type() == DocumentFragmentNode {
		for c := node.FirstChild(); !c.IsNull(); c = node.FirstChild() {
			d.insert(parent, c, child)
		}
		return
	}
	if node.rec().parent != 0 {
		d.detach(node)
	}
	if debug.Mutate() {
		debug.Logf("insert %s into %s before %s", node, parent, child)
	}
	pr, nr := parent.rec(), node.rec()
	nr.parent = parent.id
	if child.IsNull() {
		nr.prev, nr.next = pr.last, 0
		if pr.last != 0 {
			d.rec(pr.last).next = node.id
		} else {
			pr.first = node.id
		}
		pr.last = node.id
	} else {
		cr := child.rec()
		nr.prev, nr.next = cr.prev, child.id
		if cr.prev != 0 {
			d.rec(cr.prev).next = node.id
		} else {
			pr.first = node.id
		}
		cr.prev = node.id
	}
	d.touch()
}

// detach unlinks n from its parent and clears its structural links.
func (d *Document) detach(n Node) {
	r := n.rec()
	if r.parent == 0 {
		return
	}
	if debug.Mutate() {
		debug.Logf("detach %s from %s", n, d.node(r.parent))
	}
	pr := d.rec(r.parent)
	if r.prev != 0 {
		d.rec(r.prev).next = r.next
	} else {
		pr.first = r.next
	}
	if r.next != 0 {
		d.rec(r.next).prev = r.prev
	} else {
		pr.last = r.prev
	}
	r.parent, r.prev, r.next = 0, 0, 0
	d.touch()
}

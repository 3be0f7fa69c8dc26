package dom

// CloneNode returns a copy of n with a fresh identity. The copy has no
// parent. A deep clone also copies the children, recursively. Cloning a
// document node yields the document node of a new Document.
func (n Node) CloneNode(deep bool) Node {
	if n.IsNull() {
		return Node{}
	}
	if n.Type() == DocumentNode {
		src := n.doc
		d := NewDocument(
			WithKind(src.kind),
			WithContentType(src.contentType),
			WithQuirksMode(src.quirks),
			WithStrings(src.strings),
		)
		if deep {
			for c := range n.ChildSeq() {
				d.insert(d.Node(), d.cloneFrom(c, true), Node{})
			}
		}
		return d.Node()
	}
	return n.doc.cloneFrom(n, deep)
}

// ImportNode returns a copy of n, which may belong to another document,
// owned by d. Document nodes cannot be imported.
func (d *Document) ImportNode(n Node, deep bool) (Node, error) {
	switch n.Type() {
	case 0:
		return Node{}, unsupportedf("import of a null node")
	case DocumentNode:
		return Node{}, unsupportedf("import of a document node")
	}
	return d.cloneFrom(n, deep), nil
}

// cloneFrom copies n, which may live in another arena, into d.
func (d *Document) cloneFrom(n Node, deep bool) Node {
	src := *n.rec()
	r := record{
		kind:   src.kind,
		name:   src.name,
		value:  src.value,
		ns:     src.ns,
		prefix: src.prefix,
		local:  src.local,
	}
	switch p := src.data.(type) {
	case *elementData:
		r.data = &elementData{}
	case *attrData:
		r.data = &attrData{}
	case *doctypeData:
		cp := *p
		r.data = &cp
	}
	c := d.node(d.alloc(r))
	if src.kind == ElementNode {
		el := Element{c}
		for _, a := range (Element{n}).AttrList() {
			ar := a.rec()
			el.appendAttr(d.newAttr(ar.ns, ar.prefix, ar.local, ar.value))
		}
	}
	if deep {
		for ch := range n.ChildSeq() {
			d.insert(c, d.cloneFrom(ch, true), Node{})
		}
	}
	return c
}

// IsEqualNode reports structural equality: same type, name, value and
// namespace, the same attributes in the same order, and equal children.
// Identity is not compared.
func (n Node) IsEqualNode(o Node) bool {
	if n.IsNull() || o.IsNull() {
		return n.IsNull() == o.IsNull()
	}
	if n.Type() != o.Type() || n.NodeName() != o.NodeName() || n.NodeValue() != o.NodeValue() {
		return false
	}
	nr, or := n.rec(), o.rec()
	if nr.ns != or.ns || nr.local != or.local || nr.prefix != or.prefix {
		return false
	}
	switch nr.kind {
	case DocumentTypeNode:
		if n.PublicID() != o.PublicID() || n.SystemID() != o.SystemID() {
			return false
		}
	case ElementNode:
		na, oa := (Element{n}).AttrList(), (Element{o}).AttrList()
		if len(na) != len(oa) {
			return false
		}
		for i := range na {
			if !na[i].IsEqualNode(oa[i].Node) {
				return false
			}
		}
	}
	c, d := n.FirstChild(), o.FirstChild()
	for ; !c.IsNull() && !d.IsNull(); c, d = c.NextSibling(), d.NextSibling() {
		if !c.IsEqualNode(d) {
			return false
		}
	}
	return c.IsNull() && d.IsNull()
}

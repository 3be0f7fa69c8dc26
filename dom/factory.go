package dom

import "strings"

// CreateElement returns a new element named localName. In HTML documents
// the name is lowercased; in HTML and XHTML documents the element is in the
// HTML namespace.
func (d *Document) CreateElement(localName string) (Element, error) {
	if !validName(localName) {
		return Element{}, ErrInvalidCharacter
	}
	if d.isHTML() {
		localName = strings.ToLower(localName)
	}
	ns := ""
	if d.kind == HTMLDocument || d.kind == XHTMLDocument {
		ns = HTMLNamespace
	}
	return d.NewElement(ns, "", localName), nil
}

func (d *Document) CreateElementNS(ns, qualifiedName string) (Element, error) {
	prefix, local, err := validateAndExtract(ns, qualifiedName)
	if err != nil {
		return Element{}, err
	}
	return d.NewElement(ns, prefix, local), nil
}

// NewElement allocates an element without validating its name. It is meant
// for builders whose names come out of a markup parser.
func (d *Document) NewElement(ns, prefix, local string) Element {
	id := d.alloc(record{
		kind:   ElementNode,
		ns:     ns,
		prefix: prefix,
		local:  local,
		data:   &elementData{},
	})
	return Element{d.node(id)}
}

func (d *Document) CreateTextNode(data string) Node {
	return d.node(d.alloc(record{kind: TextNode, name: "#text", value: data}))
}

func (d *Document) CreateComment(data string) Node {
	return d.node(d.alloc(record{kind: CommentNode, name: "#comment", value: data}))
}

// CreateCDATASection fails with ErrUnsupported in HTML documents.
func (d *Document) CreateCDATASection(data string) (Node, error) {
	if d.isHTML() {
		return Node{}, unsupportedf("CDATA sections in HTML documents")
	}
	if strings.Contains(data, "]]>") {
		return Node{}, ErrInvalidCharacter
	}
	return d.node(d.alloc(record{kind: CDATASectionNode, name: "#cdata-section", value: data})), nil
}

func (d *Document) CreateProcessingInstruction(target, data string) (Node, error) {
	if !validName(target) || strings.Contains(data, "?>") {
		return Node{}, ErrInvalidCharacter
	}
	return d.node(d.alloc(record{kind: ProcessingInstructionNode, name: target, value: data})), nil
}

func (d *Document) CreateDocumentFragment() Node {
	return d.node(d.alloc(record{kind: DocumentFragmentNode, name: "#document-fragment"}))
}

func (d *Document) CreateDocumentType(name, publicID, systemID string) Node {
	return d.node(d.alloc(record{
		kind: DocumentTypeNode,
		name: name,
		data: &doctypeData{publicID: publicID, systemID: systemID},
	}))
}

// CreateAttribute returns a new, unowned attribute with an empty value.
func (d *Document) CreateAttribute(name string) (Attr, error) {
	if !validName(name) {
		return Attr{}, ErrInvalidCharacter
	}
	if d.isHTML() {
		name = strings.ToLower(name)
	}
	return d.newAttr("", "", name, ""), nil
}

func (d *Document) CreateAttributeNS(ns, qualifiedName string) (Attr, error) {
	prefix, local, err := validateAndExtract(ns, qualifiedName)
	if err != nil {
		return Attr{}, err
	}
	return d.newAttr(ns, prefix, local, ""), nil
}

func (d *Document) newAttr(ns, prefix, local, value string) Attr {
	id := d.alloc(record{
		kind:   AttributeNode,
		ns:     ns,
		prefix: prefix,
		local:  local,
		value:  value,
		data:   &attrData{},
	})
	return Attr{d.node(id)}
}

// PublicID and SystemID return the identifiers of a document type node.
func (n Node) PublicID() string {
	if dt, ok := n.doctype(); ok {
		return dt.publicID
	}
	return ""
}

func (n Node) SystemID() string {
	if dt, ok := n.doctype(); ok {
		return dt.systemID
	}
	return ""
}

func (n Node) doctype() (*doctypeData, bool) {
	if n.Type() != DocumentTypeNode {
		return nil, false
	}
	dt, ok := n.rec().data.(*doctypeData)
	return dt, ok
}

package dom

import (
	"slices"
	"strings"

	"github.com/signadot/dawm/wire"
)

const rootID ID = 1

// Document owns the arena holding all of its nodes.
type Document struct {
	nodes       []record
	kind        Kind
	contentType string
	quirks      wire.QuirksMode
	strings     []string

	version uint64
	cache   struct {
		version              uint64
		valid                bool
		root, head, body, dt ID
	}
}

type docOpts struct {
	contentType string
	kind        *Kind
	quirks      wire.QuirksMode
	strings     []string
}

type DocumentOption func(*docOpts)

// WithContentType sets the document content type. Unless [WithKind] is
// also given the document kind follows from it.
func WithContentType(ct string) DocumentOption {
	return func(o *docOpts) { o.contentType = ct }
}

func WithKind(k Kind) DocumentOption {
	return func(o *docOpts) { o.kind = &k }
}

func WithQuirksMode(q wire.QuirksMode) DocumentOption {
	return func(o *docOpts) { o.quirks = q }
}

// WithStrings attaches the interned strings table the document was
// assembled from. The table is copied and never modified afterwards.
func WithStrings(strs []string) DocumentOption {
	return func(o *docOpts) { o.strings = slices.Clone(strs) }
}

// NewDocument returns an empty document.
func NewDocument(opts ...DocumentOption) *Document {
	o := &docOpts{}
	for _, opt := range opts {
		opt(o)
	}
	d := &Document{
		contentType: o.contentType,
		quirks:      o.quirks,
		strings:     o.strings,
		nodes:       make([]record, 1, 64),
	}
	if o.kind != nil {
		d.kind = *o.kind
	} else {
		d.kind = KindOf(o.contentType)
	}
	d.alloc(record{kind: DocumentNode, name: "#document"})
	return d
}

// NewHTMLDocument returns a text/html document holding a doctype and an
// html element with head, title and body.
func NewHTMLDocument(title string) *Document {
	d := NewDocument(WithContentType(wire.MIMEHTML))
	root := d.Node()
	must := func(_ Node, err error) {
		if err != nil {
			panic(err)
		}
	}
	must(root.AppendChild(d.CreateDocumentType("html", "", "")))
	html := d.mustElement("html")
	head := d.mustElement("head")
	must(root.AppendChild(html.Node))
	must(html.AppendChild(head.Node))
	if title != "" {
		t := d.mustElement("title")
		must(t.AppendChild(d.CreateTextNode(title)))
		must(head.AppendChild(t.Node))
	}
	must(html.AppendChild(d.mustElement("body").Node))
	return d
}

func (d *Document) mustElement(name string) Element {
	el, err := d.CreateElement(name)
	if err != nil {
		panic(err)
	}
	return el
}

// Node returns the document node.
func (d *Document) Node() Node {
	return Node{doc: d, id: rootID}
}

func (d *Document) Kind() Kind {
	return d.kind
}

func (d *Document) ContentType() string {
	return d.contentType
}

func (d *Document) QuirksMode() wire.QuirksMode {
	return d.quirks
}

// CompatMode returns "BackCompat" for quirks mode documents and
// "CSS1Compat" otherwise.
func (d *Document) CompatMode() string {
	if d.quirks == wire.Quirks {
		return "BackCompat"
	}
	return "CSS1Compat"
}

// Strings returns a copy of the interned strings table the document was
// assembled from.
func (d *Document) Strings() []string {
	return slices.Clone(d.strings)
}

func (d *Document) isHTML() bool {
	return d.kind == HTMLDocument
}

func (d *Document) refresh() {
	if d.cache.valid && d.cache.version == d.version {
		return
	}
	c := &d.cache
	c.valid, c.version = true, d.version
	c.root, c.head, c.body, c.dt = 0, 0, 0, 0
	for ch := d.Node().FirstChild(); !ch.IsNull(); ch = ch.NextSibling() {
		switch ch.Type() {
		case ElementNode:
			if c.root == 0 {
				c.root = ch.id
			}
		case DocumentTypeNode:
			if c.dt == 0 {
				c.dt = ch.id
			}
		}
	}
	if c.root == 0 {
		return
	}
	root := d.node(c.root)
	if !isHTMLElement(root, "html") {
		return
	}
	for ch := root.FirstChild(); !ch.IsNull(); ch = ch.NextSibling() {
		switch {
		case c.head == 0 && isHTMLElement(ch, "head"):
			c.head = ch.id
		case c.body == 0 && (isHTMLElement(ch, "body") || isHTMLElement(ch, "frameset")):
			c.body = ch.id
		}
	}
}

func isHTMLElement(n Node, local string) bool {
	if n.Type() != ElementNode {
		return false
	}
	r := n.rec()
	return r.ns == HTMLNamespace && r.local == local
}

// DocumentElement returns the document's element child.
func (d *Document) DocumentElement() Element {
	d.refresh()
	return Element{d.node(d.cache.root)}
}

// Head returns the first head child of an html document element.
func (d *Document) Head() Element {
	d.refresh()
	return Element{d.node(d.cache.head)}
}

// Body returns the first body or frameset child of an html document element.
func (d *Document) Body() Element {
	d.refresh()
	return Element{d.node(d.cache.body)}
}

func (d *Document) Doctype() Node {
	d.refresh()
	return d.node(d.cache.dt)
}

// Title returns the whitespace-collapsed text of the document title.
func (d *Document) Title() string {
	root := d.DocumentElement()
	var title Node
	if root.NamespaceURI() == SVGNamespace && root.LocalName() == "svg" {
		for ch := root.FirstChild(); !ch.IsNull(); ch = ch.NextSibling() {
			if ch.Type() == ElementNode && ch.NamespaceURI() == SVGNamespace && ch.LocalName() == "title" {
				title = ch
				break
			}
		}
	} else {
		for n := range d.Node().Descendants() {
			if isHTMLElement(n, "title") {
				title = n
				break
			}
		}
	}
	if title.IsNull() {
		return ""
	}
	return strings.Join(strings.Fields(title.TextContent()), " ")
}

// GetElementByID returns the first element in tree order whose id is id.
func (d *Document) GetElementByID(id string) Element {
	return d.Node().GetElementByID(id)
}

// GetElementByID returns the first descendant element of n whose id is id.
func (n Node) GetElementByID(id string) Element {
	if id == "" {
		return Element{}
	}
	for c := range n.Descendants() {
		if c.Type() != ElementNode {
			continue
		}
		if v, ok := (Element{c}).GetAttribute("id"); ok && v == id {
			return Element{c}
		}
	}
	return Element{}
}

package parse

import (
	"bytes"

	"github.com/signadot/dawm/debug"
	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/wire"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var foreignNS = map[string]string{
	"":      dom.HTMLNamespace,
	"svg":   dom.SVGNamespace,
	"math":  dom.MathMLNamespace,
	"xlink": dom.XLinkNamespace,
	"xml":   dom.XMLNamespace,
	"xmlns": dom.XMLNSNamespace,
}

func htmlOpts(o *parseOpts) []html.ParseOption {
	return []html.ParseOption{html.ParseOptionEnableScripting(o.scripts)}
}

func parseHTML(input []byte, o *parseOpts) (*wire.Doc, error) {
	root, err := html.ParseWithOptions(bytes.NewReader(input), htmlOpts(o)...)
	if err != nil {
		return nil, err
	}
	b := newBuilder(o.interner, wire.MIMEHTML)
	doc := b.add(-1, wire.DocumentNode, "#document")
	q := doctypeQuirks(false, "", "", "", false, o.srcdoc)
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			public, system, hasSystem := doctypeIDs(c)
			q = doctypeQuirks(true, c.Data, public, system, hasSystem, o.srcdoc)
			break
		}
		if c.Type == html.ElementNode {
			break
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		htmlNode(b, doc, c, o)
	}
	if debug.Wire() {
		debug.Logf("parsed html document: %d nodes, %s", len(b.nodes), q)
	}
	return b.doc(q), nil
}

func parseFragment(input []byte, o *parseOpts) (*wire.Doc, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     o.context,
		DataAtom: atom.Lookup([]byte(o.context)),
	}
	nodes, err := html.ParseFragmentWithOptions(bytes.NewReader(input), ctx, htmlOpts(o)...)
	if err != nil {
		return nil, err
	}
	b := newBuilder(o.interner, wire.MIMEHTML)
	doc := b.add(-1, wire.DocumentNode, "#document")
	top := b.element(doc, dom.HTMLNamespace, "html")
	for _, n := range nodes {
		htmlNode(b, top, n, o)
	}
	if debug.Wire() {
		debug.Logf("parsed html fragment in <%s>: %d nodes", o.context, len(b.nodes))
	}
	return b.doc(o.quirks), nil
}

func doctypeIDs(n *html.Node) (public, system string, hasSystem bool) {
	for _, a := range n.Attr {
		switch a.Key {
		case "public":
			public = a.Val
		case "system":
			system, hasSystem = a.Val, true
		}
	}
	return
}

func htmlNode(b *builder, parent int, n *html.Node, o *parseOpts) {
	switch n.Type {
	case html.DoctypeNode:
		if o.dropDoctype {
			return
		}
		public, system, _ := doctypeIDs(n)
		b.doctype(parent, n.Data, public, system)
	case html.TextNode:
		b.valued(parent, wire.TextNode, "#text", n.Data)
	case html.CommentNode:
		b.valued(parent, wire.CommentNode, "#comment", n.Data)
	case html.ElementNode:
		id := b.element(parent, foreignNS[n.Namespace], n.Data)
		for _, a := range n.Attr {
			if a.Namespace == "" {
				b.attr(id, "", a.Key, a.Val)
				continue
			}
			b.attr(id, foreignNS[a.Namespace], a.Namespace+":"+a.Key, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			htmlNode(b, id, c, o)
		}
	default:
		if debug.Wire() {
			debug.Logf("skipping html node of type %d", n.Type)
		}
	}
}

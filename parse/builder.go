package parse

import (
	"strings"

	"github.com/signadot/dawm/assemble"
	"github.com/signadot/dawm/wire"
)

// builder lays out a wire document in the order nodes are added. Parents
// must be added before their children.
type builder struct {
	in    *wire.Interner
	ct    string
	nodes []wire.Node
	last  []int
	ns    []string
}

func newBuilder(in *wire.Interner, ct string) *builder {
	return &builder{in: in, ct: ct}
}

func (b *builder) add(parent int, t wire.NodeType, name string) int {
	id := len(b.nodes)
	n := wire.Node{ID: uint32(id), NodeType: t, NodeName: b.in.Ref(name)}
	if parent >= 0 {
		p, c := uint32(parent), uint32(id)
		n.ParentNode = &p
		if l := b.last[parent]; l >= 0 {
			b.nodes[l].NextSibling = &c
		} else {
			b.nodes[parent].FirstChild = &c
		}
		b.last[parent] = id
	}
	b.nodes = append(b.nodes, n)
	b.last = append(b.last, -1)
	b.ns = append(b.ns, "")
	return id
}

func (b *builder) valued(parent int, t wire.NodeType, name, value string) int {
	id := b.add(parent, t, name)
	b.nodes[id].NodeValue = b.in.Ref(value)
	return id
}

// element adds an element in namespace ns. The namespace is written to the
// wire only when it cannot be inferred from the parent element or the
// content type.
func (b *builder) element(parent int, ns, qname string) int {
	inherited := assemble.DefaultNamespace(b.ct)
	if parent >= 0 && b.nodes[parent].NodeType == wire.ElementNode {
		inherited = b.ns[parent]
	}
	id := b.add(parent, wire.ElementNode, qname)
	b.ns[id] = ns
	if ns != inherited || strings.Contains(qname, ":") {
		b.nodes[id].NamespaceURI = b.in.Ref(ns)
	}
	return id
}

func (b *builder) attr(id int, ns, qname, value string) {
	a := wire.Attr{Name: b.in.Intern(qname), Value: b.in.Ref(value)}
	if ns != "" {
		a.NS = b.in.Ref(ns)
	}
	b.nodes[id].Attributes = append(b.nodes[id].Attributes, a)
}

func (b *builder) doctype(parent int, name, public, system string) int {
	value := name
	if public != "" {
		value += ` PUBLIC "` + public + `"`
	}
	if system != "" {
		value += ` SYSTEM "` + system + `"`
	}
	id := b.valued(parent, wire.DocumentTypeNode, name, value)
	b.attr(id, "", "name", name)
	if public != "" {
		b.attr(id, "", "publicId", public)
	}
	if system != "" {
		b.attr(id, "", "systemId", system)
	}
	return id
}

func (b *builder) doc(q wire.QuirksMode) *wire.Doc {
	return &wire.Doc{
		ContentType: b.ct,
		QuirksMode:  q.String(),
		Strings:     b.in.Strings(),
		Nodes:       b.nodes,
	}
}

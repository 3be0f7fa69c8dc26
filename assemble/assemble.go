package assemble

import (
	"fmt"

	"github.com/signadot/dawm/debug"
	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/wire"
)

// Document assembles the resolved wire document r into a new
// dom.Document.
func Document(r *wire.Resolved) (*dom.Document, error) {
	if r == nil {
		return nil, ErrMissingRoot
	}
	root := r.Root()
	if root == nil {
		return nil, ErrMissingRoot
	}
	ctx := NewContext(r, nil)
	ctx.visited[root.ID] = true
	if debug.Assemble() {
		debug.Logf("assemble %s document (%s, %d nodes)", ctx.Doc.Kind(), ctx.QuirksMode, len(r.Nodes))
	}
	if err := children(root, ctx.Doc.Node(), ctx); err != nil {
		return nil, err
	}
	return ctx.Doc, nil
}

// Subtree instantiates n, attaches it to parent (before next, else after
// prev, else as the last child) and assembles its children. parent may be
// null, in which case the node is returned unattached.
func Subtree(n *wire.ResolvedNode, parent, prev, next dom.Node, ctx *Context) (dom.Node, error) {
	if ctx == nil {
		return dom.Node{}, ErrMissingContext
	}
	if n == nil {
		return dom.Node{}, &wire.MalformedError{Path: "$.nodes", Reason: "nil node"}
	}
	if ctx.visited[n.ID] {
		return dom.Node{}, malformed(n, "node reached twice (cycle or shared child)")
	}
	ctx.visited[n.ID] = true

	node, err := instantiate(n, parent, ctx)
	if err != nil {
		return dom.Node{}, err
	}
	if !parent.IsNull() {
		ref := next
		if ref.IsNull() && !prev.IsNull() {
			ref = prev.NextSibling()
		}
		if debug.Assemble() {
			debug.Logf("attach wire node %d as %s under %s", n.ID, node, parent)
		}
		if _, err := parent.InsertBefore(node, ref); err != nil {
			return dom.Node{}, fmt.Errorf("wire node %d: %w", n.ID, err)
		}
	}
	if err := children(n, node, ctx); err != nil {
		return dom.Node{}, err
	}
	return node, nil
}

// children assembles the firstChild/nextSibling chain of n under node.
func children(n *wire.ResolvedNode, node dom.Node, ctx *Context) error {
	var prev dom.Node
	for id := n.FirstChild; id != nil; {
		c, ok := ctx.node(*id)
		if !ok {
			return malformed(n, "child id %d not found", *id)
		}
		if c.ParentNode != nil && *c.ParentNode != n.ID {
			return malformed(c, "parentNode is %d, reached from %d", *c.ParentNode, n.ID)
		}
		child, err := Subtree(c, node, prev, dom.Node{}, ctx)
		if err != nil {
			return err
		}
		prev = child
		id = c.NextSibling
	}
	return nil
}

func malformed(n *wire.ResolvedNode, format string, args ...any) error {
	return &wire.MalformedError{
		Path:   fmt.Sprintf("$.nodes[id=%d]", n.ID),
		Reason: fmt.Sprintf(format, args...),
	}
}

func instantiate(n *wire.ResolvedNode, parent dom.Node, ctx *Context) (dom.Node, error) {
	d := ctx.Doc
	switch n.NodeType {
	case wire.ElementNode:
		prefix, local := splitName(n.Name())
		if local == "" {
			return dom.Node{}, malformed(n, "element without a name")
		}
		ns := elementNamespace(n, prefix, parent, ctx)
		el := d.NewElement(ns, prefix, local)
		for i := range n.Attributes {
			ans, aprefix, alocal := attrNamespace(&n.Attributes[i])
			el.PutAttributeNS(ans, aprefix, alocal, n.Attributes[i].Value)
		}
		return el.Node, nil
	case wire.TextNode:
		return d.CreateTextNode(n.Value()), nil
	case wire.CDATASectionNode:
		c, err := d.CreateCDATASection(n.Value())
		if err != nil {
			// HTML documents have no CDATA sections; keep the content as text.
			if debug.Assemble() {
				debug.Logf("wire node %d: %v, using a text node", n.ID, err)
			}
			return d.CreateTextNode(n.Value()), nil
		}
		return c, nil
	case wire.CommentNode:
		return d.CreateComment(n.Value()), nil
	case wire.ProcessingInstructionNode:
		pi, err := d.CreateProcessingInstruction(n.Name(), n.Value())
		if err != nil {
			return dom.Node{}, fmt.Errorf("wire node %d: %w", n.ID, err)
		}
		return pi, nil
	case wire.DocumentTypeNode:
		name, public, system := n.Name(), "", ""
		for _, a := range n.Attributes {
			switch a.Name {
			case "name":
				name = a.Value
			case "publicId":
				public = a.Value
			case "systemId":
				system = a.Value
			}
		}
		return d.CreateDocumentType(name, public, system), nil
	case wire.DocumentFragmentNode:
		if !parent.IsNull() {
			return dom.Node{}, malformed(n, "document fragment inside a tree")
		}
		return d.CreateDocumentFragment(), nil
	case wire.DocumentNode:
		return dom.Node{}, malformed(n, "nested document node")
	case wire.AttributeNode:
		return dom.Node{}, malformed(n, "attribute node in a child chain")
	}
	return dom.Node{}, fmt.Errorf("wire node %d: %w: %s nodes", n.ID, dom.ErrUnsupported, n.NodeType)
}

package libdiff

import (
	"strconv"
	"strings"

	"github.com/signadot/dawm/dom"
)

// Outline renders n as one line per node, indented by depth. Attributes
// stay on their element's line in document order.
func Outline(n dom.Node) string {
	var b strings.Builder
	outline(&b, n, 0)
	return b.String()
}

func outline(b *strings.Builder, n dom.Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	switch n.Type() {
	case dom.ElementNode:
		el := n.AsElement()
		b.WriteString(el.NodeName())
		for _, a := range el.AttrList() {
			b.WriteString(" " + a.Name() + "=" + strconv.Quote(a.Value()))
		}
	case dom.TextNode, dom.CDATASectionNode, dom.CommentNode:
		b.WriteString(n.NodeName() + " " + strconv.Quote(n.Data()))
	case dom.ProcessingInstructionNode:
		b.WriteString("?" + n.NodeName() + " " + strconv.Quote(n.Data()))
	case dom.DocumentTypeNode:
		b.WriteString("!DOCTYPE " + n.NodeName())
		if p := n.PublicID(); p != "" {
			b.WriteString(" public=" + strconv.Quote(p))
		}
		if s := n.SystemID(); s != "" {
			b.WriteString(" system=" + strconv.Quote(s))
		}
	case dom.AttributeNode:
		b.WriteString("@" + n.NodeName() + "=" + strconv.Quote(n.NodeValue()))
	default:
		b.WriteString(n.NodeName())
	}
	b.WriteByte('\n')
	for c := range n.ChildSeq() {
		outline(b, c, depth+1)
	}
}

// Nodes diffs the outlines of a and b.
func Nodes(a, b dom.Node) []Edit {
	return DiffString(Outline(a), Outline(b))
}

package dom

import "github.com/signadot/dawm/wire"

// NodeType is the DOM nodeType tag. It shares its values with the wire
// format.
type NodeType = wire.NodeType

const (
	ElementNode               = wire.ElementNode
	AttributeNode             = wire.AttributeNode
	TextNode                  = wire.TextNode
	CDATASectionNode          = wire.CDATASectionNode
	ProcessingInstructionNode = wire.ProcessingInstructionNode
	CommentNode               = wire.CommentNode
	DocumentNode              = wire.DocumentNode
	DocumentTypeNode          = wire.DocumentTypeNode
	DocumentFragmentNode      = wire.DocumentFragmentNode
)

// Kind selects the document flavour. It decides whether element and
// attribute names are case-folded and which node factories are allowed.
type Kind uint8

const (
	PlainDocument Kind = iota
	XMLDocument
	XHTMLDocument
	HTMLDocument
)

func (k Kind) String() string {
	switch k {
	case XMLDocument:
		return "xml"
	case XHTMLDocument:
		return "xhtml"
	case HTMLDocument:
		return "html"
	default:
		return "plain"
	}
}

// KindOf maps a content type to the document kind assembled for it.
func KindOf(contentType string) Kind {
	if contentType == "" {
		return PlainDocument
	}
	switch wire.NormalizeMIME(contentType) {
	case wire.MIMEHTML:
		return HTMLDocument
	case wire.MIMEXHTML:
		return XHTMLDocument
	default:
		return XMLDocument
	}
}

// fixedChildren reports whether nodes of kind t can never have children.
func fixedChildren(t NodeType) bool {
	switch t {
	case DocumentNode, DocumentFragmentNode, ElementNode:
		return false
	}
	return true
}

func isCharacterData(t NodeType) bool {
	switch t {
	case TextNode, CDATASectionNode, CommentNode, ProcessingInstructionNode:
		return true
	}
	return false
}

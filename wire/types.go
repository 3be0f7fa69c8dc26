package wire

import "fmt"

type NodeType uint8

const (
	ElementNode               NodeType = 1
	AttributeNode             NodeType = 2
	TextNode                  NodeType = 3
	CDATASectionNode          NodeType = 4
	EntityReferenceNode       NodeType = 5
	EntityNode                NodeType = 6
	ProcessingInstructionNode NodeType = 7
	CommentNode               NodeType = 8
	DocumentNode              NodeType = 9
	DocumentTypeNode          NodeType = 10
	DocumentFragmentNode      NodeType = 11
	NotationNode              NodeType = 12
)

var nodeTypeNames = map[NodeType]string{
	ElementNode:               "Element",
	AttributeNode:             "Attribute",
	TextNode:                  "Text",
	CDATASectionNode:          "CData",
	EntityReferenceNode:       "EntityReference",
	EntityNode:                "Entity",
	ProcessingInstructionNode: "ProcessingInstruction",
	CommentNode:               "Comment",
	DocumentNode:              "Document",
	DocumentTypeNode:          "DocumentType",
	DocumentFragmentNode:      "DocumentFragment",
	NotationNode:              "Notation",
}

func (t NodeType) String() string {
	s, ok := nodeTypeNames[t]
	if ok {
		return s
	}
	return fmt.Sprintf("<unknown node type %d>", uint8(t))
}

func (t NodeType) Valid() bool {
	return t >= ElementNode && t <= NotationNode
}

// Attr is an attribute of a wire element. Name, Value and NS are indices into
// the document strings table.
type Attr struct {
	NS    *uint32 `json:"ns,omitempty" yaml:"ns,omitempty"`
	Name  uint32  `json:"name" yaml:"name"`
	Value *uint32 `json:"value,omitempty" yaml:"value,omitempty"`
}

// Node is one flat wire record. Structural relations are node ids, string
// fields are indices into the document strings table.
type Node struct {
	ID           uint32   `json:"id" yaml:"id"`
	NodeType     NodeType `json:"nodeType" yaml:"nodeType"`
	NodeName     *uint32  `json:"nodeName,omitempty" yaml:"nodeName,omitempty"`
	NodeValue    *uint32  `json:"nodeValue,omitempty" yaml:"nodeValue,omitempty"`
	NamespaceURI *uint32  `json:"namespaceURI,omitempty" yaml:"namespaceURI,omitempty"`
	ParentNode   *uint32  `json:"parentNode,omitempty" yaml:"parentNode,omitempty"`
	FirstChild   *uint32  `json:"firstChild,omitempty" yaml:"firstChild,omitempty"`
	NextSibling  *uint32  `json:"nextSibling,omitempty" yaml:"nextSibling,omitempty"`
	Attributes   []Attr   `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Doc is a complete wire document as emitted by a parser.
type Doc struct {
	ContentType string   `json:"contentType" yaml:"contentType"`
	QuirksMode  string   `json:"quirksMode" yaml:"quirksMode"`
	Strings     []string `json:"strings" yaml:"strings"`
	Nodes       []Node   `json:"nodes" yaml:"nodes"`
}

type ResolvedAttr struct {
	NS    *string
	Name  string
	Value string
}

type ResolvedNode struct {
	ID           uint32
	NodeType     NodeType
	NodeName     *string
	NodeValue    *string
	NamespaceURI *string
	ParentNode   *uint32
	FirstChild   *uint32
	NextSibling  *uint32
	Attributes   []ResolvedAttr
}

// Name returns the node name, or "" when the wire node carried none.
func (n *ResolvedNode) Name() string {
	if n.NodeName == nil {
		return ""
	}
	return *n.NodeName
}

// Value returns the node value, or "" when the wire node carried none.
func (n *ResolvedNode) Value() string {
	if n.NodeValue == nil {
		return ""
	}
	return *n.NodeValue
}

// Resolved is a wire document whose string indices have all been replaced by
// the strings they denote.
type Resolved struct {
	ContentType string
	QuirksMode  QuirksMode
	Strings     []string
	Nodes       []ResolvedNode
}

// Root returns the first node tagged as a document, or nil.
func (r *Resolved) Root() *ResolvedNode {
	for i := range r.Nodes {
		if r.Nodes[i].NodeType == DocumentNode {
			return &r.Nodes[i]
		}
	}
	return nil
}

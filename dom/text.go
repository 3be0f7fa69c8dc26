package dom

import (
	"strings"
	"unicode/utf8"
)

// TextContent returns the concatenated text of n's descendants for elements
// and fragments, the value for attributes and character data, and "" for
// documents and document types.
func (n Node) TextContent() string {
	switch n.Type() {
	case ElementNode, DocumentFragmentNode:
		var b strings.Builder
		for c := range n.Descendants() {
			if t := c.Type(); t == TextNode || t == CDATASectionNode {
				b.WriteString(c.rec().value)
			}
		}
		return b.String()
	case AttributeNode, TextNode, CDATASectionNode, CommentNode, ProcessingInstructionNode:
		return n.rec().value
	}
	return ""
}

// SetTextContent replaces the children of an element or fragment with a
// single text node holding s (none when s is empty), and sets the value of
// attributes and character data.
func (n Node) SetTextContent(s string) {
	switch n.Type() {
	case ElementNode, DocumentFragmentNode:
		for c := range n.ChildSeq() {
			n.doc.detach(c)
		}
		if s != "" {
			n.doc.insert(n, n.doc.CreateTextNode(s), Node{})
		}
	case AttributeNode, TextNode, CDATASectionNode, CommentNode, ProcessingInstructionNode:
		n.SetNodeValue(s)
	}
}

// Normalize removes empty text nodes under n and merges adjacent ones.
func (n Node) Normalize() {
	if n.IsNull() {
		return
	}
	for c := n.FirstChild(); !c.IsNull(); {
		next := c.NextSibling()
		if c.Type() != TextNode {
			c.Normalize()
			c = next
			continue
		}
		r := c.rec()
		for next.Type() == TextNode {
			r.value += next.rec().value
			after := next.NextSibling()
			n.doc.detach(next)
			next = after
		}
		if r.value == "" {
			n.doc.detach(c)
		}
		c = next
	}
	n.doc.touch()
}

// Data returns the data of a character data node.
func (n Node) Data() string {
	if !isCharacterData(n.Type()) {
		return ""
	}
	return n.rec().value
}

func (n Node) SetData(s string) {
	if isCharacterData(n.Type()) {
		n.SetNodeValue(s)
	}
}

// Length returns the length in runes of a character data node's data, or
// the number of children for other kinds.
func (n Node) Length() int {
	if isCharacterData(n.Type()) {
		return utf8.RuneCountInString(n.rec().value)
	}
	if n.Type() == DocumentTypeNode || n.Type() == AttributeNode {
		return 0
	}
	i := 0
	for range n.ChildSeq() {
		i++
	}
	return i
}

func (n Node) AppendData(s string) {
	if isCharacterData(n.Type()) {
		n.SetNodeValue(n.rec().value + s)
	}
}

// SubstringData returns count runes of data starting at offset. Offsets
// past the end fail ErrIndexSize; count is clamped.
func (n Node) SubstringData(offset, count int) (string, error) {
	rs, err := n.dataRunes(offset)
	if err != nil {
		return "", err
	}
	end := min(offset+max(count, 0), len(rs))
	return string(rs[offset:end]), nil
}

func (n Node) InsertData(offset int, s string) error {
	return n.ReplaceData(offset, 0, s)
}

func (n Node) DeleteData(offset, count int) error {
	return n.ReplaceData(offset, count, "")
}

// ReplaceData replaces count runes at offset with s.
func (n Node) ReplaceData(offset, count int, s string) error {
	rs, err := n.dataRunes(offset)
	if err != nil {
		return err
	}
	end := min(offset+max(count, 0), len(rs))
	n.SetNodeValue(string(rs[:offset]) + s + string(rs[end:]))
	return nil
}

func (n Node) dataRunes(offset int) ([]rune, error) {
	if !isCharacterData(n.Type()) {
		return nil, unsupportedf("%s is not character data", n.Type())
	}
	rs := []rune(n.rec().value)
	if offset < 0 || offset > len(rs) {
		return nil, ErrIndexSize
	}
	return rs, nil
}

// SplitText splits a text node at offset. The tail becomes a new text node
// inserted after n, and is returned.
func (n Node) SplitText(offset int) (Node, error) {
	if n.Type() != TextNode && n.Type() != CDATASectionNode {
		return Node{}, unsupportedf("%s is not a text node", n.Type())
	}
	rs, err := n.dataRunes(offset)
	if err != nil {
		return Node{}, err
	}
	r := n.rec()
	tail := n.doc.node(n.doc.alloc(record{kind: r.kind, name: r.name, value: string(rs[offset:])}))
	n.rec().value = string(rs[:offset])
	if p := n.Parent(); !p.IsNull() {
		n.doc.insert(p, tail, n.NextSibling())
	}
	n.doc.touch()
	return tail, nil
}

// WholeText returns the data of n and its contiguous text siblings.
func (n Node) WholeText() string {
	if n.Type() != TextNode {
		return n.Data()
	}
	start := n
	for p := n.PreviousSibling(); p.Type() == TextNode; p = p.PreviousSibling() {
		start = p
	}
	var b strings.Builder
	for s := start; s.Type() == TextNode; s = s.NextSibling() {
		b.WriteString(s.rec().value)
	}
	return b.String()
}

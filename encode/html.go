package encode

import (
	"strings"

	"github.com/signadot/dawm/dom"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "bgsound": true, "br": true,
	"col": true, "embed": true, "frame": true, "hr": true, "img": true,
	"input": true, "keygen": true, "link": true, "meta": true, "param": true,
	"source": true, "track": true, "wbr": true,
}

// rawTextElements hold children that are written without escaping.
var rawTextElements = map[string]bool{
	"style": true, "script": true, "xmp": true, "iframe": true,
	"noembed": true, "noframes": true, "plaintext": true, "noscript": true,
}

// newlineElements lose a leading newline on parse.
var newlineElements = map[string]bool{
	"pre": true, "textarea": true, "listing": true,
}

func (es *EncState) htmlNode(n dom.Node) error {
	switch n.Type() {
	case dom.DocumentNode, dom.DocumentFragmentNode:
		return es.htmlChildren(n)
	case dom.ElementNode:
		return es.htmlElement(n.AsElement())
	case dom.TextNode:
		if p := n.ParentElement(); p.IsHTML() && rawTextElements[p.LocalName()] {
			es.write(n.Data())
			return nil
		}
		es.write(htmlTextEscaper.Replace(n.Data()))
	case dom.CDATASectionNode:
		es.write("<![CDATA[" + n.Data() + "]]>")
	case dom.CommentNode:
		es.comment(n.Data())
	case dom.ProcessingInstructionNode:
		es.colored(CommentColor, "<?"+n.NodeName()+" "+n.Data()+">")
	case dom.DocumentTypeNode:
		es.colored(DoctypeColor, doctype(n))
	case dom.AttributeNode:
		es.colored(AttrNameColor, htmlAttrName(n.AsAttr()))
		es.colored(SepColor, "=")
		es.colored(AttrValueColor, `"`+htmlAttrEscaper.Replace(n.NodeValue())+`"`)
	default:
		return unexpected(n)
	}
	return nil
}

func (es *EncState) htmlChildren(n dom.Node) error {
	for c := range n.ChildSeq() {
		if err := es.htmlNode(c); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) htmlElement(el dom.Element) error {
	name := htmlTagName(el)
	es.openTag(name)
	for _, a := range el.AttrList() {
		es.attr(htmlAttrName(a), htmlAttrEscaper.Replace(a.Value()))
	}
	es.colored(SepColor, ">")
	html := el.NamespaceURI() == dom.HTMLNamespace
	if html && voidElements[el.LocalName()] {
		return nil
	}
	if html && newlineElements[el.LocalName()] {
		if c := el.FirstChild(); c.Type() == dom.TextNode && strings.HasPrefix(c.Data(), "\n") {
			es.write("\n")
		}
	}
	if err := es.htmlChildren(el.Node); err != nil {
		return err
	}
	es.closeTag(name)
	return nil
}

func htmlTagName(el dom.Element) string {
	switch el.NamespaceURI() {
	case dom.HTMLNamespace, dom.SVGNamespace, dom.MathMLNamespace:
		return el.LocalName()
	}
	return el.NodeName()
}

func htmlAttrName(a dom.Attr) string {
	local := a.LocalName()
	switch a.NamespaceURI() {
	case "":
		return local
	case dom.XMLNamespace:
		return "xml:" + local
	case dom.XMLNSNamespace:
		if local == "xmlns" {
			return local
		}
		return "xmlns:" + local
	case dom.XLinkNamespace:
		return "xlink:" + local
	}
	return a.Name()
}

package encode

import (
	"fmt"
	"maps"

	"github.com/signadot/dawm/dom"
)

// scope maps prefixes to the namespaces in effect at an element. The empty
// prefix holds the default namespace.
type scope map[string]string

func newScope() scope {
	return scope{"xml": dom.XMLNamespace, "xmlns": dom.XMLNSNamespace}
}

func (s scope) prefixFor(ns string) (string, bool) {
	for p, v := range s {
		if v == ns && p != "" {
			return p, true
		}
	}
	return "", false
}

func (es *EncState) xmlNode(n dom.Node, sc scope) error {
	switch n.Type() {
	case dom.DocumentNode, dom.DocumentFragmentNode:
		return es.xmlChildren(n, sc)
	case dom.ElementNode:
		return es.xmlElement(n.AsElement(), sc)
	case dom.TextNode:
		es.write(xmlTextEscaper.Replace(n.Data()))
	case dom.CDATASectionNode:
		es.write("<![CDATA[" + n.Data() + "]]>")
	case dom.CommentNode:
		es.comment(n.Data())
	case dom.ProcessingInstructionNode:
		pi := "<?" + n.NodeName()
		if d := n.Data(); d != "" {
			pi += " " + d
		}
		es.colored(CommentColor, pi+"?>")
	case dom.DocumentTypeNode:
		es.colored(DoctypeColor, doctype(n))
	case dom.AttributeNode:
		es.colored(AttrNameColor, n.NodeName())
		es.colored(SepColor, "=")
		es.colored(AttrValueColor, `"`+xmlAttrEscaper.Replace(n.NodeValue())+`"`)
	default:
		return unexpected(n)
	}
	return nil
}

func (es *EncState) xmlChildren(n dom.Node, sc scope) error {
	for c := range n.ChildSeq() {
		if err := es.xmlNode(c, sc); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) xmlElement(el dom.Element, parent scope) error {
	sc := maps.Clone(parent)
	attrs := el.AttrList()
	for _, a := range attrs {
		switch {
		case a.NamespaceURI() == "" && a.LocalName() == "xmlns":
			sc[""] = a.Value()
			continue
		case a.NamespaceURI() != dom.XMLNSNamespace:
			continue
		}
		if a.Prefix() == "" {
			sc[""] = a.Value()
		} else {
			sc[a.LocalName()] = a.Value()
		}
	}

	var decls [][2]string
	declare := func(prefix, ns string) {
		sc[prefix] = ns
		name := "xmlns"
		if prefix != "" {
			name += ":" + prefix
		}
		decls = append(decls, [2]string{name, ns})
	}

	prefix, ns := el.Prefix(), el.NamespaceURI()
	if cur, ok := sc[prefix]; cur != ns && (ok || ns != "") {
		declare(prefix, ns)
	}
	names := make([]string, len(attrs))
	for i, a := range attrs {
		ans := a.NamespaceURI()
		switch {
		case ans == "":
			names[i] = a.LocalName()
		case ans == dom.XMLNSNamespace:
			names[i] = a.Name()
		default:
			p := a.Prefix()
			if p == "" || sc[p] != ans {
				if found, ok := sc.prefixFor(ans); ok {
					p = found
				} else {
					if p == "" {
						es.nsGen++
						p = fmt.Sprintf("ns%d", es.nsGen)
					}
					declare(p, ans)
				}
			}
			names[i] = p + ":" + a.LocalName()
		}
	}

	name := el.LocalName()
	if prefix != "" {
		name = prefix + ":" + name
	}
	es.openTag(name)
	for _, d := range decls {
		es.attr(d[0], xmlAttrEscaper.Replace(d[1]))
	}
	for i, a := range attrs {
		es.attr(names[i], xmlAttrEscaper.Replace(a.Value()))
	}
	if !el.HasChildNodes() {
		es.colored(SepColor, "/>")
		return nil
	}
	es.colored(SepColor, ">")
	if err := es.xmlChildren(el.Node, sc); err != nil {
		return err
	}
	es.closeTag(name)
	return nil
}

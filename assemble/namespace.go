package assemble

import (
	"strings"

	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/wire"
)

// DefaultNamespace is the namespace given to elements that neither the wire
// nor their ancestors place in one.
func DefaultNamespace(contentType string) string {
	switch wire.NormalizeMIME(contentType) {
	case wire.MIMEHTML, wire.MIMEXHTML:
		return dom.HTMLNamespace
	case wire.MIMESVG:
		return dom.SVGNamespace
	case wire.MIMEMathML:
		return dom.MathMLNamespace
	}
	return ""
}

func splitName(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i > 0 && i < len(name)-1 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// elementNamespace resolves the namespace of element n attached under
// parent: the explicit wire namespace, a declaration on n itself, a
// declaration in scope at parent, the parent element's namespace, and
// finally the content type default.
func elementNamespace(n *wire.ResolvedNode, prefix string, parent dom.Node, ctx *Context) string {
	if n.NamespaceURI != nil {
		return *n.NamespaceURI
	}
	decl := "xmlns"
	if prefix != "" {
		decl = "xmlns:" + prefix
	}
	for _, a := range n.Attributes {
		if a.Name == decl && (a.NS == nil || *a.NS == dom.XMLNSNamespace) {
			return a.Value
		}
	}
	if prefix != "" {
		if ns, ok := parent.LookupNamespaceURI(prefix); ok {
			return ns
		}
	} else if pe := parent.AsElement(); !pe.IsNull() {
		return pe.NamespaceURI()
	}
	return DefaultNamespace(ctx.ContentType)
}

// attrNamespace resolves the namespace and prefix of a wire attribute. A
// namespace without a prefix gets the conventional prefix back.
func attrNamespace(a *wire.ResolvedAttr) (ns, prefix, local string) {
	prefix, local = splitName(a.Name)
	if a.NS != nil {
		ns = *a.NS
	}
	switch {
	case ns == "" && (a.Name == "xmlns" || prefix == "xmlns"):
		ns = dom.XMLNSNamespace
	case ns == "" && prefix == "xml":
		ns = dom.XMLNamespace
	case ns == "" && prefix == "xlink":
		ns = dom.XLinkNamespace
	}
	if prefix == "" {
		switch ns {
		case dom.XMLNSNamespace:
			if local != "xmlns" {
				prefix = "xmlns"
			}
		case dom.XLinkNamespace:
			prefix = "xlink"
		case dom.XMLNamespace:
			prefix = "xml"
		}
	}
	return ns, prefix, local
}

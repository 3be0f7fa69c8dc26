package dom

import "strings"

const (
	HTMLNamespace   = "http://www.w3.org/1999/xhtml"
	SVGNamespace    = "http://www.w3.org/2000/svg"
	MathMLNamespace = "http://www.w3.org/1998/Math/MathML"
	XLinkNamespace  = "http://www.w3.org/1999/xlink"
	XMLNamespace    = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace  = "http://www.w3.org/2000/xmlns/"
)

// validName is a lenient check for element and attribute names: non-empty
// and free of whitespace and markup delimiters.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch r {
		case ' ', '\t', '\n', '\f', '\r', 0, '/', '>', '<', '=', '"', '\'':
			return false
		}
	}
	return true
}

// validateAndExtract splits qualifiedName into prefix and local name and
// checks it against ns.
func validateAndExtract(ns, qualifiedName string) (prefix, local string, err error) {
	if !validName(qualifiedName) {
		return "", "", ErrInvalidCharacter
	}
	local = qualifiedName
	if i := strings.IndexByte(qualifiedName, ':'); i != -1 {
		prefix, local = qualifiedName[:i], qualifiedName[i+1:]
		if prefix == "" || local == "" || strings.IndexByte(local, ':') != -1 {
			return "", "", ErrInvalidCharacter
		}
	}
	switch {
	case prefix != "" && ns == "":
		return "", "", ErrNamespace
	case prefix == "xml" && ns != XMLNamespace:
		return "", "", ErrNamespace
	case (qualifiedName == "xmlns" || prefix == "xmlns") != (ns == XMLNSNamespace):
		return "", "", ErrNamespace
	}
	return prefix, local, nil
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// LookupPrefix returns the prefix bound to ns in scope at n.
func (n Node) LookupPrefix(ns string) (string, bool) {
	if n.IsNull() || ns == "" {
		return "", false
	}
	el, ok := n.scopeElement()
	if !ok {
		return "", false
	}
	for ; !el.IsNull(); el = el.ParentElement() {
		r := el.rec()
		if r.ns == ns && r.prefix != "" {
			return r.prefix, true
		}
		for _, a := range el.attrIDs() {
			ar := el.doc.rec(a)
			if ar.ns == XMLNSNamespace && ar.prefix == "xmlns" && ar.value == ns {
				return ar.local, true
			}
		}
	}
	return "", false
}

// LookupNamespaceURI returns the namespace bound to prefix in scope at n.
// The empty prefix asks for the default namespace.
func (n Node) LookupNamespaceURI(prefix string) (string, bool) {
	if n.IsNull() {
		return "", false
	}
	switch prefix {
	case "xml":
		return XMLNamespace, true
	case "xmlns":
		return XMLNSNamespace, true
	}
	el, ok := n.scopeElement()
	if !ok {
		return "", false
	}
	for ; !el.IsNull(); el = el.ParentElement() {
		r := el.rec()
		if r.ns != "" && r.prefix == prefix {
			return r.ns, true
		}
		for _, a := range el.attrIDs() {
			ar := el.doc.rec(a)
			if ar.ns != XMLNSNamespace {
				continue
			}
			if (prefix != "" && ar.prefix == "xmlns" && ar.local == prefix) ||
				(prefix == "" && ar.prefix == "" && ar.local == "xmlns") {
				if ar.value == "" {
					return "", false
				}
				return ar.value, true
			}
		}
	}
	return "", false
}

// IsDefaultNamespace reports whether ns is the default namespace at n.
func (n Node) IsDefaultNamespace(ns string) bool {
	def, _ := n.LookupNamespaceURI("")
	return def == ns
}

// scopeElement returns the element whose namespace declarations are in
// scope at n.
func (n Node) scopeElement() (Element, bool) {
	switch n.Type() {
	case ElementNode:
		return Element{n}, true
	case DocumentNode:
		de := n.doc.DocumentElement()
		return de, !de.IsNull()
	case DocumentTypeNode, DocumentFragmentNode:
		return Element{}, false
	case AttributeNode:
		owner := Attr{n}.OwnerElement()
		return owner, !owner.IsNull()
	default:
		pe := n.ParentElement()
		return pe, !pe.IsNull()
	}
}

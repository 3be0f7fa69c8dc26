package parse

import (
	"github.com/signadot/dawm/wire"
)

// Parse turns markup into a wire document. HTML MIME types are parsed with
// the HTML5 algorithm and always produce a text/html document; every other
// type is parsed as XML and keeps its normalized content type.
func Parse(input []byte, mime string, opts ...ParseOption) (*wire.Doc, error) {
	o := newOpts(opts)
	if o.contentType != "" {
		mime = o.contentType
	}
	ct := wire.NormalizeMIME(mime)
	if wire.IsHTMLMIME(ct) {
		if o.context != "" {
			return parseFragment(input, o)
		}
		return parseHTML(input, o)
	}
	return parseXML(input, ct, o)
}

// HTML parses an HTML document.
func HTML(input []byte, opts ...ParseOption) (*wire.Doc, error) {
	return Parse(input, wire.MIMEHTML, opts...)
}

// Fragment parses HTML in the context of an element named context. The
// nodes end up under Document > html. Doctypes are dropped unless
// DropDoctype(false) follows.
func Fragment(input []byte, context string, opts ...ParseOption) (*wire.Doc, error) {
	if context == "" {
		context = "div"
	}
	all := append([]ParseOption{DropDoctype(true), ContextElement(context)}, opts...)
	return Parse(input, wire.MIMEHTML, all...)
}

// XML parses the XML family; mime picks the content type.
func XML(input []byte, mime string, opts ...ParseOption) (*wire.Doc, error) {
	ct := wire.NormalizeMIME(mime)
	if wire.IsHTMLMIME(ct) {
		ct = wire.MIMEXHTML
	}
	o := newOpts(opts)
	return parseXML(input, ct, o)
}

// Package encode serializes dom nodes back to markup.
//
// Nodes owned by an HTML document are written with HTML syntax: void
// elements have no end tag, the contents of raw text elements such as
// script and style are not escaped, and a leading newline in pre, textarea
// and listing is doubled so that a re-parse keeps it. Every other node, or
// any node when [EncodeXML] is set, is written as namespace well-formed XML.
//
// # Usage
//
//	doc, _ := dawm.Parse([]byte("<p class=x>hi</p>"), "text/html")
//	s := encode.MustString(doc.Node())
//
//	// children only, with terminal colors
//	err := encode.Encode(el.Node, os.Stdout,
//	    encode.EncodeInner(true),
//	    encode.EncodeColors(encode.NewColors()))
package encode

package encode

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/dawm/dom"
)

type EncState struct {
	xml   bool
	inner bool

	w     *bufio.Writer
	nsGen int

	Color func(ColorAttr, string) string
}

// Encode writes the markup for n to w.
func Encode(n dom.Node, w io.Writer, opts ...EncodeOption) error {
	if n.IsNull() {
		return ErrNullNode
	}
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	if !es.xml {
		es.xml = n.OwnerDocument().Kind() != dom.HTMLDocument
	}
	es.w = bufio.NewWriter(w)
	var err error
	switch {
	case es.xml && es.inner:
		err = es.xmlChildren(n, newScope())
	case es.xml:
		err = es.xmlNode(n, newScope())
	case es.inner:
		err = es.htmlChildren(n)
	default:
		err = es.htmlNode(n)
	}
	if err != nil {
		return err
	}
	return es.w.Flush()
}

func (es *EncState) write(s string) {
	es.w.WriteString(s)
}

func (es *EncState) colored(a ColorAttr, s string) {
	if es.Color != nil {
		s = es.Color(a, s)
	}
	es.w.WriteString(s)
}

func (es *EncState) openTag(name string) {
	es.colored(SepColor, "<")
	es.colored(TagColor, name)
}

func (es *EncState) closeTag(name string) {
	es.colored(SepColor, "</")
	es.colored(TagColor, name)
	es.colored(SepColor, ">")
}

func (es *EncState) attr(name, escaped string) {
	es.write(" ")
	es.colored(AttrNameColor, name)
	es.colored(SepColor, "=")
	es.colored(AttrValueColor, `"`+escaped+`"`)
}

func (es *EncState) comment(data string) {
	es.colored(CommentColor, "<!--"+data+"-->")
}

func unexpected(n dom.Node) error {
	return fmt.Errorf("%w: unexpected %s", ErrEncoding, n)
}

var (
	htmlTextEscaper = strings.NewReplacer("&", "&amp;", "\u00a0", "&nbsp;", "<", "&lt;", ">", "&gt;")
	htmlAttrEscaper = strings.NewReplacer("&", "&amp;", "\u00a0", "&nbsp;", `"`, "&quot;")
	xmlTextEscaper  = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	xmlAttrEscaper  = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;",
		"\t", "&#9;", "\n", "&#10;", "\r", "&#13;")
)

// doctype renders a document type node; HTML and XML share the syntax.
func doctype(n dom.Node) string {
	s := "<!DOCTYPE " + n.NodeName()
	pub, sys := n.PublicID(), n.SystemID()
	switch {
	case pub != "":
		s += ` PUBLIC "` + pub + `"`
		if sys != "" {
			s += ` "` + sys + `"`
		}
	case sys != "":
		s += ` SYSTEM "` + sys + `"`
	}
	return s + ">"
}

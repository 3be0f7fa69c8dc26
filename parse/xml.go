package parse

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/dawm/debug"
	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/wire"
)

// xmlScope is one level of namespace declarations.
type xmlScope struct {
	id    int
	qname string
	decls map[string]string
}

type xmlParser struct {
	b     *builder
	o     *parseOpts
	stack []xmlScope
}

func (p *xmlParser) lookup(prefix string) (string, bool) {
	switch prefix {
	case "xml":
		return dom.XMLNamespace, true
	case "xmlns":
		return dom.XMLNSNamespace, true
	}
	for i := len(p.stack) - 1; i >= 0; i-- {
		if ns, ok := p.stack[i].decls[prefix]; ok {
			return ns, true
		}
	}
	return "", prefix == ""
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// parseXML reads the XML family with encoding/xml. Raw tokens are used so
// that prefixes survive; namespaces are resolved against the declarations
// in scope.
func parseXML(input []byte, ct string, o *parseOpts) (*wire.Doc, error) {
	dec := xml.NewDecoder(bytes.NewReader(input))
	if ct == wire.MIMEXHTML {
		dec.Entity = xml.HTMLEntity
	}
	b := newBuilder(o.interner, ct)
	p := &xmlParser{b: b, o: o}
	doc := b.add(-1, wire.DocumentNode, "#document")
	p.stack = []xmlScope{{id: doc}}
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := p.token(tok); err != nil {
			line, _ := dec.InputPos()
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if len(p.stack) != 1 {
		return nil, fmt.Errorf("%w: unclosed element <%s>", ErrUnbalanced, p.top().qname)
	}
	if debug.Wire() {
		debug.Logf("parsed %s document: %d nodes", ct, len(b.nodes))
	}
	return b.doc(wire.NoQuirks), nil
}

func (p *xmlParser) top() *xmlScope {
	return &p.stack[len(p.stack)-1]
}

func (p *xmlParser) token(tok xml.Token) error {
	parent := p.top().id
	atDoc := len(p.stack) == 1
	switch t := tok.(type) {
	case xml.StartElement:
		scope := xmlScope{qname: qualified(t.Name), decls: map[string]string{}}
		for _, a := range t.Attr {
			switch {
			case a.Name.Space == "" && a.Name.Local == "xmlns":
				scope.decls[""] = a.Value
			case a.Name.Space == "xmlns":
				scope.decls[a.Name.Local] = a.Value
			}
		}
		p.stack = append(p.stack, scope)
		ns, ok := p.lookup(t.Name.Space)
		if !ok {
			return fmt.Errorf("%w: undeclared prefix %q", ErrParse, t.Name.Space)
		}
		id := p.b.element(parent, ns, scope.qname)
		p.top().id = id
		for _, a := range t.Attr {
			var ans string
			switch {
			case a.Name.Space == "" && a.Name.Local == "xmlns":
				ans = dom.XMLNSNamespace
			case a.Name.Space != "":
				if ans, ok = p.lookup(a.Name.Space); !ok {
					return fmt.Errorf("%w: undeclared prefix %q", ErrParse, a.Name.Space)
				}
			}
			p.b.attr(id, ans, qualified(a.Name), a.Value)
		}
	case xml.EndElement:
		if atDoc {
			return fmt.Errorf("%w: unexpected </%s>", ErrUnbalanced, qualified(t.Name))
		}
		if q := qualified(t.Name); q != p.top().qname {
			return fmt.Errorf("%w: </%s> closes <%s>", ErrUnbalanced, q, p.top().qname)
		}
		p.stack = p.stack[:len(p.stack)-1]
	case xml.CharData:
		if atDoc {
			if len(bytes.TrimSpace(t)) != 0 && debug.Wire() {
				debug.Logf("dropping text outside the root element")
			}
			return nil
		}
		p.b.valued(parent, wire.TextNode, "#text", string(t))
	case xml.Comment:
		p.b.valued(parent, wire.CommentNode, "#comment", string(t))
	case xml.ProcInst:
		if t.Target == "xml" {
			return nil
		}
		p.b.valued(parent, wire.ProcessingInstructionNode, t.Target, string(t.Inst))
	case xml.Directive:
		name, public, system, ok := parseDoctype(string(t))
		if !ok || p.o.dropDoctype || !atDoc {
			return nil
		}
		p.b.doctype(parent, name, public, system)
	}
	return nil
}

// parseDoctype reads `DOCTYPE name [PUBLIC "pub" "sys" | SYSTEM "sys"]`,
// ignoring any internal subset.
func parseDoctype(d string) (name, public, system string, ok bool) {
	fields := doctypeFields(d)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "DOCTYPE") {
		return "", "", "", false
	}
	name = fields[1]
	rest := fields[2:]
	switch {
	case len(rest) >= 2 && strings.EqualFold(rest[0], "PUBLIC"):
		public = rest[1]
		if len(rest) >= 3 {
			system = rest[2]
		}
	case len(rest) >= 2 && strings.EqualFold(rest[0], "SYSTEM"):
		system = rest[1]
	}
	return name, public, system, true
}

// doctypeFields splits on whitespace, keeping quoted strings whole and
// stopping at an internal subset.
func doctypeFields(d string) []string {
	var res []string
	for i := 0; i < len(d); {
		c := d[i]
		switch {
		case c == '[':
			return res
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '"' || c == '\'':
			j := strings.IndexByte(d[i+1:], c)
			if j == -1 {
				return append(res, d[i+1:])
			}
			res = append(res, d[i+1:i+1+j])
			i += j + 2
		default:
			j := i
			for j < len(d) && !strings.ContainsRune(" \t\n\r[\"'", rune(d[j])) {
				j++
			}
			res = append(res, d[i:j])
			i = j
		}
	}
	return res
}

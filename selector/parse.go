package selector

import (
	"errors"
	"regexp"
	"strings"

	"github.com/signadot/dawm/debug"
)

type parser struct {
	src  string
	toks []Token
	i    int
}

// Parse parses a selector list.
func Parse(s string) (*List, error) {
	toks, err := Tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &parser{src: s, toks: toks}
	l, err := p.list(false)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if t := p.peek(); t.Type != TEOF {
		return nil, syntaxErr(t.Pos, "unexpected %s", t)
	}
	if debug.Select() {
		debug.Logf("parsed selector %q as %s", s, l)
	}
	return l, nil
}

func (p *parser) peek() Token {
	return p.toks[p.i]
}

func (p *parser) advance() Token {
	t := p.toks[p.i]
	if t.Type != TEOF {
		p.i++
	}
	return t
}

func (p *parser) skipSpace() {
	for p.peek().Type == TSpace {
		p.i++
	}
}

func isCombinator(t Token) bool {
	return t.Type == TDelim && (t.Val == ">" || t.Val == "+" || t.Val == "~")
}

func (p *parser) list(relative bool) (*List, error) {
	l := &List{}
	for {
		p.skipSpace()
		var (
			sel Selector
			err error
		)
		if relative {
			sel, err = p.relative()
		} else {
			sel, err = p.complex()
		}
		if err != nil {
			return nil, err
		}
		l.Items = append(l.Items, sel)
		p.skipSpace()
		if p.peek().Type != TComma {
			return l, nil
		}
		p.advance()
	}
}

func (p *parser) relative() (Selector, error) {
	comb := Descendant
	if t := p.peek(); isCombinator(t) {
		p.advance()
		p.skipSpace()
		comb = Combinator(t.Val[0])
	}
	sel, err := p.complex()
	if err != nil {
		return nil, err
	}
	return &Relative{Comb: comb, Sel: sel}, nil
}

func (p *parser) complex() (Selector, error) {
	c, err := p.compound()
	if err != nil {
		return nil, err
	}
	var sel Selector = c
	for {
		comb, ok := p.combinator()
		if !ok {
			return sel, nil
		}
		right, err := p.compound()
		if err != nil {
			return nil, err
		}
		sel = &Complex{Left: sel, Comb: comb, Right: right}
	}
}

// combinator consumes a combinator with its surrounding whitespace. It
// consumes nothing and reports false where the complex selector ends.
func (p *parser) combinator() (Combinator, bool) {
	save := p.i
	space := false
	for p.peek().Type == TSpace {
		p.i++
		space = true
	}
	t := p.peek()
	if isCombinator(t) {
		p.advance()
		p.skipSpace()
		return Combinator(t.Val[0]), true
	}
	switch t.Type {
	case TEOF, TComma, TRParen:
		p.i = save
		return 0, false
	}
	if space {
		return Descendant, true
	}
	p.i = save
	return 0, false
}

func (p *parser) compound() (*Compound, error) {
	c := &Compound{}
	switch t := p.peek(); {
	case t.Type == TIdent:
		p.advance()
		c.Parts = append(c.Parts, &Type{Name: t.Val})
	case t.Type == TDelim && t.Val == "*":
		p.advance()
		c.Parts = append(c.Parts, &Universal{})
	}
	if t := p.peek(); t.Type == TDelim && t.Val == "|" {
		return nil, syntaxErr(t.Pos, "namespace prefixes are not supported")
	}
	for {
		t := p.peek()
		switch {
		case t.Type == THash:
			p.advance()
			c.Parts = append(c.Parts, &ID{Name: t.Val})
		case t.Type == TDelim && t.Val == ".":
			p.advance()
			n := p.peek()
			if n.Type != TIdent {
				return nil, syntaxErr(n.Pos, "expected class name, got %s", n)
			}
			p.advance()
			c.Parts = append(c.Parts, &Class{Name: n.Val})
		case t.Type == TLSquare:
			a, err := p.attribute()
			if err != nil {
				return nil, err
			}
			c.Parts = append(c.Parts, a)
		case t.Type == TColon:
			ps, err := p.pseudo()
			if err != nil {
				return nil, err
			}
			c.Parts = append(c.Parts, ps)
		default:
			if len(c.Parts) == 0 {
				return nil, syntaxErr(t.Pos, "expected selector, got %s", t)
			}
			return c, nil
		}
	}
}

func (p *parser) attribute() (*Attribute, error) {
	p.advance()
	p.skipSpace()
	name := p.peek()
	if name.Type != TIdent {
		return nil, syntaxErr(name.Pos, "expected attribute name, got %s", name)
	}
	p.advance()
	if t := p.peek(); t.Type == TDelim && t.Val == "|" {
		return nil, syntaxErr(t.Pos, "namespace prefixes are not supported")
	}
	p.skipSpace()
	a := &Attribute{Name: name.Val}
	switch t := p.peek(); {
	case t.Type == TRSquare:
		p.advance()
		return a, nil
	case t.Type == TMatch:
		a.Op = t.Val
	case t.Type == TDelim && t.Val == "=":
		a.Op = "="
	default:
		return nil, syntaxErr(t.Pos, "expected attribute operator, got %s", t)
	}
	p.advance()
	p.skipSpace()
	v := p.peek()
	switch v.Type {
	case TIdent, TString, TNumber, TDimension:
		a.Value = v.Val
	default:
		return nil, syntaxErr(v.Pos, "expected attribute value, got %s", v)
	}
	p.advance()
	p.skipSpace()
	if f := p.peek(); f.Type == TIdent {
		switch strings.ToLower(f.Val) {
		case "i":
			a.Flag = 'i'
		case "s":
			a.Flag = 's'
		default:
			return nil, syntaxErr(f.Pos, "unknown attribute flag %s", f)
		}
		p.advance()
		p.skipSpace()
	}
	if t := p.peek(); t.Type != TRSquare {
		return nil, syntaxErr(t.Pos, "expected ], got %s", t)
	}
	p.advance()
	return a, nil
}

var ofRe = regexp.MustCompile(`(?i)\s+of\s+`)

func (p *parser) pseudo() (*Pseudo, error) {
	colon := p.advance()
	if p.peek().Type == TColon {
		return nil, syntaxErr(colon.Pos, "pseudo-elements are not supported")
	}
	t := p.advance()
	if t.Type != TIdent && t.Type != TFunction {
		return nil, syntaxErr(t.Pos, "expected pseudo-class name, got %s", t)
	}
	name := strings.ToLower(t.Val)
	sym := Lookup(name)
	if sym == nil {
		return nil, syntaxErr(t.Pos, "unknown pseudo-class :%s", name)
	}
	ps := &Pseudo{Name: name, sym: sym}
	if t.Type == TIdent {
		if sym.Args() != NoArg {
			return nil, syntaxErr(t.Pos, ":%s requires an argument", name)
		}
		return ps, nil
	}
	if sym.Args() == NoArg {
		return nil, syntaxErr(t.Pos, ":%s takes no argument", name)
	}
	ps.Func = true
	switch sym.Args() {
	case SelectorArg, RelativeArg:
		l, err := p.list(sym.Args() == RelativeArg)
		if err != nil {
			return nil, err
		}
		ps.Args = l.Items
	default:
		start := p.peek().Pos
		raw, err := p.raw()
		if err != nil {
			return nil, err
		}
		ps.Raw = strings.TrimSpace(raw)
		if sym.Args() == NthArg {
			if err := p.nth(ps, raw, start); err != nil {
				return nil, err
			}
		}
	}
	p.skipSpace()
	if c := p.peek(); c.Type != TRParen {
		return nil, syntaxErr(c.Pos, "expected ), got %s", c)
	}
	p.advance()
	return ps, nil
}

// raw consumes the tokens of a functional argument up to, not including,
// its closing parenthesis and returns their source text.
func (p *parser) raw() (string, error) {
	start := p.peek().Pos
	depth := 0
	for {
		t := p.peek()
		switch t.Type {
		case TEOF:
			return "", syntaxErr(t.Pos, "unclosed (")
		case TFunction, TLParen:
			depth++
		case TRParen:
			if depth == 0 {
				return p.src[start:t.Pos], nil
			}
			depth--
		}
		p.advance()
	}
}

func (p *parser) nth(ps *Pseudo, raw string, start int) error {
	expr, of := raw, ""
	ofStart := 0
	if loc := ofRe.FindStringIndex(raw); loc != nil {
		if ps.Name != "nth-child" && ps.Name != "nth-last-child" {
			return syntaxErr(start+loc[0], ":%s does not take an of clause", ps.Name)
		}
		expr, of, ofStart = raw[:loc[0]], raw[loc[1]:], loc[1]
	}
	n, err := ParseNth(expr)
	if err != nil {
		return offset(err, start)
	}
	ps.Nth = n
	if ofStart == 0 {
		return nil
	}
	l, err := Parse(of)
	if err != nil {
		return offset(err, start+ofStart)
	}
	ps.Of = l
	return nil
}

func offset(err error, by int) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		return &SyntaxError{Pos: se.Pos + by, Msg: se.Msg}
	}
	return err
}

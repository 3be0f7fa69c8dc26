package selector

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	TEOF TokenType = iota
	TSpace
	TIdent
	TFunction
	THash
	TString
	TNumber
	TDimension
	TDelim
	TMatch
	TColon
	TComma
	TLSquare
	TRSquare
	TLParen
	TRParen
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TEOF:       "TEOF",
		TSpace:     "TSpace",
		TIdent:     "TIdent",
		TFunction:  "TFunction",
		THash:      "THash",
		TString:    "TString",
		TNumber:    "TNumber",
		TDimension: "TDimension",
		TDelim:     "TDelim",
		TMatch:     "TMatch",
		TColon:     "TColon",
		TComma:     "TComma",
		TLSquare:   "TLSquare",
		TRSquare:   "TRSquare",
		TLParen:    "TLParen",
		TRParen:    "TRParen",
	}[t]
}

// Token is one lexical unit of a selector. Val holds the unescaped value:
// the name of identifiers, functions and hashes, the contents of strings,
// the operator of matches and the character of delimiters.
type Token struct {
	Type TokenType
	Pos  int
	End  int
	Val  string
}

func (t Token) String() string {
	switch t.Type {
	case TEOF:
		return "end of input"
	case TSpace:
		return "whitespace"
	case TString:
		return strconv.Quote(t.Val)
	case TFunction:
		return fmt.Sprintf("%q", t.Val+"(")
	case THash:
		return fmt.Sprintf("%q", "#"+t.Val)
	}
	return fmt.Sprintf("%q", t.Val)
}

type lexer struct {
	s string
	i int
}

// Tokenize splits s into tokens, ending with a TEOF token. Comments are
// dropped and runs of whitespace collapse into one TSpace token.
func Tokenize(s string) ([]Token, error) {
	lx := &lexer{s: s}
	var toks []Token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if tok.Type == TSpace && len(toks) > 0 && toks[len(toks)-1].Type == TSpace {
			toks[len(toks)-1].End = tok.End
			continue
		}
		toks = append(toks, tok)
		if tok.Type == TEOF {
			return toks, nil
		}
	}
}

func (lx *lexer) tok(t TokenType, start int, val string) Token {
	return Token{Type: t, Pos: start, End: lx.i, Val: val}
}

func (lx *lexer) peekAt(off int) byte {
	if lx.i+off >= len(lx.s) {
		return 0
	}
	return lx.s[lx.i+off]
}

func (lx *lexer) next() (Token, error) {
	start := lx.i
	if lx.i >= len(lx.s) {
		return lx.tok(TEOF, start, ""), nil
	}
	c := lx.s[lx.i]
	switch {
	case isSpace(c):
		for lx.i < len(lx.s) && isSpace(lx.s[lx.i]) {
			lx.i++
		}
		return lx.tok(TSpace, start, " "), nil
	case c == '/' && lx.peekAt(1) == '*':
		end := strings.Index(lx.s[lx.i+2:], "*/")
		if end == -1 {
			return Token{}, syntaxErr(start, "unterminated comment")
		}
		lx.i += end + 4
		return lx.next()
	case c == '"' || c == '\'':
		return lx.str(c)
	case c == '#':
		lx.i++
		if lx.startsName() {
			name, err := lx.name()
			if err != nil {
				return Token{}, err
			}
			return lx.tok(THash, start, name), nil
		}
		return lx.tok(TDelim, start, "#"), nil
	case c == '(':
		lx.i++
		return lx.tok(TLParen, start, "("), nil
	case c == ')':
		lx.i++
		return lx.tok(TRParen, start, ")"), nil
	case c == '[':
		lx.i++
		return lx.tok(TLSquare, start, "["), nil
	case c == ']':
		lx.i++
		return lx.tok(TRSquare, start, "]"), nil
	case c == ',':
		lx.i++
		return lx.tok(TComma, start, ","), nil
	case c == ':':
		lx.i++
		return lx.tok(TColon, start, ":"), nil
	case strings.IndexByte("~|^$*", c) != -1 && lx.peekAt(1) == '=':
		lx.i += 2
		return lx.tok(TMatch, start, lx.s[start:lx.i]), nil
	case lx.startsNumber():
		return lx.number()
	case lx.startsIdent():
		name, err := lx.name()
		if err != nil {
			return Token{}, err
		}
		if lx.i < len(lx.s) && lx.s[lx.i] == '(' {
			lx.i++
			return lx.tok(TFunction, start, name), nil
		}
		return lx.tok(TIdent, start, name), nil
	}
	r, size := utf8.DecodeRuneInString(lx.s[lx.i:])
	lx.i += size
	return lx.tok(TDelim, start, string(r)), nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c) || c == '-'
}

func (lx *lexer) validEscape(off int) bool {
	return lx.peekAt(off) == '\\' && lx.i+off+1 < len(lx.s) && lx.peekAt(off+1) != '\n'
}

func (lx *lexer) startsName() bool {
	return lx.i < len(lx.s) && (isNameChar(lx.s[lx.i]) || lx.validEscape(0))
}

func (lx *lexer) startsIdent() bool {
	if lx.i >= len(lx.s) {
		return false
	}
	c := lx.s[lx.i]
	switch {
	case c == '-':
		c2 := lx.peekAt(1)
		return isNameStart(c2) || c2 == '-' || lx.validEscape(1)
	case c == '\\':
		return lx.validEscape(0)
	}
	return isNameStart(c)
}

func (lx *lexer) startsNumber() bool {
	c := lx.peekAt(0)
	if c == '+' || c == '-' {
		c2 := lx.peekAt(1)
		return isDigit(c2) || (c2 == '.' && isDigit(lx.peekAt(2)))
	}
	if c == '.' {
		return isDigit(lx.peekAt(1))
	}
	return isDigit(c)
}

func (lx *lexer) name() (string, error) {
	var b strings.Builder
	for lx.i < len(lx.s) {
		c := lx.s[lx.i]
		switch {
		case c == '\\':
			if !lx.validEscape(0) {
				return b.String(), nil
			}
			if err := lx.escape(&b); err != nil {
				return "", err
			}
		case c >= 0x80:
			r, size := utf8.DecodeRuneInString(lx.s[lx.i:])
			b.WriteRune(r)
			lx.i += size
		case isNameChar(c):
			b.WriteByte(c)
			lx.i++
		default:
			return b.String(), nil
		}
	}
	return b.String(), nil
}

// escape consumes a backslash escape and writes the rune it denotes.
func (lx *lexer) escape(b *strings.Builder) error {
	start := lx.i
	lx.i++
	if lx.i >= len(lx.s) {
		b.WriteRune(utf8.RuneError)
		return nil
	}
	c := lx.s[lx.i]
	if c == '\n' {
		return syntaxErr(start, "invalid escape")
	}
	if isHex(c) {
		j := lx.i
		for j < len(lx.s) && j-lx.i < 6 && isHex(lx.s[j]) {
			j++
		}
		v, _ := strconv.ParseUint(lx.s[lx.i:j], 16, 32)
		lx.i = j
		if lx.i < len(lx.s) && isSpace(lx.s[lx.i]) {
			lx.i++
		}
		r := rune(v)
		if r == 0 || r > unicode.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
			r = utf8.RuneError
		}
		b.WriteRune(r)
		return nil
	}
	r, size := utf8.DecodeRuneInString(lx.s[lx.i:])
	lx.i += size
	b.WriteRune(r)
	return nil
}

func (lx *lexer) str(q byte) (Token, error) {
	start := lx.i
	lx.i++
	var b strings.Builder
	for lx.i < len(lx.s) {
		c := lx.s[lx.i]
		switch c {
		case q:
			lx.i++
			return lx.tok(TString, start, b.String()), nil
		case '\n':
			return Token{}, syntaxErr(lx.i, "newline in string")
		case '\\':
			if lx.peekAt(1) == '\n' {
				lx.i += 2
				continue
			}
			if err := lx.escape(&b); err != nil {
				return Token{}, err
			}
		default:
			b.WriteByte(c)
			lx.i++
		}
	}
	return Token{}, syntaxErr(start, "unterminated string")
}

func (lx *lexer) number() (Token, error) {
	start := lx.i
	if c := lx.s[lx.i]; c == '+' || c == '-' {
		lx.i++
	}
	for lx.i < len(lx.s) && isDigit(lx.s[lx.i]) {
		lx.i++
	}
	if lx.peekAt(0) == '.' && isDigit(lx.peekAt(1)) {
		lx.i++
		for lx.i < len(lx.s) && isDigit(lx.s[lx.i]) {
			lx.i++
		}
	}
	num := lx.s[start:lx.i]
	if lx.startsIdent() {
		unit, err := lx.name()
		if err != nil {
			return Token{}, err
		}
		return lx.tok(TDimension, start, num+unit), nil
	}
	return lx.tok(TNumber, start, num), nil
}

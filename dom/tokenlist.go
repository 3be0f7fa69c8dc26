package dom

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// DOMTokenList is a live ordered set of the whitespace-separated tokens of
// one attribute.
type DOMTokenList struct {
	owner Element
	attr  string
	s     *seq[string]
}

func newTokenList(e Element, attr string) *DOMTokenList {
	t := &DOMTokenList{owner: e, attr: attr}
	t.s = newSeq[string](attr+" tokens of "+e.String(), func(yield func(string) bool) {
		for _, tok := range splitTokens(e.Attribute(attr)) {
			if !yield(tok) {
				return
			}
		}
	})
	return t
}

// TokenList returns a live token list over any attribute of e.
func (e Element) TokenList(attr string) *DOMTokenList {
	return newTokenList(e, attr)
}

func splitTokens(v string) []string {
	fields := strings.FieldsFunc(v, isASCIIWhitespace)
	res := fields[:0]
	for _, f := range fields {
		if !slices.Contains(res, f) {
			res = append(res, f)
		}
	}
	return res
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func checkToken(tok string) error {
	if tok == "" {
		return fmt.Errorf("%w: empty token", ErrSyntax)
	}
	if strings.ContainsFunc(tok, isASCIIWhitespace) {
		return fmt.Errorf("%w: token %q contains whitespace", ErrInvalidCharacter, tok)
	}
	return nil
}

// update writes tokens back to the attribute. Reconciling is suspended
// while it does so.
func (t *DOMTokenList) update(tokens []string) error {
	if len(tokens) == 0 && !t.owner.HasAttribute(t.attr) {
		return nil
	}
	t.s.frozen = true
	defer func() { t.s.frozen = false }()
	return t.owner.SetAttribute(t.attr, strings.Join(tokens, " "))
}

func (t *DOMTokenList) Len() int {
	return t.s.len()
}

// Item returns the i-th token, or "" when i is out of range.
func (t *DOMTokenList) Item(i int) string {
	tok, _ := t.s.item(i)
	return tok
}

func (t *DOMTokenList) All() iter.Seq2[int, string] {
	return t.s.all()
}

func (t *DOMTokenList) Tokens() []string {
	return t.s.slice()
}

func (t *DOMTokenList) Contains(tok string) bool {
	_, ok := t.s.find(func(s string) bool { return s == tok })
	return ok
}

// Add appends each token not already present.
func (t *DOMTokenList) Add(tokens ...string) error {
	for _, tok := range tokens {
		if err := checkToken(tok); err != nil {
			return err
		}
	}
	cur := t.Tokens()
	for _, tok := range tokens {
		if !slices.Contains(cur, tok) {
			cur = append(cur, tok)
		}
	}
	return t.update(cur)
}

func (t *DOMTokenList) Remove(tokens ...string) error {
	for _, tok := range tokens {
		if err := checkToken(tok); err != nil {
			return err
		}
	}
	cur := slices.DeleteFunc(t.Tokens(), func(s string) bool {
		return slices.Contains(tokens, s)
	})
	return t.update(cur)
}

// Toggle removes tok if present and adds it otherwise. An optional force
// argument makes it one-way. It reports whether tok is present afterwards.
func (t *DOMTokenList) Toggle(tok string, force ...bool) (bool, error) {
	if err := checkToken(tok); err != nil {
		return false, err
	}
	cur := t.Tokens()
	if slices.Contains(cur, tok) {
		if len(force) > 0 && force[0] {
			return true, nil
		}
		cur = slices.DeleteFunc(cur, func(s string) bool { return s == tok })
		return false, t.update(cur)
	}
	if len(force) > 0 && !force[0] {
		return false, nil
	}
	return true, t.update(append(cur, tok))
}

// Replace substitutes newTok for oldTok, reporting whether oldTok was
// present.
func (t *DOMTokenList) Replace(oldTok, newTok string) (bool, error) {
	if err := checkToken(oldTok); err != nil {
		return false, err
	}
	if err := checkToken(newTok); err != nil {
		return false, err
	}
	cur := t.Tokens()
	if !slices.Contains(cur, oldTok) {
		return false, nil
	}
	res := make([]string, 0, len(cur))
	placed := false
	for _, s := range cur {
		switch {
		case s == oldTok || s == newTok:
			if !placed {
				res = append(res, newTok)
				placed = true
			}
		default:
			res = append(res, s)
		}
	}
	return true, t.update(res)
}

// Supports is always true: no attribute here has a fixed token vocabulary.
func (t *DOMTokenList) Supports(string) bool {
	return true
}

// Value returns the attribute value as is.
func (t *DOMTokenList) Value() string {
	return t.owner.Attribute(t.attr)
}

func (t *DOMTokenList) SetValue(v string) error {
	return t.owner.SetAttribute(t.attr, v)
}

func (t *DOMTokenList) String() string {
	return t.Value()
}

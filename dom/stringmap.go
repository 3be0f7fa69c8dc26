package dom

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// DOMStringMap maps camelCase keys to data-* attributes. A map obtained
// from [Element.Dataset] reads and writes the owner's attributes; a map
// from [NewStringMap] has no owner and keeps its entries in memory.
type DOMStringMap struct {
	owner Element
	mem   map[string]string
	order []string
}

// NewStringMap returns a detached map.
func NewStringMap() *DOMStringMap {
	return &DOMStringMap{mem: map[string]string{}}
}

func (m *DOMStringMap) attached() bool {
	return !m.owner.IsNull()
}

// dataAttrName turns a key into its attribute name: each ASCII upper-case
// letter becomes '-' plus its lower-case form.
func dataAttrName(key string) string {
	var b strings.Builder
	b.WriteString("data-")
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte('-')
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// dataKey is the inverse of dataAttrName. It reports false for names that
// are not data-* names or carry upper-case letters.
func dataKey(name string) (string, bool) {
	rest, ok := strings.CutPrefix(name, "data-")
	if !ok || strings.ContainsFunc(name, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		return "", false
	}
	var b strings.Builder
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == '-' && i+1 < len(rest) && rest[i+1] >= 'a' && rest[i+1] <= 'z' {
			b.WriteByte(rest[i+1] - ('a' - 'A'))
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), true
}

func checkDataKey(key string) error {
	for i := 0; i+1 < len(key); i++ {
		if key[i] == '-' && key[i+1] >= 'a' && key[i+1] <= 'z' {
			return fmt.Errorf("%w: dataset key %q has '-' before a lower-case letter", ErrSyntax, key)
		}
	}
	return nil
}

func (m *DOMStringMap) keys() *seq[string] {
	return newSeq[string]("dataset of "+m.owner.String(), func(yield func(string) bool) {
		for _, a := range m.owner.AttrList() {
			if a.NamespaceURI() != "" {
				continue
			}
			if k, ok := dataKey(a.LocalName()); ok && !yield(k) {
				return
			}
		}
	})
}

// Get returns the value stored under key. Keys Set would reject are never
// present.
func (m *DOMStringMap) Get(key string) (string, bool) {
	if checkDataKey(key) != nil {
		return "", false
	}
	if !m.attached() {
		v, ok := m.mem[key]
		return v, ok
	}
	return m.owner.GetAttributeNS("", dataAttrName(key))
}

func (m *DOMStringMap) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. Keys holding '-' followed by a lower-case
// ASCII letter fail with ErrSyntax.
func (m *DOMStringMap) Set(key, value string) error {
	if err := checkDataKey(key); err != nil {
		return err
	}
	if !m.attached() {
		if _, ok := m.mem[key]; !ok {
			m.order = append(m.order, key)
		}
		m.mem[key] = value
		return nil
	}
	name := dataAttrName(key)
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidCharacter, name)
	}
	return m.owner.SetAttribute(name, value)
}

// Delete removes key, reporting whether it was present.
func (m *DOMStringMap) Delete(key string) bool {
	if checkDataKey(key) != nil {
		return false
	}
	if !m.attached() {
		if _, ok := m.mem[key]; !ok {
			return false
		}
		delete(m.mem, key)
		m.order = slices.DeleteFunc(m.order, func(k string) bool { return k == key })
		return true
	}
	name := dataAttrName(key)
	if !m.owner.HasAttributeNS("", name) {
		return false
	}
	m.owner.RemoveAttributeNS("", name)
	return true
}

// Keys returns the keys in attribute order, or insertion order for a
// detached map.
func (m *DOMStringMap) Keys() []string {
	if !m.attached() {
		return slices.Clone(m.order)
	}
	return m.keys().slice()
}

func (m *DOMStringMap) Len() int {
	if !m.attached() {
		return len(m.order)
	}
	return m.keys().len()
}

func (m *DOMStringMap) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			if !yield(k, v) {
				return
			}
		}
	}
}

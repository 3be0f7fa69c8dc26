package dom

import (
	"fmt"
	"iter"
	"slices"
)

// NamedNodeMap is the live attribute map of an element.
type NamedNodeMap struct {
	s     *seq[Attr]
	owner Element
}

func newNamedNodeMap(e Element) *NamedNodeMap {
	return &NamedNodeMap{
		s: newSeq[Attr]("attributes of "+e.String(), func(yield func(Attr) bool) {
			for _, id := range e.attrIDs() {
				if !yield(Attr{e.doc.node(id)}) {
					return
				}
			}
		}),
		owner: e,
	}
}

func (m *NamedNodeMap) Len() int {
	return m.s.len()
}

func (m *NamedNodeMap) Item(i int) Attr {
	a, _ := m.s.item(i)
	return a
}

func (m *NamedNodeMap) All() iter.Seq2[int, Attr] {
	return m.s.all()
}

func (m *NamedNodeMap) Slice() []Attr {
	return m.s.slice()
}

func (m *NamedNodeMap) GetNamedItem(name string) Attr {
	name = m.owner.foldName(name)
	a, _ := m.s.find(func(a Attr) bool { return a.Name() == name })
	return a
}

func (m *NamedNodeMap) GetNamedItemNS(ns, local string) Attr {
	a, _ := m.s.find(func(a Attr) bool { return a.NamespaceURI() == ns && a.LocalName() == local })
	return a
}

// SetNamedItem attaches a to the owner, returning the attribute it
// replaced.
func (m *NamedNodeMap) SetNamedItem(a Attr) (Attr, error) {
	return m.owner.SetAttributeNode(a)
}

func (m *NamedNodeMap) SetNamedItemNS(a Attr) (Attr, error) {
	return m.owner.SetAttributeNode(a)
}

// RemoveNamedItem fails with ErrAttributeNotFound when no attribute is
// named name.
func (m *NamedNodeMap) RemoveNamedItem(name string) (Attr, error) {
	a := m.GetNamedItem(name)
	if a.IsNull() {
		return Attr{}, fmt.Errorf("%w: %s", ErrAttributeNotFound, name)
	}
	return m.owner.RemoveAttributeNode(a)
}

// RemoveNamedItemNS fails with ErrAttributeNamespaceNotFound when no
// attribute has the namespace and local name.
func (m *NamedNodeMap) RemoveNamedItemNS(ns, local string) (Attr, error) {
	a := m.GetNamedItemNS(ns, local)
	if a.IsNull() {
		return Attr{}, fmt.Errorf("%w: {%s}%s", ErrAttributeNamespaceNotFound, ns, local)
	}
	return m.owner.RemoveAttributeNode(a)
}

// Set writes a at index i of the owner's attribute list. An index equal to
// the length behaves like SetNamedItem. Another attribute with a's
// namespace and local name is dropped.
func (m *NamedNodeMap) Set(i int, a Attr) error {
	size := m.Len()
	if i == size {
		_, err := m.SetNamedItem(a)
		return err
	}
	if i < 0 || i > size {
		return fmt.Errorf("%w: %d", ErrIndexSize, i)
	}
	e := m.owner
	switch {
	case a.IsNull():
		return unsupportedf("null attribute")
	case a.doc != e.doc:
		return ErrWrongDocument
	case a.ownerID() == e.id:
		if slices.Index(e.attrIDs(), a.id) == i {
			return nil
		}
		return ErrInUseAttribute
	case a.ownerID() != 0:
		return ErrInUseAttribute
	}
	r := a.rec()
	if j := e.attrIndexNS(r.ns, r.local); j != -1 && j != i {
		e.removeAttrAt(j)
		if j < i {
			i--
		}
	}
	e.setAttrAt(i, a)
	return nil
}

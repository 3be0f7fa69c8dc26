package dom

import (
	"slices"
	"strings"

	"github.com/signadot/dawm/debug"
)

// Element is a Node known to be an element.
type Element struct {
	Node
}

// Attr is a Node known to be an attribute. Attributes belong to at most one
// element and never take part in a sibling chain.
type Attr struct {
	Node
}

func (e Element) data() *elementData {
	return e.rec().data.(*elementData)
}

func (e Element) attrIDs() []ID {
	if e.IsNull() {
		return nil
	}
	return e.data().attrs
}

// inHTML reports whether e is an HTML element in an HTML document, the case
// where tag and attribute names are case-folded.
func (e Element) inHTML() bool {
	return e.doc.isHTML() && e.rec().ns == HTMLNamespace
}

// IsHTML reports whether e is an HTML element in an HTML document.
func (e Element) IsHTML() bool {
	return !e.IsNull() && e.inHTML()
}

// TagName returns the qualified name, upper-cased for HTML elements in HTML
// documents.
func (e Element) TagName() string {
	if e.IsNull() {
		return ""
	}
	r := e.rec()
	q := qualify(r.prefix, r.local)
	if e.inHTML() {
		return strings.ToUpper(q)
	}
	return q
}

func (e Element) foldName(name string) string {
	if e.inHTML() {
		return strings.ToLower(name)
	}
	return name
}

// AttrList returns a snapshot of e's attributes in order.
func (e Element) AttrList() []Attr {
	ids := e.attrIDs()
	res := make([]Attr, len(ids))
	for i, id := range ids {
		res[i] = Attr{e.doc.node(id)}
	}
	return res
}

func (e Element) HasAttributes() bool {
	return len(e.attrIDs()) > 0
}

func (e Element) GetAttributeNames() []string {
	ids := e.attrIDs()
	res := make([]string, len(ids))
	for i, id := range ids {
		r := e.doc.rec(id)
		res[i] = qualify(r.prefix, r.local)
	}
	return res
}

func (e Element) attrIndex(name string) int {
	name = e.foldName(name)
	for i, id := range e.attrIDs() {
		r := e.doc.rec(id)
		if qualify(r.prefix, r.local) == name {
			return i
		}
	}
	return -1
}

func (e Element) attrIndexNS(ns, local string) int {
	for i, id := range e.attrIDs() {
		r := e.doc.rec(id)
		if r.ns == ns && r.local == local {
			return i
		}
	}
	return -1
}

func (e Element) attrAt(i int) Attr {
	if i < 0 {
		return Attr{}
	}
	return Attr{e.doc.node(e.attrIDs()[i])}
}

// GetAttribute returns the value of the first attribute whose qualified
// name is name.
func (e Element) GetAttribute(name string) (string, bool) {
	a := e.GetAttributeNode(name)
	if a.IsNull() {
		return "", false
	}
	return a.Value(), true
}

func (e Element) GetAttributeNS(ns, local string) (string, bool) {
	a := e.GetAttributeNodeNS(ns, local)
	if a.IsNull() {
		return "", false
	}
	return a.Value(), true
}

// Attribute returns the value of name, or "" when it is absent.
func (e Element) Attribute(name string) string {
	v, _ := e.GetAttribute(name)
	return v
}

func (e Element) HasAttribute(name string) bool {
	return !e.IsNull() && e.attrIndex(name) != -1
}

func (e Element) HasAttributeNS(ns, local string) bool {
	return !e.IsNull() && e.attrIndexNS(ns, local) != -1
}

func (e Element) GetAttributeNode(name string) Attr {
	if e.IsNull() {
		return Attr{}
	}
	return e.attrAt(e.attrIndex(name))
}

func (e Element) GetAttributeNodeNS(ns, local string) Attr {
	if e.IsNull() {
		return Attr{}
	}
	return e.attrAt(e.attrIndexNS(ns, local))
}

// SetAttribute sets the value of the attribute whose qualified name is
// name, appending a new attribute when there is none.
func (e Element) SetAttribute(name, value string) error {
	if e.IsNull() {
		return unsupportedf("null element")
	}
	if !validName(name) {
		return ErrInvalidCharacter
	}
	if i := e.attrIndex(name); i != -1 {
		e.attrAt(i).SetValue(value)
		return nil
	}
	e.appendAttr(e.doc.newAttr("", "", e.foldName(name), value))
	return nil
}

func (e Element) SetAttributeNS(ns, qualifiedName, value string) error {
	if e.IsNull() {
		return unsupportedf("null element")
	}
	prefix, local, err := validateAndExtract(ns, qualifiedName)
	if err != nil {
		return err
	}
	e.PutAttributeNS(ns, prefix, local, value)
	return nil
}

// PutAttributeNS sets an attribute without validating its name. It is
// meant for builders whose names come out of a markup parser.
func (e Element) PutAttributeNS(ns, prefix, local, value string) {
	if i := e.attrIndexNS(ns, local); i != -1 {
		e.attrAt(i).SetValue(value)
		return
	}
	e.appendAttr(e.doc.newAttr(ns, prefix, local, value))
}

func (e Element) RemoveAttribute(name string) {
	if e.IsNull() {
		return
	}
	if i := e.attrIndex(name); i != -1 {
		e.removeAttrAt(i)
	}
}

func (e Element) RemoveAttributeNS(ns, local string) {
	if e.IsNull() {
		return
	}
	if i := e.attrIndexNS(ns, local); i != -1 {
		e.removeAttrAt(i)
	}
}

// ToggleAttribute removes name if present and adds it with an empty value
// otherwise. An optional force argument makes it one-way. It reports
// whether the attribute is present afterwards.
func (e Element) ToggleAttribute(name string, force ...bool) (bool, error) {
	if e.IsNull() {
		return false, unsupportedf("null element")
	}
	if !validName(name) {
		return false, ErrInvalidCharacter
	}
	i := e.attrIndex(name)
	if i == -1 {
		if len(force) > 0 && !force[0] {
			return false, nil
		}
		e.appendAttr(e.doc.newAttr("", "", e.foldName(name), ""))
		return true, nil
	}
	if len(force) > 0 && force[0] {
		return true, nil
	}
	e.removeAttrAt(i)
	return false, nil
}

// SetAttributeNode attaches a, replacing the attribute with the same
// namespace and local name. It returns the replaced attribute, if any.
func (e Element) SetAttributeNode(a Attr) (Attr, error) {
	if e.IsNull() || a.IsNull() {
		return Attr{}, unsupportedf("null node")
	}
	if a.doc != e.doc {
		return Attr{}, ErrWrongDocument
	}
	owner := a.ownerID()
	if owner == e.id {
		return a, nil
	}
	if owner != 0 {
		return Attr{}, ErrInUseAttribute
	}
	r := a.rec()
	i := e.attrIndexNS(r.ns, r.local)
	if i == -1 {
		e.appendAttr(a)
		return Attr{}, nil
	}
	old := e.attrAt(i)
	e.setAttrAt(i, a)
	return old, nil
}

func (e Element) SetAttributeNodeNS(a Attr) (Attr, error) {
	return e.SetAttributeNode(a)
}

// RemoveAttributeNode detaches a from e. It fails with ErrAttributeNotFound
// when e does not own a.
func (e Element) RemoveAttributeNode(a Attr) (Attr, error) {
	if e.IsNull() || a.IsNull() || a.doc != e.doc {
		return Attr{}, ErrAttributeNotFound
	}
	i := slices.Index(e.attrIDs(), a.id)
	if i == -1 {
		return Attr{}, ErrAttributeNotFound
	}
	e.removeAttrAt(i)
	return a, nil
}

func (e Element) appendAttr(a Attr) {
	if debug.Mutate() {
		debug.Logf("attach %s to %s", a, e)
	}
	a.data().owner = e.id
	d := e.data()
	d.attrs = append(d.attrs, a.id)
	e.doc.touch()
}

func (e Element) setAttrAt(i int, a Attr) {
	d := e.data()
	e.doc.rec(d.attrs[i]).data.(*attrData).owner = 0
	a.data().owner = e.id
	d.attrs[i] = a.id
	e.doc.touch()
}

func (e Element) removeAttrAt(i int) {
	d := e.data()
	if debug.Mutate() {
		debug.Logf("remove %s from %s", e.doc.node(d.attrs[i]), e)
	}
	e.doc.rec(d.attrs[i]).data.(*attrData).owner = 0
	d.attrs = slices.Delete(d.attrs, i, i+1)
	e.doc.touch()
}

// ID reflects the id attribute.
func (e Element) ID() string {
	return e.Attribute("id")
}

func (e Element) SetID(id string) error {
	return e.SetAttribute("id", id)
}

// ClassName reflects the class attribute.
func (e Element) ClassName() string {
	return e.Attribute("class")
}

func (e Element) SetClassName(c string) error {
	return e.SetAttribute("class", c)
}

// ClassList returns a live token list over the class attribute.
func (e Element) ClassList() *DOMTokenList {
	return newTokenList(e, "class")
}

// Dataset returns a live view of e's data-* attributes.
func (e Element) Dataset() *DOMStringMap {
	return &DOMStringMap{owner: e}
}

// Attributes returns a live map of e's attributes.
func (e Element) Attributes() *NamedNodeMap {
	return newNamedNodeMap(e)
}

func (a Attr) data() *attrData {
	return a.rec().data.(*attrData)
}

func (a Attr) ownerID() ID {
	if a.IsNull() {
		return 0
	}
	return a.data().owner
}

// Name returns the qualified name of a.
func (a Attr) Name() string {
	return a.NodeName()
}

func (a Attr) Value() string {
	if a.IsNull() {
		return ""
	}
	return a.rec().value
}

func (a Attr) SetValue(v string) {
	if a.IsNull() {
		return
	}
	a.rec().value = v
	a.doc.touch()
}

func (a Attr) OwnerElement() Element {
	return Element{a.doc.node(a.ownerID())}
}

// Specified is always true.
func (a Attr) Specified() bool {
	return true
}

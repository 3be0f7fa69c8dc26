package wire

import (
	"slices"

	"github.com/signadot/dawm/debug"
)

// Resolve substitutes every string index of doc with the string it denotes.
// It does not modify doc. The returned strings table is a private copy and
// is never written to again.
func Resolve(doc *Doc) (*Resolved, error) {
	if doc == nil {
		return nil, malformed("$", "nil document")
	}
	r := &Resolved{
		ContentType: doc.ContentType,
		QuirksMode:  ParseQuirksMode(doc.QuirksMode),
		Strings:     slices.Clip(slices.Clone(doc.Strings)),
		Nodes:       make([]ResolvedNode, len(doc.Nodes)),
	}
	ids := make(map[uint32]int, len(doc.Nodes))
	for i := range doc.Nodes {
		id := doc.Nodes[i].ID
		if j, dup := ids[id]; dup {
			return nil, malformed(index("$.nodes", i)+".id", "duplicate id %d (also at nodes[%d])", id, j)
		}
		ids[id] = i
	}
	str := func(path string, i uint32) (string, error) {
		if int(i) >= len(r.Strings) {
			return "", malformed(path, "string index %d out of range (%d strings)", i, len(r.Strings))
		}
		return r.Strings[i], nil
	}
	optStr := func(path string, i *uint32) (*string, error) {
		if i == nil {
			return nil, nil
		}
		s, err := str(path, *i)
		if err != nil {
			return nil, err
		}
		return &s, nil
	}
	ref := func(path string, id *uint32) (*uint32, error) {
		if id == nil {
			return nil, nil
		}
		if _, ok := ids[*id]; !ok {
			return nil, malformed(path, "reference to unknown node id %d", *id)
		}
		v := *id
		return &v, nil
	}

	var err error
	for i := range doc.Nodes {
		src := &doc.Nodes[i]
		dst := &r.Nodes[i]
		path := index("$.nodes", i)
		dst.ID = src.ID
		dst.NodeType = src.NodeType
		if dst.NodeName, err = optStr(path+".nodeName", src.NodeName); err != nil {
			return nil, err
		}
		if dst.NodeValue, err = optStr(path+".nodeValue", src.NodeValue); err != nil {
			return nil, err
		}
		if dst.NamespaceURI, err = optStr(path+".namespaceURI", src.NamespaceURI); err != nil {
			return nil, err
		}
		if dst.ParentNode, err = ref(path+".parentNode", src.ParentNode); err != nil {
			return nil, err
		}
		if dst.FirstChild, err = ref(path+".firstChild", src.FirstChild); err != nil {
			return nil, err
		}
		if dst.NextSibling, err = ref(path+".nextSibling", src.NextSibling); err != nil {
			return nil, err
		}
		if len(src.Attributes) == 0 {
			continue
		}
		dst.Attributes = make([]ResolvedAttr, len(src.Attributes))
		for j := range src.Attributes {
			a := &src.Attributes[j]
			ra := &dst.Attributes[j]
			apath := index(path+".attributes", j)
			if ra.Name, err = str(apath+".name", a.Name); err != nil {
				return nil, err
			}
			if ra.NS, err = optStr(apath+".ns", a.NS); err != nil {
				return nil, err
			}
			if a.Value != nil {
				if ra.Value, err = str(apath+".value", *a.Value); err != nil {
					return nil, err
				}
			}
		}
	}
	if debug.Wire() {
		debug.Logf("resolved %d nodes against %d strings", len(r.Nodes), len(r.Strings))
		for i := range r.Nodes {
			debug.LogAny(&r.Nodes[i])
		}
	}
	return r, nil
}

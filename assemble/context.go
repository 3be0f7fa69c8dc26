package assemble

import (
	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/wire"
)

// Context is threaded through assembly. It carries the id lookup table,
// the strings table, the content type and quirks mode, and the document
// being built, so that nodes can be created in its arena before the
// document is complete.
type Context struct {
	Lookup      map[uint32]*wire.ResolvedNode
	Strings     []string
	ContentType string
	QuirksMode  wire.QuirksMode
	Doc         *dom.Document

	visited map[uint32]bool
}

// NewContext indexes r by node id. doc receives the assembled nodes; when
// nil a new document is created from r's content type, quirks mode and
// strings.
func NewContext(r *wire.Resolved, doc *dom.Document) *Context {
	ctx := &Context{
		Lookup:      make(map[uint32]*wire.ResolvedNode, len(r.Nodes)),
		Strings:     r.Strings,
		ContentType: r.ContentType,
		QuirksMode:  r.QuirksMode,
		Doc:         doc,
		visited:     map[uint32]bool{},
	}
	for i := range r.Nodes {
		ctx.Lookup[r.Nodes[i].ID] = &r.Nodes[i]
	}
	if ctx.Doc == nil {
		ctx.Doc = dom.NewDocument(
			dom.WithContentType(r.ContentType),
			dom.WithQuirksMode(r.QuirksMode),
			dom.WithStrings(r.Strings),
		)
	}
	return ctx
}

func (c *Context) node(id uint32) (*wire.ResolvedNode, bool) {
	n, ok := c.Lookup[id]
	return n, ok
}

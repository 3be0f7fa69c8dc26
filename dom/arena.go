package dom

// ID is a node's index in its document's arena. It is the node identity
// within a document; the zero ID is never allocated.
type ID uint32

type record struct {
	kind  NodeType
	name  string
	value string

	ns, prefix, local string

	parent, first, last, prev, next ID

	data payload
}

// payload is the per-kind part of a record.
type payload interface {
	isPayload()
}

type elementData struct {
	attrs []ID
}

type attrData struct {
	owner ID
}

type doctypeData struct {
	publicID, systemID string
}

func (*elementData) isPayload() {}
func (*attrData) isPayload()    {}
func (*doctypeData) isPayload() {}

func (d *Document) alloc(r record) ID {
	id := ID(len(d.nodes))
	d.nodes = append(d.nodes, r)
	return id
}

func (d *Document) rec(id ID) *record {
	return &d.nodes[id]
}

func (d *Document) node(id ID) Node {
	if id == 0 {
		return Node{}
	}
	return Node{doc: d, id: id}
}

// touch records a mutation. Cached document lookups compare against the
// version to decide whether to recompute.
func (d *Document) touch() {
	d.version++
}

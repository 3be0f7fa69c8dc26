// Package dom provides a mutable, DOM-shaped node tree.
//
// # Overview
//
// Every [Document] owns an arena of node records. A [Node] is a small value
// handle, a document pointer plus an arena index, so nodes compare with ==
// and the zero Node is the null node. All structural links (parent, first
// and last child, previous and next sibling) are arena indices, and a
// document is discarded as a unit.
//
// Typed views wrap Node: [Element] for the element API and [Attr] for
// attribute nodes. Document, DocumentFragment and the character data kinds
// are plain Nodes distinguished by [Node.Type].
//
// # Mutation
//
// All pointer maintenance goes through one insertion routine and one
// detach routine; [Node.AppendChild], [Node.ReplaceChild],
// [Node.RemoveChild] and the convenience methods are expressed in terms of
// those two. Every mutating method validates its arguments before touching
// any link, so a call that returns an error leaves the tree as it was.
//
// # Collections
//
// [NodeList], [HTMLCollection], [NamedNodeMap], [DOMTokenList] and
// [DOMStringMap] are live: each read re-derives the backing sequence from
// the tree. Two calls to the same accessor return distinct views over the
// same tree state.
//
// # Selectors
//
// Selector matching is provided by a registered [SelectorEngine]; importing
// the selector package registers the default one.
package dom

// Package wire holds the flat, string-interned document form produced by a
// markup parser, and turns it into a string-resolved form ready for tree
// assembly.
//
// A wire document is a strings table plus a flat array of nodes. Nodes refer
// to strings by index into [Doc.Strings] and to each other by id: the tree
// shape is carried by the parentNode, firstChild and nextSibling ids rather
// than by nesting.
//
// [Decode] reads a wire document from JSON or YAML bytes, checking its shape.
// [Resolve] substitutes every string index, yielding a [Resolved] document
// whose strings table is frozen.
package wire

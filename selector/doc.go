// Package selector implements CSS selectors over dom trees.
//
// # Syntax
//
// Supported: type, universal, class, id and attribute selectors (with the
// = ~= |= ^= $= *= operators and the i/s flags), compound selectors, the
// descendant, child (>), next-sibling (+) and subsequent-sibling (~)
// combinators, selector lists, and the pseudo-classes registered in this
// package (see [Names]). Namespace prefixes and pseudo-elements are not
// supported.
//
// # Matching
//
// [Parse] turns a selector string into an AST. [Compile] turns it into a
// [Matcher]. [QueryAll] and [Query] walk the scope once in document order;
// for every step of a complex selector the walk records which nodes matched
// the steps to its left, and a candidate only matches when its combinator
// relation to a recorded node holds. The scope root may match a left step
// but is never returned, and nodes outside the scope never take part,
// except inside :global().
//
// Importing the package registers it as the dom selector engine.
package selector

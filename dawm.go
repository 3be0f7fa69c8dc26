// Package dawm turns parsed markup into a mutable DOM tree.
//
// The pipeline is parse (markup to a wire document), wire.Resolve (string
// indices to strings) and assemble (resolved wire nodes to dom nodes). The
// helpers here run the whole pipeline in one call. Importing dawm also
// installs the selector engine used by dom's QuerySelector family.
package dawm

import (
	"bytes"
	"fmt"

	"github.com/signadot/dawm/assemble"
	"github.com/signadot/dawm/debug"
	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/encode"
	"github.com/signadot/dawm/libdiff"
	"github.com/signadot/dawm/parse"
	_ "github.com/signadot/dawm/selector"
	"github.com/signadot/dawm/wire"
)

// Parse parses markup of the given MIME type into a document.
func Parse(input []byte, mime string, opts ...parse.ParseOption) (*dom.Document, error) {
	doc, err := parse.Parse(input, mime, opts...)
	if err != nil {
		return nil, err
	}
	return FromWire(doc)
}

// ParseFragment parses HTML as the children of a context element. The
// resulting document holds the nodes under its html element.
func ParseFragment(input []byte, context string, opts ...parse.ParseOption) (*dom.Document, error) {
	doc, err := parse.Fragment(input, context, opts...)
	if err != nil {
		return nil, err
	}
	return FromWire(doc)
}

// Load assembles a document from wire bytes in JSON or YAML.
func Load(data []byte) (*dom.Document, error) {
	doc, err := wire.Decode(data)
	if err != nil {
		return nil, err
	}
	return FromWire(doc)
}

func FromWire(doc *wire.Doc) (*dom.Document, error) {
	r, err := wire.Resolve(doc)
	if err != nil {
		return nil, err
	}
	d, err := assemble.Document(r)
	if err != nil {
		return nil, err
	}
	if debug.Assemble() {
		debug.Logf("assembled %s document from %d wire nodes", d.Kind(), len(doc.Nodes))
	}
	return d, nil
}

// Render serializes n to markup.
func Render(n dom.Node, opts ...encode.EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(n, buf, opts...); err != nil {
		return "", fmt.Errorf("rendering %s: %w", n, err)
	}
	return buf.String(), nil
}

// Diff returns the line edits between the outlines of a and b, or nil when
// they do not differ.
func Diff(a, b dom.Node) []libdiff.Edit {
	edits := libdiff.Nodes(a, b)
	if libdiff.IsEmpty(edits) {
		return nil
	}
	return edits
}

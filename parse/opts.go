package parse

import "github.com/signadot/dawm/wire"

type parseOpts struct {
	scripts     bool
	dropDoctype bool
	srcdoc      bool
	quirks      wire.QuirksMode
	contentType string
	context     string
	exactErrors bool
	interner    *wire.Interner
}

func newOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{scripts: true, exactErrors: true}
	for _, f := range opts {
		f(o)
	}
	if o.interner == nil {
		o.interner = wire.DefaultInterner()
	}
	return o
}

type ParseOption func(*parseOpts)

// AllowScripts controls whether <noscript> content is parsed as raw text,
// as a browser with scripting enabled does. The default is true.
func AllowScripts(v bool) ParseOption {
	return func(o *parseOpts) { o.scripts = v }
}
func DropDoctype(v bool) ParseOption {
	return func(o *parseOpts) { o.dropDoctype = v }
}

// IframeSrcdoc marks the input as the srcdoc of an iframe, which is never in
// quirks mode for lack of a doctype.
func IframeSrcdoc(v bool) ParseOption {
	return func(o *parseOpts) { o.srcdoc = v }
}

// Quirks sets the quirks mode of parsed fragments. Documents derive theirs
// from the doctype.
func Quirks(q wire.QuirksMode) ParseOption {
	return func(o *parseOpts) { o.quirks = q }
}

// ContentType overrides the MIME type passed to Parse.
func ContentType(ct string) ParseOption {
	return func(o *parseOpts) { o.contentType = ct }
}

// ContextElement makes HTML input parse as a fragment in the context of an
// element with the given name.
func ContextElement(name string) ParseOption {
	return func(o *parseOpts) { o.context = name }
}

// ExactErrors is accepted for compatibility. The HTML parser recovers from
// every markup error, so it has nothing more exact to report.
func ExactErrors(v bool) ParseOption {
	return func(o *parseOpts) { o.exactErrors = v }
}

// WithInterner interns the strings of the output in in, so that several
// documents can share one table.
func WithInterner(in *wire.Interner) ParseOption {
	return func(o *parseOpts) { o.interner = in }
}

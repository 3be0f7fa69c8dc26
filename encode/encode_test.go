package encode

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dawm/assemble"
	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/parse"
	"github.com/signadot/dawm/wire"
)

func load(t *testing.T, doc *wire.Doc, err error) *dom.Document {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	r, err := wire.Resolve(doc)
	if err != nil {
		t.Fatal(err)
	}
	d, err := assemble.Document(r)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func loadHTML(t *testing.T, markup string) *dom.Document {
	t.Helper()
	doc, err := parse.HTML([]byte(markup))
	return load(t, doc, err)
}

func TestEncodeHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "document",
			in:   `<!DOCTYPE html><html><head><title>T</title></head><body><p class="a">x &amp; y<br>z</p><!--c--></body></html>`,
			want: `<!DOCTYPE html><html><head><title>T</title></head><body><p class="a">x &amp; y<br>z</p><!--c--></body></html>`,
		},
		{
			name: "implied elements",
			in:   `<p>one<p>two`,
			want: `<html><head></head><body><p>one</p><p>two</p></body></html>`,
		},
		{
			name: "attribute escaping",
			in:   `<p title='a"b&amp;c<'>x</p>`,
			want: `<html><head></head><body><p title="a&quot;b&amp;c<">x</p></body></html>`,
		},
		{
			name: "text escaping",
			in:   `<p>a&nbsp;b &lt;c&gt;</p>`,
			want: `<html><head></head><body><p>a&nbsp;b &lt;c&gt;</p></body></html>`,
		},
		{
			name: "raw text",
			in:   `<script>if (a < b && c) {}</script><style>p > a {}</style>`,
			want: `<html><head><script>if (a < b && c) {}</script><style>p > a {}</style></head><body></body></html>`,
		},
		{
			name: "void elements",
			in:   `<img src=a.png><input type=text><hr>`,
			want: `<html><head></head><body><img src="a.png"><input type="text"><hr></body></html>`,
		},
		{
			name: "leading newline",
			in:   "<pre>\n\nx</pre><textarea>\n\ny</textarea>",
			want: "<html><head></head><body><pre>\n\nx</pre><textarea>\n\ny</textarea></body></html>",
		},
		{
			name: "foreign content",
			in:   `<svg viewBox="0 0 1 1"><a xlink:href="#x"><circle r="1"></circle></a></svg>`,
			want: `<html><head></head><body><svg viewBox="0 0 1 1"><a xlink:href="#x"><circle r="1"></circle></a></svg></body></html>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := loadHTML(t, tt.in)
			got := MustString(d.Node())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("encode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeInner(t *testing.T) {
	d := loadHTML(t, `<div id="d"><b>x</b>y</div>`)
	div := d.GetElementByID("d")
	if got := MustString(div.Node, EncodeInner(true)); got != "<b>x</b>y" {
		t.Errorf("inner = %q", got)
	}
	if got := MustString(div.Node); got != `<div id="d"><b>x</b>y</div>` {
		t.Errorf("outer = %q", got)
	}
}

func TestEncodeXML(t *testing.T) {
	in := `<?xml version="1.0"?>
<r xmlns="urn:x"><a:b xmlns:a="urn:a" a:k="v"/><c>t&lt;&amp;</c><?pi d?><!--n--></r>`
	doc, err := parse.XML([]byte(in), wire.MIMEXML)
	d := load(t, doc, err)
	want := `<r xmlns="urn:x"><a:b xmlns:a="urn:a" a:k="v"/><c>t&lt;&amp;</c><?pi d?><!--n--></r>`
	if got := MustString(d.Node()); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestEncodeXMLNamespaces(t *testing.T) {
	d := dom.NewDocument(dom.WithContentType(wire.MIMEXML))
	root, err := d.CreateElementNS("urn:x", "x:root")
	if err != nil {
		t.Fatal(err)
	}
	if err := root.SetAttributeNS(dom.XLinkNamespace, "xlink:href", "#a"); err != nil {
		t.Fatal(err)
	}
	if err := root.SetAttributeNS("urn:q", "k", "1\n2"); err != nil {
		t.Fatal(err)
	}
	child, _ := d.CreateElement("plain")
	if _, err := root.AppendChild(child.Node); err != nil {
		t.Fatal(err)
	}
	inner, _ := d.CreateElementNS("urn:x", "x:inner")
	if _, err := child.AppendChild(inner.Node); err != nil {
		t.Fatal(err)
	}
	want := `<x:root xmlns:x="urn:x" xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:ns1="urn:q" xlink:href="#a" ns1:k="1&#10;2"><plain><x:inner/></plain></x:root>`
	if got := MustString(root.Node); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestEncodeHTMLAsXML(t *testing.T) {
	d := loadHTML(t, `<!DOCTYPE html><p>a<br>b</p>`)
	want := `<!DOCTYPE html><html xmlns="http://www.w3.org/1999/xhtml"><head/><body><p>a<br/>b</p></body></html>`
	if got := MustString(d.Node(), EncodeXML(true)); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestEncodeDoctype(t *testing.T) {
	d := dom.NewDocument(dom.WithContentType(wire.MIMEXML))
	tests := []struct {
		pub, sys string
		want     string
	}{
		{want: "<!DOCTYPE x>"},
		{sys: "x.dtd", want: `<!DOCTYPE x SYSTEM "x.dtd">`},
		{pub: "-//X", sys: "x.dtd", want: `<!DOCTYPE x PUBLIC "-//X" "x.dtd">`},
	}
	for _, tt := range tests {
		dt := d.CreateDocumentType("x", tt.pub, tt.sys)
		if got := MustString(dt); got != tt.want {
			t.Errorf("got %s, want %s", got, tt.want)
		}
	}

	h := loadHTML(t, `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd"><p>x</p>`)
	want := `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`
	if got := MustString(h.Doctype()); got != want {
		t.Errorf("html doctype: got %s, want %s", got, want)
	}
}

func TestEncodeColors(t *testing.T) {
	d := loadHTML(t, `<p id="x">t</p>`)
	colors := &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			TagColor:      func(s string, _ ...any) string { return "[" + s + "]" },
			AttrNameColor: func(s string, _ ...any) string { return "{" + s + "}" },
		},
	}
	got := MustString(d.GetElementByID("x").Node, EncodeColors(colors))
	if want := `<[p] {id}="x">t</[p]>`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if NewColors().Get(TextColor)("%v") != "%v" {
		t.Errorf("uncolored attribute changed text")
	}
}

func TestEncodeNull(t *testing.T) {
	if err := Encode(dom.Node{}, &bytes.Buffer{}); !errors.Is(err, ErrNullNode) {
		t.Errorf("expected ErrNullNode, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>a &amp; b</title></head><body><ul><li class="x y">1<li>2</ul><pre>

 p</pre><table><tr><td>c</table><math><mi>x</mi></math></body></html>`,
		`<p>a&nbsp;&lt;b&gt; "q"</p><script>x = "</p>"</script><textarea>t</textarea>`,
		`<div data-k='a"b'><!-- c --><template><i>t</i></template></div>`,
	}
	for _, in := range inputs {
		first := MustString(loadHTML(t, in).Node())
		second := MustString(loadHTML(t, first).Node())
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("round trip changed markup (-first +second):\n%s", diff)
		}
	}
}

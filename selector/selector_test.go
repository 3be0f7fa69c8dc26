package selector

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dawm/assemble"
	"github.com/signadot/dawm/dom"
	"github.com/signadot/dawm/parse"
	"github.com/signadot/dawm/wire"
)

const fixture = `<!DOCTYPE html>
<html><body>
<div id="main" class="box">
  <ul id="list">
    <li id="l1" class="a">one</li>
    <li id="l2" class="a b" data-k="v">two</li>
    <li id="l3"><span id="s1">x</span><span id="s2" lang="en-US">y</span></li>
    <li id="l4" class="B"></li>
  </ul>
  <p id="p1">para <a id="a1" href="http://example.org/x">link</a></p>
  <p id="p2"><em id="e1">only</em></p>
  <form id="f"><input id="i1" type="checkbox" checked><input id="i2" disabled required><fieldset id="fs" disabled><input id="i3"></fieldset><select id="sel"><option id="o1" selected>1</option></select></form>
</div>
<ol id="ol"><li id="m1">x</li></ol>
</body></html>`

func load(t *testing.T, markup string) *dom.Document {
	t.Helper()
	doc, err := parse.HTML([]byte(markup))
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

// ids names elements by id, falling back to the local name.
func ids(els []dom.Element) []string {
	res := []string{}
	for _, el := range els {
		if id := el.ID(); id != "" {
			res = append(res, id)
			continue
		}
		res = append(res, el.LocalName())
	}
	return res
}

func byID(t *testing.T, d *dom.Document, id string) dom.Element {
	t.Helper()
	el := d.GetElementByID(id)
	if el.IsNull() {
		t.Fatalf("no element #%s", id)
	}
	return el
}

func TestListExample(t *testing.T) {
	d := load(t, `<ul><li>A</li><li class="sel">B</li></ul>`)
	text := func(els ...dom.Element) []string {
		var res []string
		for _, el := range els {
			res = append(res, el.TextContent())
		}
		return res
	}
	all, err := QueryAll(d.Node(), "li")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, text(all...)); diff != "" {
		t.Errorf("li (-want +got):\n%s", diff)
	}
	sel := d.Node().QuerySelector(".sel")
	if sel.IsNull() || sel.TextContent() != "B" {
		t.Errorf(".sel = %v", sel)
	}
	nth := d.Node().QuerySelectorAll("li:nth-child(2)")
	if nth.Len() != 1 || nth.Item(0).TextContent() != "B" {
		t.Errorf("li:nth-child(2) returned %d nodes", nth.Len())
	}
}

func TestQueryAll(t *testing.T) {
	d := load(t, fixture)
	tests := []struct {
		sel  string
		want string
	}{
		{"li", "l1 l2 l3 l4 m1"},
		{"LI", "l1 l2 l3 l4 m1"},
		{"ul > li", "l1 l2 l3 l4"},
		{"div li", "l1 l2 l3 l4"},
		{"li + li", "l2 l3 l4"},
		{"#l1 ~ li", "l2 l3 l4"},
		{"ul li > span + span", "s2"},
		{".a", "l1 l2"},
		{".a.b", "l2"},
		{"[data-k]", "l2"},
		{"[DATA-K]", "l2"},
		{"[data-k=v]", "l2"},
		{"[data-k=V i]", "l2"},
		{"[data-k=V]", ""},
		{"[class~=b]", "l2"},
		{"[lang|=en]", "s2"},
		{"[href^=http]", "a1"},
		{"[href$='.org/x']", "a1"},
		{`[href*="example"]`, "a1"},
		{"[href^='']", ""},
		{"li:first-child", "l1 m1"},
		{"li:last-child", "l4 m1"},
		{"li:only-child", "m1"},
		{"li:nth-child(2)", "l2"},
		{"li:nth-child(odd)", "l1 l3 m1"},
		{"li:nth-child(-n+2)", "l1 l2 m1"},
		{"li:nth-last-child(1)", "l4 m1"},
		{"li:nth-child(2 of .a)", "l2"},
		{"span:first-of-type", "s1"},
		{"span:last-of-type", "s2"},
		{"p:nth-of-type(2)", "p2"},
		{"em:only-of-type", "e1"},
		{"li:empty", "l4"},
		{":root", "html"},
		{"li:not(.a)", "l3 l4 m1"},
		{":is(ul, ol) > li", "l1 l2 l3 l4 m1"},
		{":where(#l1, #l4)", "l1 l4"},
		{":matches(#l1)", "l1"},
		{"li:has(> span)", "l3"},
		{"ul:has(+ p)", "list"},
		{"ul:has(~ form input[checked])", "list"},
		{"p:has(a, em)", "p1 p2"},
		{"div:has(li span)", "main"},
		{":checked", "i1 o1"},
		{":disabled", "i2 fs i3"},
		{":enabled", "i1 sel o1"},
		{":required", "i2"},
		{":optional", "i1 i3 sel"},
		{":link", "a1"},
		{":lang(en)", "s2"},
		{"li, p", "l1 l2 l3 l4 p1 p2 m1"},
		{"#l2, .a", "l1 l2"},
		{"table", ""},
	}
	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			els, err := QueryAll(d.Node(), tt.sel)
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.Join(ids(els), " "); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScopedQuery(t *testing.T) {
	d := load(t, fixture)
	tests := []struct {
		scope string
		sel   string
		want  string
	}{
		{"list", "li", "l1 l2 l3 l4"},
		{"list", "ul", ""},
		{"list", "ul > li", "l1 l2 l3 l4"},
		{"list", "div li", ""},
		{"list", "li:global(div li)", "l1 l2 l3 l4"},
		{"list", ":global(div) li", "l1 l2 l3 l4"},
		{"list", ":global(#main) > li", ""},
		{"list", ":global(#main) > ul > li", "l1 l2 l3 l4"},
		{"l3", ":global(ul) > li span", "s1 s2"},
		{"l3", ":global(#l1) ~ li span", "s1 s2"},
		{"l3", ":global(#l4) ~ li span", ""},
		{"main", ":global(body) > div p", "p1 p2"},
		{"main", "div li", "l1 l2 l3 l4"},
		{"list", ":scope > li", "l1 l2 l3 l4"},
		{"list", ":scope", ""},
		{"list", "li:first-child", "l1"},
		{"l3", "span ~ span", "s2"},
		{"s1", "span", ""},
	}
	for _, tt := range tests {
		t.Run(tt.scope+" "+tt.sel, func(t *testing.T) {
			els, err := QueryAll(byID(t, d, tt.scope).Node, tt.sel)
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.Join(ids(els), " "); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryFirst(t *testing.T) {
	d := load(t, fixture)
	el, err := Query(d.Node(), "li:not(:first-child)")
	if err != nil {
		t.Fatal(err)
	}
	if el.ID() != "l2" {
		t.Errorf("got %v", el)
	}
	el, err = Query(d.Node(), "table")
	if err != nil || !el.IsNull() {
		t.Errorf("got %v %v", el, err)
	}
}

func TestMatchesAndClosest(t *testing.T) {
	d := load(t, fixture)
	l2 := byID(t, d, "l2")
	for sel, want := range map[string]bool{
		"ul .b":           true,
		"div li":          true,
		"ol li":           false,
		":scope":          true,
		"li:nth-child(2)": true,
	} {
		got, err := Matches(l2, sel)
		if err != nil {
			t.Fatalf("%s: %v", sel, err)
		}
		if got != want {
			t.Errorf("Matches(l2, %q) = %v", sel, got)
		}
	}
	if _, err := Matches(l2, "li["); !errors.Is(err, ErrSyntax) {
		t.Errorf("expected ErrSyntax, got %v", err)
	}

	s1 := byID(t, d, "s1")
	for sel, want := range map[string]string{
		"div":   "main",
		"span":  "s1",
		"li":    "l3",
		"table": "",
	} {
		got, err := Closest(s1, sel)
		if err != nil {
			t.Fatal(err)
		}
		if got.ID() != want {
			t.Errorf("Closest(s1, %q) = %v", sel, got)
		}
	}
}

func TestDOMEngine(t *testing.T) {
	d := load(t, fixture)
	if n := d.Node().QuerySelectorAll("li[").Len(); n != 0 {
		t.Errorf("invalid selector matched %d nodes", n)
	}
	if el := d.Node().QuerySelector("li["); !el.IsNull() {
		t.Errorf("invalid selector matched %v", el)
	}
	l1 := byID(t, d, "l1")
	if _, err := l1.Matches("::before"); !errors.Is(err, ErrSyntax) {
		t.Errorf("Matches: expected ErrSyntax, got %v", err)
	}
	if _, err := l1.Closest(":nope"); !errors.Is(err, ErrSyntax) {
		t.Errorf("Closest: expected ErrSyntax, got %v", err)
	}
	if ok, err := l1.Matches("#list > .a"); err != nil || !ok {
		t.Errorf("Matches = %v %v", ok, err)
	}
	el, err := l1.Closest("#main")
	if err != nil || el.ID() != "main" {
		t.Errorf("Closest = %v %v", el, err)
	}
	// :scope stays the starting element while ancestors are tried.
	for _, sel := range []string{"ul:has(> :scope)", "div :scope", ":scope"} {
		want, err := Closest(l1, sel)
		if err != nil {
			t.Fatal(err)
		}
		got, err := l1.Closest(sel)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s: dom Closest = %v, selector Closest = %v", sel, got, want)
		}
	}
	if el, _ := l1.Closest("ul:has(> :scope)"); el.ID() != "list" {
		t.Errorf("ul:has(> :scope) = %v", el)
	}
}

func TestQueryAfterMutation(t *testing.T) {
	d := load(t, fixture)
	m, err := Compile("ul > li.a")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(m.QueryAll(d.Node())); n != 2 {
		t.Fatalf("got %d", n)
	}
	li, err := d.CreateElement("li")
	if err != nil {
		t.Fatal(err)
	}
	if err := li.SetClassName("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := byID(t, d, "list").AppendChild(li.Node); err != nil {
		t.Fatal(err)
	}
	if n := len(m.QueryAll(d.Node())); n != 3 {
		t.Errorf("after append got %d", n)
	}
	byID(t, d, "l1").Remove()
	if got := ids(m.QueryAll(d.Node())); !cmp.Equal(got, []string{"l2", "li"}) {
		t.Errorf("after remove got %v", got)
	}
}

func TestQuirksCase(t *testing.T) {
	markup := `<p class="Foo" id="Bar">x</p>`
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{name: "quirks", want: "Bar Bar"},
		{name: "no-quirks", prefix: "<!DOCTYPE html>", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := load(t, tt.prefix+markup)
			var got []string
			for _, sel := range []string{".foo", "#bar"} {
				els, err := QueryAll(d.Node(), sel)
				if err != nil {
					t.Fatal(err)
				}
				got = append(got, ids(els)...)
			}
			if s := strings.Join(got, " "); s != tt.want {
				t.Errorf("got %q, want %q", s, tt.want)
			}
		})
	}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"li", "li"},
		{"*", "*"},
		{"ul > li.a#b[x=y]", `ul > li.a#b[x="y"]`},
		{"a   b", "a b"},
		{"a+b~c", "a + b ~ c"},
		{"A , B", "A, B"},
		{"li:nth-child( 2n + 1 )", "li:nth-child(2n+1)"},
		{":nth-child(odd of .x, .y)", ":nth-child(2n+1 of .x, .y)"},
		{":nth-last-child(-n+3)", ":nth-last-child(-n+3)"},
		{":not(.a,.b)", ":not(.a, .b)"},
		{":has(> img, + p)", ":has(> img, + p)"},
		{"[lang|=en i]", `[lang|="en" i]`},
		{"[title='a b']", `[title="a b"]`},
		{":FIRST-CHILD", ":first-child"},
		{":lang(en)", ":lang(en)"},
		{`#\31 23`, `#\31 23`},
		{`.a\:b`, `.a\:b`},
		{"a /* note */ b", "a b"},
	}
	for _, tt := range tests {
		l, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if got := l.String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.in, got, tt.want)
		}
		// canonical text parses to the same thing
		again, err := Parse(l.String())
		if err != nil {
			t.Errorf("reparse %q: %v", l.String(), err)
			continue
		}
		if again.String() != l.String() {
			t.Errorf("reparse %q gave %q", l.String(), again.String())
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		in  string
		pos int
	}{
		{"", 0},
		{"a >", 3},
		{"a,,b", 2},
		{"[x", 2},
		{"a::before", 1},
		{":nope", 1},
		{":not(", 5},
		{":nth-child(x)", 11},
		{":nth-of-type(2n of .a)", 15},
		{":nth-child(2n of )", 17},
		{"ns|a", 2},
		{"'abc", 0},
		{".1", 0},
		{":first-child(2)", 1},
		{":nth-child", 1},
		{"a b)", 3},
		{"[x=]", 3},
		{"[x=y z]", 5},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in)
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q): expected ErrSyntax, got %v", tt.in, err)
			continue
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Parse(%q): %T is not a *SyntaxError", tt.in, err)
			continue
		}
		if se.Pos != tt.pos {
			t.Errorf("Parse(%q): error at %d, want %d (%v)", tt.in, se.Pos, tt.pos, err)
		}
	}
}

func TestSpecificity(t *testing.T) {
	tests := []struct {
		sel  string
		want Specificity
	}{
		{"*", Specificity{0, 0, 0}},
		{"li", Specificity{0, 0, 1}},
		{"ul li", Specificity{0, 0, 2}},
		{".a", Specificity{0, 1, 0}},
		{"#x", Specificity{1, 0, 0}},
		{"ul#x.a[b]:first-child", Specificity{1, 3, 1}},
		{":is(#a, .b)", Specificity{1, 0, 0}},
		{":where(#a)", Specificity{0, 0, 0}},
		{":not(.a .b)", Specificity{0, 2, 0}},
		{":has(> #a)", Specificity{1, 0, 0}},
		{":nth-child(2n of #a)", Specificity{1, 1, 0}},
		{"a, #b", Specificity{1, 0, 0}},
	}
	for _, tt := range tests {
		m, err := Compile(tt.sel)
		if err != nil {
			t.Fatal(err)
		}
		if got := m.Specificity(); got != tt.want {
			t.Errorf("%s: %s, want %s", tt.sel, got, tt.want)
		}
	}
	a, b := Specificity{0, 2, 0}, Specificity{1, 0, 0}
	if !a.Less(b) || b.Less(a) || a.Less(a) {
		t.Errorf("Less misorders %s and %s", a, b)
	}
	if a.Value() >= b.Value() {
		t.Errorf("Value misorders %s and %s", a, b)
	}
	if (Specificity{0, 2000, 0}).Value() >= b.Value() {
		t.Errorf("Value does not saturate")
	}
}

func TestNth(t *testing.T) {
	tests := []struct {
		in    string
		want  Nth
		match []int
	}{
		{"odd", Nth{2, 1}, []int{1, 3, 5}},
		{"EVEN", Nth{2, 0}, []int{2, 4, 6}},
		{"3", Nth{0, 3}, []int{3}},
		{"n", Nth{1, 0}, []int{1, 2, 3, 4, 5, 6}},
		{"-n+3", Nth{-1, 3}, []int{1, 2, 3}},
		{"+2n - 1", Nth{2, -1}, []int{1, 3, 5}},
		{"3n+2", Nth{3, 2}, []int{2, 5}},
		{"0n+0", Nth{0, 0}, nil},
	}
	for _, tt := range tests {
		n, err := ParseNth(tt.in)
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		if n != tt.want {
			t.Errorf("%q parsed as %+v", tt.in, n)
		}
		var got []int
		for i := 1; i <= 6; i++ {
			if n.Matches(i) {
				got = append(got, i)
			}
		}
		if !cmp.Equal(got, tt.match) {
			t.Errorf("%q matches %v, want %v", tt.in, got, tt.match)
		}
	}
	for _, bad := range []string{"", "x", "2n+", "n++1", "2 n", "1.5n"} {
		if _, err := ParseNth(bad); err == nil {
			t.Errorf("%q parsed", bad)
		}
	}
}

func TestRegistry(t *testing.T) {
	if err := Register(PseudoClass("first-child", nil)); !errors.Is(err, ErrSymbolExists) {
		t.Errorf("duplicate registration: %v", err)
	}
	leaf := PseudoClass("x-leaf", func(el dom.Element) bool {
		return el.ChildElementCount() == 0
	})
	if err := Register(leaf); err != nil && !errors.Is(err, ErrSymbolExists) {
		t.Fatal(err)
	}
	if Lookup("X-LEAF") == nil {
		t.Errorf("lookup is not case-insensitive")
	}
	names := Names()
	for _, want := range []string{"nth-child", "has", "global", "x-leaf"} {
		found := false
		for _, n := range names {
			found = found || n == want
		}
		if !found {
			t.Errorf("%s not in %v", want, names)
		}
	}
	d := load(t, fixture)
	els, err := QueryAll(byID(t, d, "list").Node, ":x-leaf")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(ids(els), " "); got != "l1 l2 s1 s2 l4" {
		t.Errorf("got %q", got)
	}
}

func TestTokenize(t *testing.T) {
	toks, err := Tokenize(`a.b > #c[d~="e"]:f(2n+1)`)
	if err != nil {
		t.Fatal(err)
	}
	var types []TokenType
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	want := []TokenType{
		TIdent, TDelim, TIdent, TSpace, TDelim, TSpace, THash, TLSquare, TIdent,
		TMatch, TString, TRSquare, TColon, TFunction, TDimension, TNumber, TRParen, TEOF,
	}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("token types (-want +got):\n%s", diff)
	}
	if toks[6].Val != "c" || toks[6].Pos != 6 {
		t.Errorf("hash token %+v", toks[6])
	}
}

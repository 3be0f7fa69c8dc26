package dom

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dawm/wire"
)

// shape renders the subtree at n compactly, for comparing trees in tests.
func shape(n Node) string {
	var b strings.Builder
	var rec func(Node)
	rec = func(n Node) {
		switch n.Type() {
		case TextNode:
			b.WriteString(`"` + n.Data() + `"`)
			return
		case CommentNode:
			b.WriteString("<!--" + n.Data() + "-->")
			return
		case DocumentTypeNode:
			b.WriteString("!" + n.NodeName())
			return
		case ElementNode:
			b.WriteString(strings.ToLower(n.NodeName()))
			for _, a := range n.AsElement().AttrList() {
				b.WriteString("[" + a.Name() + "=" + a.Value() + "]")
			}
		default:
			b.WriteString(n.NodeName())
		}
		if !n.HasChildNodes() {
			return
		}
		b.WriteString("(")
		for c := n.FirstChild(); !c.IsNull(); c = c.NextSibling() {
			if c != n.FirstChild() {
				b.WriteString(",")
			}
			rec(c)
		}
		b.WriteString(")")
	}
	rec(n)
	return b.String()
}

// checkTree verifies the link invariants of every node under root.
func checkTree(t *testing.T, root Node) {
	t.Helper()
	var visit func(p Node)
	visit = func(p Node) {
		var prev Node
		count := 0
		for c := p.FirstChild(); !c.IsNull(); c = c.NextSibling() {
			count++
			if c.Parent() != p {
				t.Fatalf("%s: parent is %s, want %s", c, c.Parent(), p)
			}
			if c.PreviousSibling() != prev {
				t.Fatalf("%s: previous sibling is %s, want %s", c, c.PreviousSibling(), prev)
			}
			if c.Type() == AttributeNode {
				t.Fatalf("attribute %s in a sibling chain", c)
			}
			if c.OwnerDocument() != p.OwnerDocument() {
				t.Fatalf("%s: owned by another document", c)
			}
			prev = c
			visit(c)
		}
		if p.LastChild() != prev {
			t.Fatalf("%s: last child is %s, want %s", p, p.LastChild(), prev)
		}
		back := 0
		for c := p.LastChild(); !c.IsNull(); c = c.PreviousSibling() {
			back++
		}
		if back != count {
			t.Fatalf("%s: %d children forward, %d backward", p, count, back)
		}
		if el := p.AsElement(); !el.IsNull() {
			for _, a := range el.AttrList() {
				if a.OwnerElement() != el {
					t.Fatalf("%s: owner is %s, want %s", a, a.OwnerElement(), el)
				}
				if !a.Parent().IsNull() || !a.NextSibling().IsNull() {
					t.Fatalf("%s: attribute has structural links", a)
				}
			}
		}
	}
	visit(root)
}

func mustElement(t *testing.T, d *Document, name string) Element {
	t.Helper()
	el, err := d.CreateElement(name)
	if err != nil {
		t.Fatal(err)
	}
	return el
}

func mustAppend(t *testing.T, p Node, c Node) {
	t.Helper()
	if _, err := p.AppendChild(c); err != nil {
		t.Fatal(err)
	}
}

// listDoc builds <html><body><ul><li>A</li><li class="sel">B</li></ul></body></html>.
func listDoc(t *testing.T) (*Document, Element, Element, Element) {
	t.Helper()
	d := NewDocument(WithContentType("text/html"))
	html := mustElement(t, d, "html")
	body := mustElement(t, d, "body")
	ul := mustElement(t, d, "ul")
	a := mustElement(t, d, "li")
	b := mustElement(t, d, "li")
	if err := b.SetAttribute("class", "sel"); err != nil {
		t.Fatal(err)
	}
	mustAppend(t, d.Node(), html.Node)
	mustAppend(t, html.Node, body.Node)
	mustAppend(t, body.Node, ul.Node)
	mustAppend(t, ul.Node, a.Node)
	mustAppend(t, ul.Node, b.Node)
	mustAppend(t, a.Node, d.CreateTextNode("A"))
	mustAppend(t, b.Node, d.CreateTextNode("B"))
	return d, ul, a, b
}

func TestBuild(t *testing.T) {
	d, ul, a, b := listDoc(t)
	checkTree(t, d.Node())
	want := `#document(html(body(ul(li("A"),li[class=sel]("B")))))`
	if got := shape(d.Node()); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if ul.FirstChild() != a.Node || ul.LastChild() != b.Node {
		t.Errorf("bad edge children")
	}
	if a.TagName() != "LI" || a.LocalName() != "li" || a.NamespaceURI() != HTMLNamespace {
		t.Errorf("tag %q local %q ns %q", a.TagName(), a.LocalName(), a.NamespaceURI())
	}
	if d.Body().IsNull() || d.DocumentElement().LocalName() != "html" {
		t.Errorf("document caches wrong: body %s root %s", d.Body(), d.DocumentElement())
	}
	if !d.Head().IsNull() {
		t.Errorf("unexpected head %s", d.Head())
	}
	if !ul.IsConnected() || !a.Contains(a.FirstChild()) || a.Contains(b.Node) {
		t.Errorf("connectivity wrong")
	}
}

func TestInsertBeforeFailures(t *testing.T) {
	tests := []struct {
		name string
		run  func(d *Document, ul, a, b Element) error
		want error
	}{
		{
			name: "ref of another parent",
			run: func(d *Document, ul, a, b Element) error {
				_, err := a.InsertBefore(d.CreateTextNode("x"), b.Node)
				return err
			},
			want: ErrHierarchy,
		},
		{
			name: "ancestor into descendant",
			run: func(d *Document, ul, a, b Element) error {
				_, err := a.AppendChild(ul.Node)
				return err
			},
			want: ErrHierarchy,
		},
		{
			name: "self into self",
			run: func(d *Document, ul, a, b Element) error {
				_, err := a.AppendChild(a.Node)
				return err
			},
			want: ErrHierarchy,
		},
		{
			name: "child of text",
			run: func(d *Document, ul, a, b Element) error {
				_, err := a.FirstChild().AppendChild(d.CreateTextNode("x"))
				return err
			},
			want: ErrUnsupported,
		},
		{
			name: "text into document",
			run: func(d *Document, ul, a, b Element) error {
				_, err := d.Node().AppendChild(d.CreateTextNode("x"))
				return err
			},
			want: ErrHierarchy,
		},
		{
			name: "second document element",
			run: func(d *Document, ul, a, b Element) error {
				_, err := d.Node().AppendChild(mustElement(t, d, "p").Node)
				return err
			},
			want: ErrHierarchy,
		},
		{
			name: "doctype after element",
			run: func(d *Document, ul, a, b Element) error {
				_, err := d.Node().AppendChild(d.CreateDocumentType("html", "", ""))
				return err
			},
			want: ErrHierarchy,
		},
		{
			name: "doctype into element",
			run: func(d *Document, ul, a, b Element) error {
				_, err := ul.AppendChild(d.CreateDocumentType("html", "", ""))
				return err
			},
			want: ErrHierarchy,
		},
		{
			name: "attribute as child",
			run: func(d *Document, ul, a, b Element) error {
				attr, _ := d.CreateAttribute("x")
				_, err := ul.AppendChild(attr.Node)
				return err
			},
			want: ErrHierarchy,
		},
		{
			name: "foreign node",
			run: func(d *Document, ul, a, b Element) error {
				other := NewDocument()
				_, err := ul.AppendChild(other.CreateTextNode("x"))
				return err
			},
			want: ErrWrongDocument,
		},
		{
			name: "fragment with two elements into document",
			run: func(d *Document, ul, a, b Element) error {
				nd := NewDocument(WithContentType("text/html"))
				f := nd.CreateDocumentFragment()
				mustAppend(t, f, mustElement(t, nd, "p").Node)
				mustAppend(t, f, mustElement(t, nd, "p").Node)
				_, err := nd.Node().AppendChild(f)
				if !f.HasChildNodes() || f.ChildNodes().Len() != 2 {
					t.Errorf("fragment changed by failed insert")
				}
				return err
			},
			want: ErrHierarchy,
		},
		{
			name: "remove non-child",
			run: func(d *Document, ul, a, b Element) error {
				_, err := a.RemoveChild(b.Node)
				return err
			},
			want: ErrHierarchy,
		},
		{
			name: "replace non-child",
			run: func(d *Document, ul, a, b Element) error {
				_, err := a.ReplaceChild(d.CreateTextNode("x"), b.Node)
				return err
			},
			want: ErrHierarchy,
		},
		{
			name: "append mixed with ancestor",
			run: func(d *Document, ul, a, b Element) error {
				return a.Append(d.CreateTextNode("x"), ul.Node)
			},
			want: ErrHierarchy,
		},
		{
			name: "remove attribute node not owned",
			run: func(d *Document, ul, a, b Element) error {
				_, err := a.RemoveAttributeNode(b.GetAttributeNode("class"))
				return err
			},
			want: ErrAttributeNotFound,
		},
		{
			name: "remove named item",
			run: func(d *Document, ul, a, b Element) error {
				_, err := a.Attributes().RemoveNamedItem("nope")
				return err
			},
			want: ErrAttributeNotFound,
		},
		{
			name: "remove named item ns",
			run: func(d *Document, ul, a, b Element) error {
				_, err := b.Attributes().RemoveNamedItemNS(XLinkNamespace, "class")
				return err
			},
			want: ErrAttributeNamespaceNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ul, a, b := listDoc(t)
			before := shape(d.Node())
			err := tt.run(d, ul, a, b)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if after := shape(d.Node()); after != before {
				t.Errorf("tree changed by failed call:\n before %s\n after  %s", before, after)
			}
			checkTree(t, d.Node())
		})
	}
}

func TestFragmentInsert(t *testing.T) {
	d, ul, a, b := listDoc(t)
	f := d.CreateDocumentFragment()
	x := mustElement(t, d, "li")
	y := mustElement(t, d, "li")
	mustAppend(t, f, x.Node)
	mustAppend(t, f, y.Node)
	if _, err := ul.InsertBefore(f, b.Node); err != nil {
		t.Fatal(err)
	}
	got := ul.Children().Slice()
	want := []Element{a, x, y, b}
	if !cmp.Equal(got, want, cmp.Comparer(func(p, q Element) bool { return p == q })) {
		t.Errorf("children %v, want %v", got, want)
	}
	if f.HasChildNodes() || !f.Parent().IsNull() {
		t.Errorf("fragment not emptied")
	}
	checkTree(t, d.Node())
}

func TestMoveAndReplace(t *testing.T) {
	d, ul, a, b := listDoc(t)
	// implicit move
	if _, err := ul.InsertBefore(b.Node, a.Node); err != nil {
		t.Fatal(err)
	}
	if ul.FirstElementChild() != b || ul.LastElementChild() != a {
		t.Errorf("move failed: %s", shape(ul.Node))
	}
	// no-op
	if _, err := ul.InsertBefore(a.Node, a.Node); err != nil {
		t.Fatal(err)
	}
	c := mustElement(t, d, "li")
	old, err := ul.ReplaceChild(c.Node, b.Node)
	if err != nil {
		t.Fatal(err)
	}
	if old != b.Node || !b.Parent().IsNull() || ul.FirstChild() != c.Node {
		t.Errorf("replace failed: %s", shape(ul.Node))
	}
	// replace with the following sibling
	if _, err := ul.ReplaceChild(a.Node, c.Node); err != nil {
		t.Fatal(err)
	}
	if shape(ul.Node) != `ul(li("A"))` {
		t.Errorf("got %s", shape(ul.Node))
	}
	removed, err := ul.RemoveChild(a.Node)
	if err != nil {
		t.Fatal(err)
	}
	if removed != a.Node || ul.HasChildNodes() || !a.PreviousSibling().IsNull() {
		t.Errorf("remove failed")
	}
	// detached nodes are reusable
	mustAppend(t, ul.Node, a.Node)
	checkTree(t, d.Node())
}

func TestChildNodeHelpers(t *testing.T) {
	d, ul, a, b := listDoc(t)
	x := d.CreateTextNode("x")
	y := d.CreateTextNode("y")
	if err := b.Before(x, y); err != nil {
		t.Fatal(err)
	}
	if err := a.After(b.Node); err != nil {
		t.Fatal(err)
	}
	if got, want := shape(ul.Node), `ul(li("A"),li[class=sel]("B"),"x","y")`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if err := ul.Prepend(y); err != nil {
		t.Fatal(err)
	}
	if err := x.ReplaceWith(d.CreateComment("c")); err != nil {
		t.Fatal(err)
	}
	if got, want := shape(ul.Node), `ul("y",li("A"),li[class=sel]("B"),<!--c-->)`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if err := ul.ReplaceChildren(b.Node, a.Node); err != nil {
		t.Fatal(err)
	}
	if got, want := shape(ul.Node), `ul(li[class=sel]("B"),li("A"))`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	checkTree(t, d.Node())
}

func TestDocumentReplaceChildren(t *testing.T) {
	d := NewHTMLDocument("t")
	html := mustElement(t, d, "html")
	if err := d.Node().ReplaceChildren(d.CreateDocumentType("html", "", ""), html.Node); !errors.Is(err, ErrHierarchy) {
		t.Fatalf("doctype with other nodes: got %v", err)
	}
	if err := d.Node().ReplaceChildren(html.Node); err != nil {
		t.Fatal(err)
	}
	if d.DocumentElement() != html || !d.Doctype().IsNull() || !d.Body().IsNull() {
		t.Errorf("caches not refreshed")
	}
}

func TestRandomMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	d := NewDocument(WithContentType("application/xml"))
	root, _ := d.CreateElement("root")
	mustAppend(t, d.Node(), root.Node)
	nodes := []Node{root.Node}
	for i := 0; i < 2000; i++ {
		n := nodes[rng.Intn(len(nodes))]
		switch rng.Intn(6) {
		case 0, 1:
			el, _ := d.CreateElement("e")
			nodes = append(nodes, el.Node)
			_, _ = n.AppendChild(el.Node)
		case 2:
			_, _ = n.AppendChild(d.CreateTextNode("t"))
		case 3:
			m := nodes[rng.Intn(len(nodes))]
			_, _ = n.InsertBefore(m, n.FirstChild())
		case 4:
			if c := n.LastChild(); !c.IsNull() {
				_, _ = n.RemoveChild(c)
			}
		case 5:
			m := nodes[rng.Intn(len(nodes))]
			if c := n.FirstChild(); !c.IsNull() {
				_, _ = n.ReplaceChild(m, c)
			}
		}
		if i%100 == 0 {
			checkTree(t, d.Node())
			for _, m := range nodes {
				checkTree(t, m.GetRootNode())
			}
		}
	}
	checkTree(t, d.Node())
}

func TestCloneNode(t *testing.T) {
	_, _, _, b := listDoc(t)
	c1 := b.CloneNode(false)
	c2 := b.CloneNode(false)
	if c1 == c2 || c1 == b.Node || c2 == b.Node {
		t.Fatalf("clones share identity")
	}
	if c1.HasChildNodes() || !c1.Parent().IsNull() {
		t.Errorf("shallow clone has links")
	}
	if shape(c1) != shape(c2) || shape(c1) != "li[class=sel]" {
		t.Errorf("clone shapes %s %s", shape(c1), shape(c2))
	}
	if c1.AsElement().GetAttributeNode("class") == b.GetAttributeNode("class") {
		t.Errorf("clone shares attribute nodes")
	}
	deep := b.CloneNode(true)
	if !deep.IsEqualNode(b.Node) || deep.IsSameNode(b.Node) {
		t.Errorf("deep clone not equal")
	}
	_ = c1.AsElement().SetAttribute("class", "other")
	if b.ClassName() != "sel" {
		t.Errorf("clone mutation leaked into source")
	}
}

func TestCloneDocument(t *testing.T) {
	d, _, _, _ := listDoc(t)
	c := d.Node().CloneNode(true)
	if c.OwnerDocument() == d {
		t.Fatalf("document clone shares the arena")
	}
	if !c.IsEqualNode(d.Node()) {
		t.Errorf("document clone differs:\n%s\n%s", shape(c), shape(d.Node()))
	}
	if c.OwnerDocument().Kind() != HTMLDocument {
		t.Errorf("kind %s", c.OwnerDocument().Kind())
	}
}

func TestImportNode(t *testing.T) {
	_, ul, _, _ := listDoc(t)
	other := NewDocument(WithContentType("text/html"))
	n, err := other.ImportNode(ul.Node, true)
	if err != nil {
		t.Fatal(err)
	}
	if n.OwnerDocument() != other || !n.IsEqualNode(ul.Node) {
		t.Errorf("import failed: %s", shape(n))
	}
	if _, err := other.ImportNode(ul.OwnerDocument().Node(), true); !errors.Is(err, ErrUnsupported) {
		t.Errorf("importing a document: got %v", err)
	}
}

func TestIsEqualNode(t *testing.T) {
	d := NewDocument()
	mk := func(attrs ...string) Element {
		el, _ := d.CreateElement("p")
		for i := 0; i+1 < len(attrs); i += 2 {
			_ = el.SetAttribute(attrs[i], attrs[i+1])
		}
		return el
	}
	tests := []struct {
		name string
		a, b Element
		want bool
	}{
		{"same attrs", mk("a", "1", "b", "2"), mk("a", "1", "b", "2"), true},
		{"attr order", mk("a", "1", "b", "2"), mk("b", "2", "a", "1"), false},
		{"attr value", mk("a", "1"), mk("a", "2"), false},
		{"attr count", mk("a", "1"), mk(), false},
	}
	for _, tt := range tests {
		if got := tt.a.IsEqualNode(tt.b.Node); got != tt.want {
			t.Errorf("%s: got %v", tt.name, got)
		}
	}
	x, y := mk(), mk()
	mustAppend(t, x.Node, d.CreateTextNode("a"))
	mustAppend(t, y.Node, d.CreateTextNode("b"))
	if x.IsEqualNode(y.Node) {
		t.Errorf("children compared equal")
	}
}

func TestLiveChildren(t *testing.T) {
	d, ul, _, _ := listDoc(t)
	kids := ul.Children()
	nodes := ul.ChildNodes()
	if kids.Len() != 2 {
		t.Fatalf("len %d", kids.Len())
	}
	c := mustElement(t, d, "li")
	mustAppend(t, ul.Node, c.Node)
	if kids.Len() != 3 || kids.Item(2) != c {
		t.Errorf("children not live: %v", kids.Slice())
	}
	mustAppend(t, ul.Node, d.CreateTextNode("t"))
	if nodes.Len() != 4 || kids.Len() != 3 {
		t.Errorf("childNodes %d children %d", nodes.Len(), kids.Len())
	}
	c.Remove()
	if kids.Len() != 2 || !kids.Item(2).IsNull() {
		t.Errorf("removal not reflected")
	}
}

func TestCollectionWriteThrough(t *testing.T) {
	d, ul, a, b := listDoc(t)
	x := mustElement(t, d, "li")
	if err := ul.Children().Set(0, x); err != nil {
		t.Fatal(err)
	}
	if ul.FirstChild() != x.Node || !a.Parent().IsNull() {
		t.Errorf("write-through failed: %s", shape(ul.Node))
	}
	y := d.CreateTextNode("y")
	if err := ul.ChildNodes().Set(2, y); err != nil {
		t.Fatal(err)
	}
	if ul.LastChild() != y {
		t.Errorf("append through childNodes failed")
	}
	if err := ul.ChildNodes().Set(9, y); !errors.Is(err, ErrIndexSize) {
		t.Errorf("got %v", err)
	}
	attr, _ := d.CreateAttribute("title")
	attr.SetValue("t")
	if err := b.Attributes().Set(0, attr); err != nil {
		t.Fatal(err)
	}
	if b.HasAttribute("class") || b.Attribute("title") != "t" {
		t.Errorf("attribute write-through failed: %v", b.GetAttributeNames())
	}
	static := NewNodeList(a.Node)
	if err := static.Append(b.Node); err != nil || static.Len() != 2 {
		t.Errorf("static append: %v", err)
	}
	if err := ul.ChildNodes().Append(a.Node); !errors.Is(err, ErrUnsupported) {
		t.Errorf("append to live list: %v", err)
	}
}

func TestNamedItem(t *testing.T) {
	d, ul, a, b := listDoc(t)
	_ = a.SetAttribute("name", "first")
	_ = b.SetID("second")
	c := mustElement(t, d, "li")
	_ = c.SetAttribute("name", "second")
	mustAppend(t, ul.Node, c.Node)
	kids := ul.Children()
	if kids.NamedItem("first") != a || kids.NamedItem("second") != b || !kids.NamedItem("").IsNull() {
		t.Errorf("named item lookup wrong")
	}
}

func TestGetElementsBy(t *testing.T) {
	d, ul, a, b := listDoc(t)
	lis := d.Node().GetElementsByTagName("LI")
	if lis.Len() != 2 || lis.Item(0) != a || lis.Item(1) != b {
		t.Errorf("by tag: %v", lis.Slice())
	}
	sel := d.Node().GetElementsByClassName("sel")
	if sel.Len() != 1 || sel.Item(0) != b {
		t.Errorf("by class: %v", sel.Slice())
	}
	_ = a.ClassList().Add("sel", "x")
	if sel.Len() != 2 || d.Node().GetElementsByClassName("x sel").Len() != 1 {
		t.Errorf("class collection not live")
	}
	if n := ul.GetElementsByTagNameNS(HTMLNamespace, "*").Len(); n != 2 {
		t.Errorf("by ns: %d", n)
	}
	if !d.GetElementByID("nope").IsNull() {
		t.Errorf("unexpected id match")
	}
	_ = b.SetID("b")
	if d.GetElementByID("b") != b {
		t.Errorf("id lookup failed")
	}
}

func TestQuirksClassMatch(t *testing.T) {
	d := NewDocument(WithContentType("text/html"), WithQuirksMode(wire.Quirks))
	p := mustElement(t, d, "p")
	_ = p.SetClassName("Foo")
	mustAppend(t, d.Node(), p.Node)
	if d.Node().GetElementsByClassName("foo").Len() != 1 {
		t.Errorf("quirks mode class match should ignore case")
	}
	if d.CompatMode() != "BackCompat" {
		t.Errorf("compat mode %s", d.CompatMode())
	}
}

func TestDataset(t *testing.T) {
	d := NewDocument(WithContentType("text/html"))
	el := mustElement(t, d, "div")
	ds := el.Dataset()
	if err := el.SetAttribute("data-x", "1"); err != nil {
		t.Fatal(err)
	}
	if v, ok := ds.Get("x"); !ok || v != "1" {
		t.Errorf("x = %q %v", v, ok)
	}
	el.RemoveAttribute("data-x")
	if ds.Has("x") {
		t.Errorf("x still present")
	}
	if err := ds.Set("fooBar", "2"); err != nil {
		t.Fatal(err)
	}
	if el.Attribute("data-foo-bar") != "2" {
		t.Errorf("attribute not mirrored: %v", el.GetAttributeNames())
	}
	if diff := cmp.Diff([]string{"fooBar"}, ds.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if err := ds.Set("foo-bar", "3"); !errors.Is(err, ErrSyntax) {
		t.Errorf("bad key: %v", err)
	}
	// the attribute form of a key is not itself a key.
	if ds.Has("foo-bar") {
		t.Errorf("foo-bar reported present")
	}
	if _, ok := ds.Get("foo-bar"); ok {
		t.Errorf("foo-bar readable")
	}
	if ds.Delete("foo-bar") || !el.HasAttribute("data-foo-bar") {
		t.Errorf("foo-bar deleted data-foo-bar")
	}
	if !ds.Delete("fooBar") || el.HasAttribute("data-foo-bar") || ds.Len() != 0 {
		t.Errorf("delete not mirrored")
	}

	mem := NewStringMap()
	_ = mem.Set("a", "1")
	_ = mem.Set("b", "2")
	mem.Delete("a")
	if diff := cmp.Diff([]string{"b"}, mem.Keys()); diff != "" {
		t.Errorf("detached keys (-want +got):\n%s", diff)
	}
}

func TestTokenList(t *testing.T) {
	d := NewDocument(WithContentType("text/html"))
	el := mustElement(t, d, "div")
	cl := el.ClassList()
	if err := cl.Remove("x"); err != nil || el.HasAttribute("class") {
		t.Errorf("removing from an absent attribute created it: %v", err)
	}
	_ = el.SetClassName("  a b a  c ")
	if diff := cmp.Diff([]string{"a", "b", "c"}, cl.Tokens()); diff != "" {
		t.Errorf("tokens (-want +got):\n%s", diff)
	}
	if err := cl.Add("d", "a"); err != nil {
		t.Fatal(err)
	}
	if el.ClassName() != "a b c d" {
		t.Errorf("class %q", el.ClassName())
	}
	on, err := cl.Toggle("b")
	if err != nil || on || cl.Contains("b") {
		t.Errorf("toggle off: %v %v", on, err)
	}
	on, _ = cl.Toggle("b", false)
	if on || cl.Contains("b") {
		t.Errorf("forced toggle added b")
	}
	ok, err := cl.Replace("a", "c")
	if err != nil || !ok || el.ClassName() != "c d" {
		t.Errorf("replace: %v %v %q", ok, err, el.ClassName())
	}
	if err := cl.Add(""); !errors.Is(err, ErrSyntax) {
		t.Errorf("empty token: %v", err)
	}
	if err := cl.Add("a b"); !errors.Is(err, ErrInvalidCharacter) {
		t.Errorf("whitespace token: %v", err)
	}
	if cl.Len() != 2 || cl.Item(1) != "d" || cl.Item(5) != "" {
		t.Errorf("indexing wrong: %v", cl.Tokens())
	}
}

func TestAttributes(t *testing.T) {
	d := NewDocument(WithContentType("text/html"))
	el := mustElement(t, d, "DIV")
	if el.LocalName() != "div" || el.TagName() != "DIV" {
		t.Errorf("name folding: %q %q", el.LocalName(), el.TagName())
	}
	_ = el.SetAttribute("Title", "x")
	if v, ok := el.GetAttribute("TITLE"); !ok || v != "x" {
		t.Errorf("case-insensitive attribute lookup failed")
	}
	if err := el.SetAttribute("a b", "x"); !errors.Is(err, ErrInvalidCharacter) {
		t.Errorf("bad name: %v", err)
	}
	if err := el.SetAttributeNS("", "x:y", "1"); !errors.Is(err, ErrNamespace) {
		t.Errorf("prefix without namespace: %v", err)
	}
	if err := el.SetAttributeNS(XLinkNamespace, "xlink:href", "#a"); err != nil {
		t.Fatal(err)
	}
	if v, _ := el.GetAttributeNS(XLinkNamespace, "href"); v != "#a" {
		t.Errorf("ns attribute %q", v)
	}
	present, _ := el.ToggleAttribute("hidden")
	if !present || !el.HasAttribute("hidden") {
		t.Errorf("toggle on failed")
	}
	present, _ = el.ToggleAttribute("hidden")
	if present || el.HasAttribute("hidden") {
		t.Errorf("toggle off failed")
	}
	if diff := cmp.Diff([]string{"title", "xlink:href"}, el.GetAttributeNames()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}

	other := mustElement(t, d, "p")
	attr := el.GetAttributeNode("title")
	if _, err := other.SetAttributeNode(attr); !errors.Is(err, ErrInUseAttribute) {
		t.Errorf("in-use attribute: %v", err)
	}
	if _, err := el.RemoveAttributeNode(attr); err != nil {
		t.Fatal(err)
	}
	if !attr.OwnerElement().IsNull() {
		t.Errorf("removed attribute still owned")
	}
	old, err := other.SetAttributeNode(attr)
	if err != nil || !old.IsNull() || other.Attribute("title") != "x" {
		t.Errorf("reattach: %v", err)
	}
	m := other.Attributes()
	if m.Len() != 1 || m.GetNamedItem("TITLE") != attr || m.Item(0) != attr {
		t.Errorf("named node map wrong")
	}
}

func TestCreateCDATAInHTML(t *testing.T) {
	if _, err := NewDocument(WithContentType("text/html")).CreateCDATASection("x"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("got %v", err)
	}
	n, err := NewDocument(WithContentType("application/xml")).CreateCDATASection("x")
	if err != nil || n.NodeName() != "#cdata-section" {
		t.Errorf("xml cdata: %v", err)
	}
}

func TestNamespaceLookup(t *testing.T) {
	d := NewDocument(WithContentType("application/xml"))
	root, _ := d.CreateElementNS("urn:a", "a:root")
	_ = root.SetAttributeNS(XMLNSNamespace, "xmlns:a", "urn:a")
	_ = root.SetAttributeNS(XMLNSNamespace, "xmlns", "urn:default")
	child, _ := d.CreateElementNS("urn:default", "child")
	mustAppend(t, d.Node(), root.Node)
	mustAppend(t, root.Node, child.Node)
	text := d.CreateTextNode("t")
	mustAppend(t, child.Node, text)

	if ns, ok := text.LookupNamespaceURI("a"); !ok || ns != "urn:a" {
		t.Errorf("lookup a: %q %v", ns, ok)
	}
	if ns, _ := child.LookupNamespaceURI(""); ns != "urn:default" {
		t.Errorf("default ns %q", ns)
	}
	if p, ok := child.LookupPrefix("urn:a"); !ok || p != "a" {
		t.Errorf("prefix %q %v", p, ok)
	}
	if !d.Node().IsDefaultNamespace("urn:default") {
		t.Errorf("document default namespace")
	}
	if ns, _ := text.LookupNamespaceURI("xml"); ns != XMLNamespace {
		t.Errorf("xml prefix %q", ns)
	}
	if _, ok := text.LookupNamespaceURI("zz"); ok {
		t.Errorf("unbound prefix resolved")
	}
}

func TestNormalizeAndText(t *testing.T) {
	d := NewDocument()
	p, _ := d.CreateElement("p")
	for _, s := range []string{"a", "", "b"} {
		mustAppend(t, p.Node, d.CreateTextNode(s))
	}
	mustAppend(t, p.Node, d.CreateComment("c"))
	mustAppend(t, p.Node, d.CreateTextNode(""))
	p.Normalize()
	if got := shape(p.Node); got != `p("ab",<!--c-->)` {
		t.Errorf("got %s", got)
	}
	if p.TextContent() != "ab" {
		t.Errorf("text %q", p.TextContent())
	}
	tail, err := p.FirstChild().SplitText(1)
	if err != nil || tail.Data() != "b" || p.FirstChild().Data() != "a" || tail.WholeText() != "ab" {
		t.Errorf("split: %v", err)
	}
	if _, err := tail.SubstringData(5, 1); !errors.Is(err, ErrIndexSize) {
		t.Errorf("substring: %v", err)
	}
	p.SetTextContent("z")
	if got := shape(p.Node); got != `p("z")` {
		t.Errorf("got %s", got)
	}
}

func TestTitle(t *testing.T) {
	d := NewHTMLDocument("  Hello \n world ")
	if d.Title() != "Hello world" {
		t.Errorf("title %q", d.Title())
	}
	if d.Head().IsNull() || d.Body().IsNull() || d.Doctype().NodeName() != "html" {
		t.Errorf("skeleton wrong: %s", shape(d.Node()))
	}
	checkTree(t, d.Node())
}

func TestNoSelectorEngine(t *testing.T) {
	_, ul, _, _ := listDoc(t)
	if engine != nil {
		t.Skip("selector engine registered")
	}
	if _, err := ul.Matches("ul"); !errors.Is(err, ErrNoSelectorEngine) {
		t.Errorf("got %v", err)
	}
	if ul.QuerySelectorAll("li").Len() != 0 {
		t.Errorf("lookup without engine matched")
	}
}

// Package htmldoc is a server-side host document for tnode, built on the
// golang.org/x/net/html node tree.
//
// Elements are small handles around *html.Node. Two handles are equal
// exactly when they wrap the same node, which is what the tree's claim
// table relies on.
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pthm/tnode/lib/dom"
)

// Document is an HTML document tree.
type Document struct {
	root *html.Node
	body *html.Node
}

// New returns an empty document with <html>, <head> and <body>.
func New() *Document {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := newElement("html")
	root.AppendChild(htmlEl)
	htmlEl.AppendChild(newElement("head"))
	body := newElement("body")
	htmlEl.AppendChild(body)

	return &Document{root: root, body: body}
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse: %w", err)
	}
	d := &Document{root: root}
	d.body = find(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	return d, nil
}

// ParseString reads an HTML document from s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) dom.Element {
	return Element{n: newElement(tag)}
}

// Body returns the <body> element.
func (d *Document) Body() Element {
	return Element{n: d.body}
}

// GetElementByID finds the first element with the given id attribute.
func (d *Document) GetElementByID(id string) (Element, bool) {
	n := find(d.root, func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return n.Type == html.ElementNode && ok && v == id
	})
	if n == nil {
		return Element{}, false
	}
	return Element{n: n}, true
}

// Render writes the whole document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Element is a handle to an element of a Document.
type Element struct {
	n *html.Node
}

// Wrap returns a handle for an existing node.
func Wrap(n *html.Node) Element {
	return Element{n: n}
}

// Node returns the wrapped node.
func (e Element) Node() *html.Node {
	return e.n
}

// Tag returns the element's tag name.
func (e Element) Tag() string {
	return e.n.Data
}

// ID returns the id attribute.
func (e Element) ID() string {
	v, _ := attr(e.n, "id")
	return v
}

// SetID sets the id attribute.
func (e Element) SetID(id string) {
	e.SetAttr("id", id)
}

// Attr returns the value of an attribute.
func (e Element) Attr(key string) (string, bool) {
	return attr(e.n, key)
}

// SetAttr sets an attribute, replacing an existing value.
func (e Element) SetAttr(key, value string) {
	for i := range e.n.Attr {
		if e.n.Attr[i].Namespace == "" && e.n.Attr[i].Key == key {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: key, Val: value})
}

// Parent returns the parent element, or nil when detached.
func (e Element) Parent() dom.Element {
	if e.n.Parent == nil {
		return nil
	}
	return Element{n: e.n.Parent}
}

// AppendChild moves child to the end of e's children.
func (e Element) AppendChild(child dom.Element) {
	c := unwrap(child)
	detach(c)
	e.n.AppendChild(c)
}

// AppendText appends a text node.
func (e Element) AppendText(text string) {
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// InsertBefore moves child directly before ref. A nil ref appends.
func (e Element) InsertBefore(child, ref dom.Element) {
	if ref == nil {
		e.AppendChild(child)
		return
	}
	c, r := unwrap(child), unwrap(ref)
	if c == r {
		return
	}
	detach(c)
	e.n.InsertBefore(c, r)
}

// Detach removes e from its parent.
func (e Element) Detach() {
	detach(e.n)
}

// Clear removes all of e's children, text included.
func (e Element) Clear() {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
}

// Children returns the element children of e in document order.
func (e Element) Children() []dom.Element {
	var out []dom.Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, Element{n: c})
		}
	}
	return out
}

// Render writes e and its content.
func (e Element) Render(w io.Writer) error {
	return html.Render(w, e.n)
}

// String renders e, returning an empty string on error.
func (e Element) String() string {
	var sb strings.Builder
	if err := e.Render(&sb); err != nil {
		return ""
	}
	return sb.String()
}

func newElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

func unwrap(e dom.Element) *html.Node {
	el, ok := e.(Element)
	if !ok {
		panic(fmt.Sprintf("htmldoc: foreign element %T", e))
	}
	return el.n
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

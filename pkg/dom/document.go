package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/starfield"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// NewPage returns the default star page: a dark background, the twinkle
// stylesheet and an empty container with the given id.
func NewPage(title, containerID string) (*Document, error) {
	if err := errors.ValidateElementID(containerID); err != nil {
		return nil, err
	}

	page, err := assets.ReadFile("assets/page.html")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read page template")
	}
	doc, err := Parse(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	if title != "" {
		if t := findFirst(doc.root, atom.Title); t != nil {
			setText(t, title)
		}
	}
	if s := findFirst(doc.root, atom.Style); s != nil {
		setText(s, "\n"+string(Stylesheet()))
	}
	if containerID != starfield.DefaultContainerID {
		if n := findByID(doc.root, starfield.DefaultContainerID); n != nil {
			setAttr(n, "id", containerID)
		}
	}
	return doc, nil
}

// ElementByID implements starfield.Locator.
func (d *Document) ElementByID(id string) (starfield.Container, bool) {
	n, ok := d.Node(id)
	if !ok {
		return nil, false
	}
	return n, true
}

// Node returns the element with the given id.
func (d *Document) Node(id string) (*Node, bool) {
	n := findByID(d.root, id)
	if n == nil {
		return nil, false
	}
	return &Node{n: n}, true
}

// Title returns the text of the <title> element.
func (d *Document) Title() string {
	t := findFirst(d.root, atom.Title)
	if t == nil || t.FirstChild == nil {
		return ""
	}
	return t.FirstChild.Data
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Bytes renders the document into a byte slice.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Pretty renders the document with one element per indented line.
func (d *Document) Pretty() ([]byte, error) {
	raw, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	return gohtml.FormatBytes(raw), nil
}

// Node is an element that accepts star children.
type Node struct {
	n *html.Node
}

// AppendChild implements starfield.Container by adding a
// <div class="..." style="..."> after the node's last child.
func (n *Node) AppendChild(el starfield.Element) {
	n.n.AppendChild(&html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr: []html.Attribute{
			{Key: "class", Val: el.Class},
			{Key: "style", Val: el.StyleAttr()},
		},
	})
}

// ID returns the node's id attribute.
func (n *Node) ID() string {
	return attr(n.n, "id")
}

// Stars counts direct children carrying the star class.
func (n *Node) Stars() int {
	count := 0
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && hasClass(c, starfield.ClassName) {
			count++
		}
	}
	return count
}

// StarStyles returns the inline style of every star child, in document order.
func (n *Node) StarStyles() []string {
	var styles []string
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && hasClass(c, starfield.ClassName) {
			styles = append(styles, attr(c, "style"))
		}
	}
	return styles
}

// Clear removes every child. The generator never calls it; hosts that
// regenerate a page in place must clear the container themselves.
func (n *Node) Clear() {
	for c := n.n.FirstChild; c != nil; {
		next := c.NextSibling
		n.n.RemoveChild(c)
		c = next
	}
}

var _ starfield.Container = (*Node)(nil)
var _ starfield.Locator = (*Document)(nil)

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

//go:build js && wasm

// Package browser adapts the live browser DOM to the starfield container
// interfaces.
//
// It is built only for GOOS=js GOARCH=wasm:
//
//	doc := browser.Document()
//	browser.OnReady(doc, func() {
//		starfield.InitializeByID(doc, "stars", starfield.DefaultCount, nil)
//	})
package browser

import (
	"syscall/js"

	"github.com/matzehuels/starfield/pkg/starfield"
)

// Doc wraps a JavaScript document object.
type Doc struct {
	v js.Value
}

// Document returns the global document.
func Document() *Doc {
	return &Doc{v: js.Global().Get("document")}
}

// ElementByID looks up an element with getElementById.
func (d *Doc) ElementByID(id string) (starfield.Container, bool) {
	el := d.v.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, false
	}
	return &Node{doc: d.v, v: el}, true
}

// Ready reports whether the document has finished parsing.
func (d *Doc) Ready() bool {
	return d.v.Get("readyState").String() != "loading"
}

// Node is a live DOM element.
type Node struct {
	doc js.Value
	v   js.Value
}

// AppendChild creates a div carrying el's class and inline style and appends
// it as the node's last child.
func (n *Node) AppendChild(el starfield.Element) {
	div := n.doc.Call("createElement", "div")
	div.Get("classList").Call("add", el.Class)
	style := div.Get("style")
	for _, p := range el.Style {
		style.Call("setProperty", p.Name, p.Value)
	}
	n.v.Call("appendChild", div)
}

// OnReady runs fn once the page structure is ready: immediately when the
// document is already parsed, otherwise on DOMContentLoaded.
func OnReady(d *Doc, fn func()) {
	if d.Ready() {
		fn()
		return
	}
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	d.v.Call("addEventListener", "DOMContentLoaded", cb, map[string]any{"once": true})
}

var (
	_ starfield.Locator   = (*Doc)(nil)
	_ starfield.Container = (*Node)(nil)
)

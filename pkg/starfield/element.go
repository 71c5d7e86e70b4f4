package starfield

import "strings"

// Property is one inline style declaration.
type Property struct {
	Name  string
	Value string
}

// Element is a generated, not yet attached, page element.
type Element struct {
	Class string
	Style []Property
}

// Get returns the value of the named style property.
func (e Element) Get(name string) (string, bool) {
	for _, p := range e.Style {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// StyleAttr renders the style properties as an inline style attribute value,
// e.g. "width: 2px; height: 2px".
func (e Element) StyleAttr() string {
	parts := make([]string, len(e.Style))
	for i, p := range e.Style {
		parts[i] = p.Name + ": " + p.Value
	}
	return strings.Join(parts, "; ")
}

// Container accepts generated elements as children.
// AppendChild must add el after every existing child.
type Container interface {
	AppendChild(el Element)
}

// Locator finds containers by element id, the way a page exposes getElementById.
type Locator interface {
	ElementByID(id string) (Container, bool)
}

// ContainerFunc adapts a function to the Container interface.
type ContainerFunc func(Element)

// AppendChild calls f(el).
func (f ContainerFunc) AppendChild(el Element) { f(el) }

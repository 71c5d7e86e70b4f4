package sink

import (
	"github.com/matzehuels/starfield/pkg/dom"
	"github.com/matzehuels/starfield/pkg/starfield"
)

// HTMLOption configures HTML rendering via [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title       string
	containerID string
	pretty      bool
}

// WithTitle sets the page title.
func WithTitle(title string) HTMLOption { return func(r *htmlRenderer) { r.title = title } }

// WithContainerID sets the id of the star container. Default "stars".
func WithContainerID(id string) HTMLOption {
	return func(r *htmlRenderer) {
		if id != "" {
			r.containerID = id
		}
	}
}

// WithPretty indents the output, one element per line.
func WithPretty() HTMLOption { return func(r *htmlRenderer) { r.pretty = true } }

// RenderHTML renders a standalone page with every star appended, in order,
// to the container.
func RenderHTML(stars []starfield.Star, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{title: "Stars", containerID: starfield.DefaultContainerID}
	for _, opt := range opts {
		opt(&r)
	}

	doc, err := dom.NewPage(r.title, r.containerID)
	if err != nil {
		return nil, err
	}
	c, ok := doc.ElementByID(r.containerID)
	if !ok {
		return nil, &starfield.MissingTargetError{ID: r.containerID}
	}
	for _, s := range stars {
		c.AppendChild(s.Element())
	}

	if r.pretty {
		return doc.Pretty()
	}
	return doc.Bytes()
}

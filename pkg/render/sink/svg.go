package sink

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/matzehuels/starfield/pkg/starfield"
)

const (
	// DefaultWidth is the default frame width in pixels for SVG and PNG.
	DefaultWidth = 1280

	// DefaultHeight is the default frame height in pixels for SVG and PNG.
	DefaultHeight = 720

	// DefaultBackground is the night-sky fill behind the stars.
	DefaultBackground = "#090a0f"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height int
	background    string
	animate       bool
}

// WithSize sets the SVG frame size in pixels.
func WithSize(w, h int) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 && h > 0 {
			r.width, r.height = w, h
		}
	}
}

// WithSVGBackground sets the background fill. An empty string draws none.
func WithSVGBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithStatic drops the twinkle animation and draws every star fully lit.
func WithStatic() SVGOption { return func(r *svgRenderer) { r.animate = false } }

// RenderSVG renders the stars as circles that twinkle with their own
// duration and delay.
func RenderSVG(stars []starfield.Star, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{
		width:      DefaultWidth,
		height:     DefaultHeight,
		background: DefaultBackground,
		animate:    true,
	}
	for _, opt := range opts {
		opt(&r)
	}

	doc := etree.NewDocument()
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("viewBox", "0 0 "+itoa(r.width)+" "+itoa(r.height))
	svg.CreateAttr("width", itoa(r.width))
	svg.CreateAttr("height", itoa(r.height))

	if r.background != "" {
		bg := svg.CreateElement("rect")
		bg.CreateAttr("width", "100%")
		bg.CreateAttr("height", "100%")
		bg.CreateAttr("fill", r.background)
	}

	g := svg.CreateElement("g")
	g.CreateAttr("id", starfield.DefaultContainerID)
	for _, s := range stars {
		c := g.CreateElement("circle")
		c.CreateAttr("class", starfield.ClassName)
		c.CreateAttr("cx", ftoa(s.X/100*float64(r.width)))
		c.CreateAttr("cy", ftoa(s.Y/100*float64(r.height)))
		c.CreateAttr("r", ftoa(s.Size/2))
		c.CreateAttr("fill", "#ffffff")
		if !r.animate {
			continue
		}
		c.CreateAttr("opacity", "0")
		a := c.CreateElement("animate")
		a.CreateAttr("attributeName", "opacity")
		a.CreateAttr("values", "0;1;0")
		a.CreateAttr("dur", ftoa(s.Duration)+"s")
		a.CreateAttr("begin", ftoa(s.Delay)+"s")
		a.CreateAttr("repeatCount", "indefinite")
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }

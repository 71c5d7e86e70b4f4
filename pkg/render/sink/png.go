package sink

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/matzehuels/starfield/pkg/starfield"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	width, height int
	background    string
	frame         float64
	timed         bool
}

// WithPNGSize sets the image size in pixels.
func WithPNGSize(w, h int) PNGOption {
	return func(r *pngRenderer) {
		if w > 0 && h > 0 {
			r.width, r.height = w, h
		}
	}
}

// WithBackground sets the background color as a hex string.
func WithBackground(hex string) PNGOption {
	return func(r *pngRenderer) {
		if hex != "" {
			r.background = hex
		}
	}
}

// WithFrame draws the stars as they look t seconds after page load.
// Without it every star is drawn fully lit.
func WithFrame(t float64) PNGOption {
	return func(r *pngRenderer) { r.frame, r.timed = t, true }
}

// RenderPNG rasterizes one frame of the starfield.
func RenderPNG(stars []starfield.Star, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{
		width:      DefaultWidth,
		height:     DefaultHeight,
		background: DefaultBackground,
	}
	for _, opt := range opts {
		opt(&r)
	}

	dc := gg.NewContext(r.width, r.height)
	dc.SetHexColor(r.background)
	dc.Clear()

	for _, s := range stars {
		alpha := 1.0
		if r.timed {
			alpha = s.Opacity(r.frame)
		}
		if alpha == 0 {
			continue
		}
		dc.SetRGBA(1, 1, 1, alpha)
		dc.DrawCircle(s.X/100*float64(r.width), s.Y/100*float64(r.height), s.Size/2)
		dc.Fill()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package pipeline

import (
	"fmt"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/render"
	"github.com/matzehuels/starfield/pkg/render/sink"
	"github.com/matzehuels/starfield/pkg/starfield"
)

// Render generates output artifacts in the requested formats. seed is the
// seed that produced stars, recorded in JSON output; 0 records none.
func Render(stars []starfield.Star, seed uint64, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		data, err := RenderFormat(stars, seed, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders a single format. See [Render] for seed.
func RenderFormat(stars []starfield.Star, seed uint64, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatHTML:
		htmlOpts := []sink.HTMLOption{
			sink.WithTitle(opts.Title),
			sink.WithContainerID(opts.ContainerID),
		}
		if opts.Pretty {
			htmlOpts = append(htmlOpts, sink.WithPretty())
		}
		return sink.RenderHTML(stars, htmlOpts...)
	case FormatSVG:
		return sink.RenderSVG(stars, sink.WithSize(opts.Width, opts.Height))
	case FormatPDF:
		// PDF is a still image; SMIL animation does not survive conversion.
		svg, err := sink.RenderSVG(stars, sink.WithSize(opts.Width, opts.Height), sink.WithStatic())
		if err != nil {
			return nil, err
		}
		return render.ToPDF(svg)
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithPNGSize(opts.Width, opts.Height)}
		if opts.Frame != nil {
			pngOpts = append(pngOpts, sink.WithFrame(*opts.Frame))
		}
		return sink.RenderPNG(stars, pngOpts...)
	case FormatJSON:
		return sink.RenderJSON(stars,
			sink.WithJSONSeed(seed),
			sink.WithJSONParams(opts.Params),
			sink.WithJSONContainerID(opts.ContainerID))
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

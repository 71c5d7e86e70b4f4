// Package render turns generated starfields into files.
//
// # Overview
//
// The [sink] subpackage writes a []starfield.Star in several formats:
//
//   - HTML: a complete page with the stars appended to the container
//   - SVG: one animated circle per star
//   - PNG: a single rasterized frame
//   - JSON: the star records plus the seed that produced them
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool
// (from librsvg).
//
//	svg, _ := sink.RenderSVG(stars)
//	pdf, err := render.ToPDF(svg)
package render

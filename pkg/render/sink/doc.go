// Package sink renders starfields to output formats.
//
// Each renderer takes the stars plus functional options:
//
//	page, err := sink.RenderHTML(stars, sink.WithTitle("Night"), sink.WithPretty())
//	svg, err := sink.RenderSVG(stars, sink.WithSize(1920, 1080))
//	png, err := sink.RenderPNG(stars, sink.WithPNGSize(800, 600), sink.WithFrame(2.5))
//	data, err := sink.RenderJSON(stars, sink.WithJSONSeed(42))
//
// Positions are stored as viewport percentages, so SVG and PNG output scale
// them to the requested frame size.
package sink

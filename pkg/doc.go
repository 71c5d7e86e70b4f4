// Package pkg provides the libraries behind the starfield command.
//
// # Overview
//
// A starfield is a set of small, randomly placed page elements that twinkle
// with their own timing. The pkg directory is organized into these areas:
//
//  1. [starfield] - Star generation and container population
//  2. [dom] - Server-side page document with a stars container
//  3. [render] - Output sinks (HTML, SVG, PNG, PDF, JSON)
//  4. [pipeline] - Orchestration (generate → render) with caching
//  5. [server] - HTTP transport for pages, images and the JSON API
//  6. [browser] - Live DOM host for js/wasm builds
//
// Supporting packages: [cache], [config], [errors], [observability] and
// [buildinfo].
//
// # Architecture
//
//	Seed / random source
//	         ↓
//	    [starfield] package (draw stars, append to a container)
//	         ↓
//	    [dom] or [browser] container, or [render/sink] encoders
//	         ↓
//	    HTML/SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Populate the stars container of a fresh page:
//
//	page, err := dom.NewPage("Stars", starfield.DefaultContainerID)
//	if err != nil {
//	    return err
//	}
//	if err := starfield.InitializeByID(page, "stars", starfield.DefaultCount, nil); err != nil {
//	    return err
//	}
//	html, _ := page.Bytes()
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Seed:    42,
//	    Formats: []string{pipeline.FormatHTML, pipeline.FormatSVG},
//	})
//
// [starfield]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/starfield
// [dom]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/dom
// [render]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/server
// [browser]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/browser
// [cache]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/buildinfo
package pkg

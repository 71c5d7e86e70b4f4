//go:build js && wasm

// Command starfield-wasm populates the page's #stars container when the
// document is ready. Build with GOOS=js GOARCH=wasm.
package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starfield/pkg/browser"
	"github.com/matzehuels/starfield/pkg/starfield"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "starfield"})
	done := make(chan struct{})

	doc := browser.Document()
	browser.OnReady(doc, func() {
		defer close(done)
		g := starfield.New(
			starfield.WithSeed(starfield.RandomSeed()),
			starfield.WithLogger(logger),
		)
		if err := g.PopulateByID(doc, starfield.DefaultContainerID); err != nil {
			logger.Error("populate failed", "err", err)
		}
	})
	<-done
}

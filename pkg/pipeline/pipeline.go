// Package pipeline generates starfields and renders them to artifacts.
//
// This package implements the generate → render pipeline shared by the CLI
// and the HTTP server, so both apply the same defaults, validation and
// caching.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Count:   200,
//	    Seed:    42,
//	    Formats: []string{"html", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// # Caching
//
// Artifacts are cached only when the caller fixed the seed. An unseeded run
// draws a fresh seed and always renders.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starfield/pkg/cache"
	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/render/sink"
	"github.com/matzehuels/starfield/pkg/starfield"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels for SVG, PNG and PDF.
	DefaultWidth = sink.DefaultWidth

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = sink.DefaultHeight

	// DefaultTitle is the default HTML page title.
	DefaultTitle = "Stars"
)

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// FormatNames lists the supported formats in a stable order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Generate options
	Count  int              `json:"count,omitempty"` // zero selects starfield.DefaultCount
	Seed   uint64           `json:"seed,omitempty"`  // zero draws a random seed
	Params starfield.Params `json:"params,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Width       int      `json:"width,omitempty"`
	Height      int      `json:"height,omitempty"`
	Title       string   `json:"title,omitempty"`
	ContainerID string   `json:"container_id,omitempty"`
	Pretty      bool     `json:"pretty,omitempty"`
	Frame       *float64 `json:"frame,omitempty"` // PNG frame time in seconds; nil draws every star lit
	Refresh     bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	seeded       bool
	seedResolved bool
	validated    bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Seed produced the stars. Re-running with it reproduces the run.
	Seed uint64

	// Stars are the generated records in append order.
	Stars []starfield.Star

	// Summary holds per-attribute statistics of Stars.
	Summary starfield.Summary

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StarCount    int
	Bytes        int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache use for a run.
type CacheInfo struct {
	Cacheable bool // seed was fixed by the caller
	RenderHit bool // every artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Count < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "star count must be non-negative, got %d", o.Count)
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame size must be positive, got %dx%d", o.Width, o.Height)
	}
	o.SetGenerateDefaults()
	if err := o.Params.Validate(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateElementID(o.ContainerID); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetGenerateDefaults fills count, params and seed. A zero seed is replaced
// by a random one and the run is marked uncacheable.
func (o *Options) SetGenerateDefaults() {
	if o.Count == 0 {
		o.Count = starfield.DefaultCount
	}
	if o.Params.IsZero() {
		o.Params = starfield.DefaultParams
	}
	if !o.seedResolved {
		o.seeded = o.Seed != 0
		if o.Seed == 0 {
			o.Seed = starfield.RandomSeed()
		}
		o.seedResolved = true
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.ContainerID == "" {
		o.ContainerID = starfield.DefaultContainerID
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Cacheable reports whether the caller fixed the seed, which makes the
// output deterministic.
func (o *Options) Cacheable() bool {
	return o.seeded
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Count:  o.Count,
		Seed:   o.Seed,
		Params: o.Params,
		Format: format,
	}
	switch format {
	case FormatHTML:
		k.Title, k.ContainerID, k.Pretty = o.Title, o.ContainerID, o.Pretty
	case FormatSVG, FormatPDF:
		k.Width, k.Height = o.Width, o.Height
	case FormatPNG:
		k.Width, k.Height, k.Frame = o.Width, o.Height, o.Frame
	case FormatJSON:
		k.ContainerID = o.ContainerID
	}
	return k
}

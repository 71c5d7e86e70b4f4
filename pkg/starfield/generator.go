package starfield

import (
	"io"
	"reflect"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/observability"
)

// Option configures a [Generator].
type Option func(*Generator)

// WithCount sets the number of stars appended per populate call.
func WithCount(n int) Option { return func(g *Generator) { g.count = n } }

// WithParams overrides the sampling ranges. The zero Params keeps the defaults.
func WithParams(p Params) Option {
	return func(g *Generator) {
		if !p.IsZero() {
			g.params = p
		}
	}
}

// WithSource sets the random source. A nil source keeps the default.
func WithSource(src Source) Option {
	return func(g *Generator) {
		if src != nil {
			g.src = src
		}
	}
}

// WithSeed is shorthand for WithSource(NewSource(seed)).
func WithSeed(seed uint64) Option { return WithSource(NewSource(seed)) }

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// Generator populates containers with randomized stars.
//
// A Generator is not safe for concurrent use: every populate call advances
// its random source.
type Generator struct {
	count  int
	params Params
	src    Source
	logger *log.Logger
}

// New returns a generator for DefaultCount stars with DefaultParams and a
// freshly seeded source.
func New(opts ...Option) *Generator {
	g := &Generator{
		count:  DefaultCount,
		params: DefaultParams,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.src == nil {
		g.src = NewSource(RandomSeed())
	}
	if g.logger == nil {
		g.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return g
}

// Count returns the configured number of stars.
func (g *Generator) Count() int { return g.count }

// Params returns the configured sampling ranges.
func (g *Generator) Params() Params { return g.params }

// Validate checks the count and the ranges.
func (g *Generator) Validate() error {
	if g.count < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "star count must be non-negative, got %d", g.count)
	}
	return g.params.Validate()
}

// Stars draws the configured number of stars without appending them.
func (g *Generator) Stars() ([]Star, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return Generate(g.src, g.count, g.params), nil
}

// Populate appends the configured number of stars to c.
// A nil container, including a typed nil pointer, fails with *MissingTargetError and appends nothing.
// Calling Populate again appends another batch.
func (g *Generator) Populate(c Container) error {
	return g.populate("", c)
}

// PopulateByID looks up the container by id, then populates it.
// The lookup happens before any star is drawn.
func (g *Generator) PopulateByID(doc Locator, id string) error {
	if doc == nil {
		return g.populate(id, nil)
	}
	c, ok := doc.ElementByID(id)
	if !ok {
		c = nil
	}
	return g.populate(id, c)
}

func (g *Generator) populate(target string, c Container) (err error) {
	hooks := observability.Generate()
	hooks.OnPopulateStart(target, g.count)

	start := time.Now()
	appended := 0
	defer func() {
		hooks.OnPopulateComplete(target, appended, time.Since(start), err)
	}()

	if isNil(c) {
		g.logger.Debug("star container missing", "id", target)
		return &MissingTargetError{ID: target}
	}
	if err := g.Validate(); err != nil {
		return err
	}

	for range g.count {
		c.AppendChild(NewStar(g.src, g.params).Element())
		appended++
	}

	g.logger.Debug("populated starfield", "id", target, "stars", appended, "duration", time.Since(start))
	return nil
}

// isNil reports whether c is nil or wraps a nil pointer, map, slice or func.
func isNil(c Container) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Initialize appends count stars drawn from src to c.
// A nil src uses a freshly seeded source.
func Initialize(c Container, count int, src Source) error {
	return New(WithCount(count), WithSource(src)).Populate(c)
}

// InitializeByID looks up id in doc and appends count stars to it.
func InitializeByID(doc Locator, id string, count int, src Source) error {
	return New(WithCount(count), WithSource(src)).PopulateByID(doc, id)
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starfield/pkg/cache"
	"github.com/matzehuels/starfield/pkg/observability"
	"github.com/matzehuels/starfield/pkg/starfield"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options; every
// run builds its own generator.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs generate → render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Seed:      opts.Seed,
		CacheInfo: CacheInfo{Cacheable: opts.Cacheable()},
	}

	genStart := time.Now()
	stars, err := r.Generate(opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Stars = stars
	result.Summary = starfield.Summarize(stars)
	result.Stats.StarCount = len(stars)
	result.Stats.GenerateTime = time.Since(genStart)

	r.Logger.Debug("generated stars",
		"count", len(stars),
		"seed", opts.Seed,
		"duration", result.Stats.GenerateTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, stars, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit
	for _, data := range artifacts {
		result.Stats.Bytes += len(data)
	}

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate draws the stars for opts. Options must already carry defaults.
func (r *Runner) Generate(opts Options) ([]starfield.Star, error) {
	g := starfield.New(
		starfield.WithCount(opts.Count),
		starfield.WithParams(opts.Params),
		starfield.WithSeed(opts.Seed),
		starfield.WithLogger(r.Logger),
	)
	return g.Stars()
}

// RenderWithCacheInfo renders artifacts, reading and filling the cache for
// seeded runs, and reports whether every artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, stars []starfield.Star, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	if !opts.Cacheable() {
		artifacts, err = Render(stars, opts.Seed, opts)
		return artifacts, false, err
	}

	cacheHooks := observability.Cache()
	if !opts.Refresh {
		cached := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, ok, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format)))
			if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			if err != nil || !ok {
				cacheHooks.OnCacheMiss(ctx, format)
				break
			}
			cacheHooks.OnCacheHit(ctx, format)
			cached[format] = data
		}
		if len(cached) == countUnique(opts.Formats) {
			return cached, true, nil
		}
	}

	artifacts, err = Render(stars, opts.Seed, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range artifacts {
		ttl := cache.TTLArtifact
		if format == FormatJSON {
			ttl = cache.TTLSnapshot
		}
		if err := r.Cache.Set(ctx, r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format)), data, ttl); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, format, len(data))
	}

	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func countUnique(formats []string) int {
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		seen[f] = true
	}
	return len(seen)
}

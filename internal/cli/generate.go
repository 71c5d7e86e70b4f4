package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/starfield/pkg/config"
	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/pipeline"
)

// generateOpts holds flag values for the generate command.
type generateOpts struct {
	count       int
	seed        uint64
	formats     string
	output      string
	width       int
	height      int
	title       string
	containerID string
	pretty      bool
	frame       float64
	stats       bool
	noCache     bool
	refresh     bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a starfield and write it to disk",
		Long: `Generate draws a starfield and writes it in one or more formats.

A fixed --seed reproduces the same stars on every run and lets the
rendered artifacts be cached.`,
		Example: `  starfield generate
  starfield generate -n 500 --seed 42 -f html,svg -o out/sky
  starfield generate -f json -o - | jq .count`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.generateOptions(cmd, &opts)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), popts, &opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.count, "count", "n", 0, "number of stars, at least 1 (default from config, 200)")
	f.Uint64Var(&opts.seed, "seed", 0, "random seed; 0 draws a fresh one")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated)")
	f.StringVarP(&opts.output, "output", "o", "", `output file (single format), base path (multiple) or "-" for stdout`)
	f.IntVar(&opts.width, "width", 0, "image width in pixels (svg, png, pdf)")
	f.IntVar(&opts.height, "height", 0, "image height in pixels (svg, png, pdf)")
	f.StringVar(&opts.title, "title", "", "page title (html)")
	f.StringVar(&opts.containerID, "container", "", "container element id (html, json)")
	f.BoolVar(&opts.pretty, "pretty", false, "indent HTML output")
	f.Float64Var(&opts.frame, "frame", 0, "PNG snapshot time in seconds; unset draws every star lit")
	f.BoolVar(&opts.stats, "stats", false, "print per-attribute statistics")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	f.BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// generateOptions merges flag values over config defaults. Flags that were
// not set on the command line keep the configured value.
func (c *CLI) generateOptions(cmd *cobra.Command, opts *generateOpts) (pipeline.Options, error) {
	cfg := c.cfg
	if cfg == nil {
		cfg = config.Default()
	}
	p := pipeline.Options{
		Count:       cfg.Count,
		Seed:        cfg.Seed,
		Params:      cfg.Params,
		Formats:     cfg.Render.Formats,
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		Title:       cfg.Render.Title,
		ContainerID: cfg.Render.ContainerID,
		Pretty:      cfg.Render.Pretty,
		Refresh:     opts.refresh,
		Logger:      c.Logger,
	}

	f := cmd.Flags()
	if f.Changed("count") {
		if opts.count < 1 {
			return p, errors.New(errors.ErrCodeInvalidInput, "count must be at least 1, got %d", opts.count)
		}
		p.Count = opts.count
	}
	if f.Changed("seed") {
		p.Seed = opts.seed
	}
	if f.Changed("format") {
		p.Formats = parseFormats(opts.formats)
	}
	if f.Changed("width") {
		p.Width = opts.width
	}
	if f.Changed("height") {
		p.Height = opts.height
	}
	if f.Changed("title") {
		p.Title = opts.title
	}
	if f.Changed("container") {
		p.ContainerID = opts.containerID
	}
	if f.Changed("pretty") {
		p.Pretty = opts.pretty
	}
	if f.Changed("frame") {
		frame := opts.frame
		p.Frame = &frame
	}

	if err := p.ValidateAndSetDefaults(); err != nil {
		return p, err
	}
	return p, nil
}

// runGenerate executes the pipeline and writes its artifacts.
func (c *CLI) runGenerate(ctx context.Context, popts pipeline.Options, opts *generateOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	toStdout := opts.output == stdoutPath

	var spin *Spinner
	if !toStdout {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Generating %d stars...", popts.Count))
		spin.Start()
	}
	result, err := runner.Execute(ctx, popts)
	if spin != nil {
		if err != nil {
			spin.StopWithError("Generation failed")
		} else {
			spin.Stop()
		}
	}
	if err != nil {
		return err
	}

	written, err := writeArtifacts(result.Artifacts, popts.Formats, opts.output, "stars")
	if err != nil {
		return err
	}
	if toStdout {
		return nil
	}

	prog.done(fmt.Sprintf("Generated %d stars", result.Stats.StarCount))
	printSuccess("Wrote %d file(s)", len(written))
	for _, path := range written {
		printFile(path)
	}
	printRunStats(result.Stats.StarCount, result.Seed, result.Stats.Bytes, result.CacheInfo.RenderHit)
	if opts.stats {
		printSummary(result.Summary)
	}
	if !result.CacheInfo.Cacheable {
		printNextStep("Reproduce this field", fmt.Sprintf("starfield generate --seed %d", result.Seed))
	}
	return nil
}

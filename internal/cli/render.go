package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/starfield/pkg/pipeline"
	"github.com/matzehuels/starfield/pkg/render/sink"
	"github.com/matzehuels/starfield/pkg/starfield"
)

// renderOpts holds flag values for the render command.
type renderOpts struct {
	formats string
	output  string
	width   int
	height  int
	title   string
	pretty  bool
	frame   float64
	stats   bool
}

// renderCommand creates the render command, which re-renders a JSON
// snapshot written by "generate -f json".
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <snapshot.json>",
		Short: "Render a saved JSON snapshot into other formats",
		Long: `Render reads a snapshot produced by "starfield generate -f json" and
writes the same stars as HTML, SVG, PNG or PDF. Use "-" to read stdin.`,
		Example: `  starfield render stars.json -f svg,png
  starfield generate -f json -o - | starfield render - -f html -o sky.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s) (comma-separated, default html)")
	f.StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	f.IntVar(&opts.width, "width", 0, "image width in pixels")
	f.IntVar(&opts.height, "height", 0, "image height in pixels")
	f.StringVar(&opts.title, "title", "", "page title (html)")
	f.BoolVar(&opts.pretty, "pretty", false, "indent HTML output")
	f.Float64Var(&opts.frame, "frame", 0, "PNG snapshot time in seconds")
	f.BoolVar(&opts.stats, "stats", false, "print per-attribute statistics")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	snap, err := readSnapshot(input)
	if err != nil {
		return err
	}

	cfg := c.cfg
	p := pipeline.Options{
		Count:       snap.Count,
		Seed:        snap.Seed,
		Formats:     parseFormats(opts.formats),
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		Title:       cfg.Render.Title,
		ContainerID: snap.ContainerID,
		Pretty:      opts.pretty,
		Logger:      c.Logger,
	}
	if snap.Params != nil {
		p.Params = *snap.Params
	}
	f := cmd.Flags()
	if f.Changed("width") {
		p.Width = opts.width
	}
	if f.Changed("height") {
		p.Height = opts.height
	}
	if f.Changed("title") {
		p.Title = opts.title
	}
	if f.Changed("frame") {
		frame := opts.frame
		p.Frame = &frame
	}
	if err := p.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	artifacts, err := pipeline.Render(snap.Stars, snap.Seed, p)
	if err != nil {
		return err
	}

	fallback := "stars"
	if input != stdoutPath {
		fallback = strings.TrimSuffix(input, filepath.Ext(input))
	}
	written, err := writeArtifacts(artifacts, p.Formats, opts.output, fallback)
	if err != nil {
		return err
	}
	if opts.output == stdoutPath {
		return nil
	}

	prog.done(fmt.Sprintf("Rendered %d stars", len(snap.Stars)))
	for _, path := range written {
		printFile(path)
	}
	if opts.stats {
		printSummary(starfield.Summarize(snap.Stars))
	}
	return nil
}

// readSnapshot loads a snapshot from a file, or stdin for "-".
func readSnapshot(path string) (*sink.Snapshot, error) {
	if path == stdoutPath {
		return sink.ReadJSON(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	snap, err := sink.ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

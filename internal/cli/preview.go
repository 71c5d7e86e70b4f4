package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/pipeline"
	"github.com/matzehuels/starfield/pkg/starfield"
)

const (
	defaultFPS     = 12
	previewCols    = 80
	previewRows    = 24
	footerRows     = 1
	minVisibleGlow = 0.15
)

// glyphs indexed by brightness band, dimmest first.
var previewGlyphs = []string{".", "+", "*"}

// previewShades maps brightness bands to 256-color grays.
var previewShades = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("248")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
}

// =============================================================================
// PreviewModel - Terminal starfield animation
// =============================================================================

type tickMsg time.Time

// PreviewModel animates a starfield in the terminal. Star positions scale
// with the window; each frame samples the twinkle opacity at the elapsed time.
type PreviewModel struct {
	Stars   []starfield.Star
	Seed    uint64
	Width   int
	Height  int
	Elapsed time.Duration
	Paused  bool

	start    time.Time
	interval time.Duration
}

// NewPreviewModel creates a preview model ticking fps times per second.
func NewPreviewModel(stars []starfield.Star, seed uint64, fps int) PreviewModel {
	if fps <= 0 {
		fps = defaultFPS
	}
	return PreviewModel{
		Stars:    stars,
		Seed:     seed,
		Width:    previewCols,
		Height:   previewRows,
		start:    time.Now(),
		interval: time.Second / time.Duration(fps),
	}
}

func (m PreviewModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m PreviewModel) Init() tea.Cmd {
	return m.tick()
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "space", "p":
			m.Paused = !m.Paused
			// Resume from the frozen frame.
			m.start = time.Now().Add(-m.Elapsed)
		}
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	case tickMsg:
		if !m.Paused {
			m.Elapsed = time.Time(msg).Sub(m.start)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m PreviewModel) View() string {
	rows := m.Height - footerRows
	if m.Width <= 0 || rows <= 0 {
		return ""
	}

	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, m.Width)
	}
	glow := make([][]float64, rows)
	for i := range glow {
		glow[i] = make([]float64, m.Width)
	}

	t := m.Elapsed.Seconds()
	for _, s := range m.Stars {
		o := s.Opacity(t)
		if o < minVisibleGlow {
			continue
		}
		col, row := cell(s.X, m.Width), cell(s.Y, rows)
		// Brightest star wins a shared cell.
		if o <= glow[row][col] {
			continue
		}
		glow[row][col] = o
		band := brightnessBand(o, s.Size)
		grid[row][col] = previewShades[band].Render(previewGlyphs[band])
	}

	var b strings.Builder
	for _, line := range grid {
		for _, c := range line {
			if c == "" {
				c = " "
			}
			b.WriteString(c)
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.footer())
	return b.String()
}

func (m PreviewModel) footer() string {
	state := fmt.Sprintf("t=%.1fs", m.Elapsed.Seconds())
	if m.Paused {
		state += " paused"
	}
	return StyleDim.Render(fmt.Sprintf("%d stars · seed %d · %s · space pause · q quit", len(m.Stars), m.Seed, state))
}

// cell maps a percentage coordinate onto n cells.
func cell(pct float64, n int) int {
	i := int(pct / 100 * float64(n))
	return min(max(i, 0), n-1)
}

// brightnessBand picks a glyph band from opacity, promoting large stars.
func brightnessBand(opacity, size float64) int {
	band := 0
	switch {
	case opacity >= 0.7:
		band = 2
	case opacity >= 0.4:
		band = 1
	}
	if size >= 3 && band < len(previewGlyphs)-1 {
		band++
	}
	return band
}

// =============================================================================
// Command
// =============================================================================

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		count int
		seed  uint64
		fps   int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Animate the starfield in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Count:  c.cfg.Count,
				Seed:   c.cfg.Seed,
				Params: c.cfg.Params,
				Logger: c.Logger,
			}
			if cmd.Flags().Changed("count") {
				if count < 1 {
					return errors.New(errors.ErrCodeInvalidInput, "count must be at least 1, got %d", count)
				}
				opts.Count = count
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			stars, err := pipeline.NewRunner(nil, nil, c.Logger).Generate(opts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewPreviewModel(stars, opts.Seed, fps),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of stars")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed; 0 draws a fresh one")
	cmd.Flags().IntVar(&fps, "fps", defaultFPS, "frames per second")

	return cmd
}

package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/render/sink"
	"github.com/matzehuels/starfield/pkg/starfield"
)

// captureStdout redirects user-facing output into a buffer for one test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

// isolate runs the test in a fresh directory with private config and cache
// locations.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

// run executes the root command with args and returns captured stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := captureStdout(t)
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"generate", "render", "serve", "preview", "config", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("verbose") == nil || root.PersistentFlags().Lookup("config") == nil {
		t.Error("root should define --verbose and --config")
	}
}

func TestGenerateDefaults(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "generate")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "stars.html"))
	if err != nil {
		t.Fatalf("stars.html not written: %v", err)
	}
	if n := strings.Count(string(data), `class="star"`); n != 200 {
		t.Errorf("stars.html has %d stars, want 200", n)
	}
	if !strings.Contains(out, "stars.html") {
		t.Errorf("output should list the written file, got %q", out)
	}
}

func TestGenerateSeededStdoutIsReproducible(t *testing.T) {
	isolate(t)

	first, err := run(t, "generate", "--seed", "42", "-n", "25", "-f", "json", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	second, err := run(t, "generate", "--seed", "42", "-n", "25", "-f", "json", "-o", "-", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("same seed should produce identical JSON")
	}

	snap, err := sink.ReadJSON(strings.NewReader(first))
	if err != nil {
		t.Fatal(err)
	}
	if snap.Seed != 42 || snap.Count != 25 {
		t.Errorf("snapshot seed=%d count=%d, want 42 and 25", snap.Seed, snap.Count)
	}
}

func TestGenerateMultipleFormats(t *testing.T) {
	dir := isolate(t)

	if _, err := run(t, "generate", "--seed", "7", "-f", "html,svg,png", "-o", "out/sky.svg"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"sky.html", "sky.svg", "sky.png"} {
		if _, err := os.Stat(filepath.Join(dir, "out", name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestGenerateCachesSeededRuns(t *testing.T) {
	dir := isolate(t)

	if _, err := run(t, "generate", "--seed", "9", "-f", "svg"); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "generate", "--seed", "9", "-f", "svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, iconCached) {
		t.Errorf("second seeded run should hit the cache, got %q", out)
	}

	entries, _ := filepath.Glob(filepath.Join(dir, "cache", appName, "*", "*.json"))
	if len(entries) == 0 {
		t.Error("file cache should hold the rendered artifact")
	}
}

func TestGenerateErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown format", []string{"generate", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"negative count", []string{"generate", "--count=-3"}, errors.ErrCodeInvalidInput},
		{"zero count", []string{"generate", "-n", "0"}, errors.ErrCodeInvalidInput},
		{"zero count preview", []string{"preview", "-n", "0"}, errors.ErrCodeInvalidInput},
		{"bad container", []string{"generate", "--container", "1 bad"}, errors.ErrCodeInvalidID},
		{"stdout with many formats", []string{"generate", "-f", "html,svg", "-o", "-"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestGenerateStats(t *testing.T) {
	isolate(t)

	out, err := run(t, "generate", "-n", "10", "--stats")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"10 stars", "duration", "delay"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q", want)
		}
	}
}

func TestRenderSnapshot(t *testing.T) {
	dir := isolate(t)

	if _, err := run(t, "generate", "--seed", "3", "-n", "12", "-f", "json", "-o", "field.json"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "render", "field.json", "-f", "svg"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "field.svg"))
	if err != nil {
		t.Fatalf("field.svg not written: %v", err)
	}
	if n := strings.Count(string(data), "<circle"); n != 12 {
		t.Errorf("field.svg has %d circles, want 12", n)
	}
}

func TestRenderSnapshotFromStdin(t *testing.T) {
	isolate(t)

	snap, err := sink.RenderJSON(nil)
	if err != nil {
		t.Fatal(err)
	}
	prev := stdin
	stdin = bytes.NewReader(snap)
	t.Cleanup(func() { stdin = prev })

	out, err := run(t, "render", "-", "-f", "html", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `id="stars"`) || strings.Contains(out, `class="star"`) {
		t.Errorf("empty snapshot should render an empty container, got %q", out)
	}
}

func TestRenderSeedlessSnapshotKeepsNoSeed(t *testing.T) {
	dir := isolate(t)

	stars := []starfield.Star{{Size: 2, X: 10, Y: 10, Duration: 4, Delay: 1}}
	data, err := sink.RenderJSON(stars)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "hand.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "render", "hand.json", "-f", "json", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	snap, err := sink.ReadJSON(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if snap.Seed != 0 {
		t.Errorf("re-rendered snapshot seed = %d, want none", snap.Seed)
	}
	if len(snap.Stars) != 1 || snap.Stars[0] != stars[0] {
		t.Errorf("stars = %+v, want %+v", snap.Stars, stars)
	}
}

func TestRenderMissingFile(t *testing.T) {
	isolate(t)
	if _, err := run(t, "render", "nope.json"); err == nil {
		t.Error("expected error for missing snapshot")
	}
}

func TestConfigShowAndInit(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "count = 200") {
		t.Errorf("config show should print defaults, got %q", out)
	}

	if _, err := run(t, "config", "init"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "starfield.toml")); err != nil {
		t.Fatalf("starfield.toml not written: %v", err)
	}
	if _, err := run(t, "config", "init"); err == nil {
		t.Error("init should refuse to overwrite without --force")
	}
	if _, err := run(t, "config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestConfigFileDrivesGenerate(t *testing.T) {
	dir := isolate(t)
	cfg := "count = 5\nseed = 11\n\n[render]\nformats = [\"svg\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "starfield.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "generate"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "stars.svg"))
	if err != nil {
		t.Fatalf("stars.svg not written: %v", err)
	}
	if n := strings.Count(string(data), "<circle"); n != 5 {
		t.Errorf("got %d circles, want 5 from config", n)
	}
}

func TestCachePathAndClear(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.Join(dir, "cache", appName) {
		t.Errorf("cache path = %q", out)
	}

	out, err = run(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("clear on missing dir = %q", out)
	}

	if _, err := run(t, "generate", "--seed", "5", "-f", "html,json"); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("clear output = %q", out)
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)

	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "starfield") {
		t.Error("bash completion should mention the command name")
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "html"},
		{"svg", "svg"},
		{"html, svg,,png", "html,svg,png"},
	}
	for _, tt := range tests {
		if got := strings.Join(parseFormats(tt.in), ","); got != tt.want {
			t.Errorf("parseFormats(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

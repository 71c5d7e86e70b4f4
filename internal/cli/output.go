package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/pipeline"
)

// stdoutPath selects standard output as the destination.
const stdoutPath = "-"

// stdin is read when "-" names an input.
var stdin io.Reader = os.Stdin

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout for "-".
// Existing files are overwritten.
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// basePath derives the base output path. An empty output falls back to
// fallback; a known format extension on output is stripped.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each requested format to its destination. A single
// format writes to output as given; several formats share a base path.
func outputPaths(formats []string, output, fallback string) (map[string]string, error) {
	unique := dedupe(formats)
	paths := make(map[string]string, len(unique))
	if len(unique) == 1 {
		f := unique[0]
		if output == "" {
			output = fallback + "." + f
		}
		paths[f] = output
		return paths, validatePaths(paths)
	}
	if output == stdoutPath {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(unique))
	}
	base := basePath(output, fallback)
	for _, f := range unique {
		paths[f] = base + "." + f
	}
	return paths, validatePaths(paths)
}

func validatePaths(paths map[string]string) error {
	for _, p := range paths {
		if p == stdoutPath {
			continue
		}
		if err := errors.ValidateOutputPath(p); err != nil {
			return err
		}
	}
	return nil
}

// writeArtifacts writes every artifact to its path and returns the file
// paths written, in format order. Stdout is not listed.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, fallback string) ([]string, error) {
	paths, err := outputPaths(formats, output, fallback)
	if err != nil {
		return nil, err
	}
	var written []string
	for _, f := range dedupe(formats) {
		data, ok := artifacts[f]
		if !ok {
			return written, fmt.Errorf("no %s artifact rendered", f)
		}
		path := paths[f]
		w, err := openOutput(path)
		if err != nil {
			return written, fmt.Errorf("create %s: %w", path, err)
		}
		if _, err := w.Write(data); err != nil {
			w.Close()
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		if err := w.Close(); err != nil {
			return written, fmt.Errorf("close %s: %w", path, err)
		}
		if path != stdoutPath {
			written = append(written, path)
		}
	}
	return written, nil
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

package dom

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/starfield"
)

func TestNewPageHasEmptyContainer(t *testing.T) {
	doc, err := NewPage("Night Sky", starfield.DefaultContainerID)
	if err != nil {
		t.Fatalf("NewPage() error: %v", err)
	}
	if doc.Title() != "Night Sky" {
		t.Errorf("Title() = %q, want %q", doc.Title(), "Night Sky")
	}

	n, ok := doc.Node(starfield.DefaultContainerID)
	if !ok {
		t.Fatal("container #stars not found")
	}
	if n.Stars() != 0 {
		t.Errorf("Stars() = %d, want 0", n.Stars())
	}
}

func TestNewPageCustomContainerID(t *testing.T) {
	doc, err := NewPage("", "sky")
	if err != nil {
		t.Fatalf("NewPage() error: %v", err)
	}
	if _, ok := doc.Node("sky"); !ok {
		t.Error("custom container id not applied")
	}
	if _, ok := doc.Node(starfield.DefaultContainerID); ok {
		t.Error("default id should have been replaced")
	}
	if doc.Title() != "Stars" {
		t.Errorf("empty title should keep template title, got %q", doc.Title())
	}
}

func TestNewPageRejectsBadID(t *testing.T) {
	_, err := NewPage("x", "two words")
	if !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("NewPage() error = %v, want %s", err, errors.ErrCodeInvalidID)
	}
}

func TestInitializePopulatesDocument(t *testing.T) {
	doc, err := NewPage("Stars", starfield.DefaultContainerID)
	if err != nil {
		t.Fatalf("NewPage() error: %v", err)
	}

	if err := starfield.InitializeByID(doc, starfield.DefaultContainerID, starfield.DefaultCount, starfield.NewSource(1)); err != nil {
		t.Fatalf("InitializeByID() error: %v", err)
	}

	n, _ := doc.Node(starfield.DefaultContainerID)
	if n.Stars() != starfield.DefaultCount {
		t.Fatalf("Stars() = %d, want %d", n.Stars(), starfield.DefaultCount)
	}

	want := starfield.Generate(starfield.NewSource(1), starfield.DefaultCount, starfield.DefaultParams)
	for i, style := range n.StarStyles() {
		if style != want[i].Element().StyleAttr() {
			t.Fatalf("star %d style = %q, want %q", i, style, want[i].Element().StyleAttr())
		}
	}

	// A second initialization appends on top of the first batch.
	if err := starfield.InitializeByID(doc, starfield.DefaultContainerID, starfield.DefaultCount, nil); err != nil {
		t.Fatalf("second InitializeByID() error: %v", err)
	}
	if n.Stars() != 2*starfield.DefaultCount {
		t.Errorf("Stars() after re-init = %d, want %d", n.Stars(), 2*starfield.DefaultCount)
	}

	n.Clear()
	if n.Stars() != 0 {
		t.Errorf("Stars() after Clear = %d, want 0", n.Stars())
	}
}

func TestInitializeOnMissingNode(t *testing.T) {
	doc, err := NewPage("Stars", starfield.DefaultContainerID)
	if err != nil {
		t.Fatalf("NewPage() error: %v", err)
	}

	n, ok := doc.Node("missing")
	if ok {
		t.Fatal("Node(\"missing\") reported found")
	}
	err = starfield.Initialize(n, starfield.DefaultCount, starfield.NewSource(1))
	if !stderrors.Is(err, starfield.ErrMissingTarget) {
		t.Fatalf("Initialize() error = %v, want ErrMissingTarget", err)
	}

	out, _ := doc.Bytes()
	if bytes.Contains(out, []byte(`class="star"`)) {
		t.Error("document should contain no stars")
	}
}

func TestMissingContainer(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<html><body><div id="header"></div></body></html>`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	err = starfield.InitializeByID(doc, starfield.DefaultContainerID, starfield.DefaultCount, nil)
	if !stderrors.Is(err, starfield.ErrMissingTarget) {
		t.Fatalf("InitializeByID() error = %v, want ErrMissingTarget", err)
	}

	header, _ := doc.Node("header")
	if header.Stars() != 0 {
		t.Errorf("header received %d stars", header.Stars())
	}
	out, _ := doc.Bytes()
	if bytes.Contains(out, []byte(`class="star"`)) {
		t.Error("rendered document should contain no stars")
	}
}

func TestRenderContainsStarsAndStylesheet(t *testing.T) {
	doc, _ := NewPage("Stars", starfield.DefaultContainerID)
	c, _ := doc.ElementByID(starfield.DefaultContainerID)
	c.AppendChild(starfield.Star{Size: 2, X: 10, Y: 20, Duration: 3, Delay: 1}.Element())

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<div id="stars" class="stars"><div class="star" style="width: 2px; height: 2px; left: 10vw; top: 20vh; animation-duration: 3s; animation-delay: 1s"></div></div>`,
		"@keyframes twinkle",
		"<title>Stars</title>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestPretty(t *testing.T) {
	doc, _ := NewPage("Stars", starfield.DefaultContainerID)
	_ = starfield.InitializeByID(doc, starfield.DefaultContainerID, 3, starfield.NewSource(2))

	pretty, err := doc.Pretty()
	if err != nil {
		t.Fatalf("Pretty() error: %v", err)
	}
	if got := bytes.Count(pretty, []byte(`class="star"`)); got != 3 {
		t.Errorf("pretty output has %d stars, want 3", got)
	}
	if !bytes.Contains(pretty, []byte("\n")) {
		t.Error("pretty output should be multi-line")
	}
}

func TestStylesheetEmbedded(t *testing.T) {
	if !bytes.Contains(Stylesheet(), []byte(".star")) {
		t.Error("Stylesheet() should define the .star class")
	}
}

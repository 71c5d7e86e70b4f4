package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/matzehuels/starfield/pkg/starfield"
)

func testStars(t *testing.T, n int) []starfield.Star {
	t.Helper()
	return starfield.Generate(starfield.NewSource(42), n, starfield.DefaultParams)
}

func TestRenderHTML(t *testing.T) {
	stars := testStars(t, 200)
	page, err := RenderHTML(stars, WithTitle("Night"))
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	s := string(page)

	if got := strings.Count(s, `class="star"`); got != 200 {
		t.Errorf("star divs = %d, want 200", got)
	}
	if !strings.Contains(s, `<title>Night</title>`) {
		t.Error("title not set")
	}
	if !strings.Contains(s, `id="stars"`) {
		t.Error("container missing")
	}
	if !strings.Contains(s, "@keyframes twinkle") {
		t.Error("stylesheet not inlined")
	}
}

func TestRenderHTMLContainerID(t *testing.T) {
	page, err := RenderHTML(testStars(t, 3), WithContainerID("sky"))
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(string(page), `id="sky"`) {
		t.Error("custom container id not applied")
	}
	if _, err := RenderHTML(nil, WithContainerID("bad id")); err == nil {
		t.Error("expected error for invalid container id")
	}
}

func TestRenderHTMLPretty(t *testing.T) {
	compact, err := RenderHTML(testStars(t, 5))
	if err != nil {
		t.Fatal(err)
	}
	pretty, err := RenderHTML(testStars(t, 5), WithPretty())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Count(pretty, []byte("\n")) <= bytes.Count(compact, []byte("\n")) {
		t.Error("pretty output should have more lines than compact")
	}
}

func TestRenderSVG(t *testing.T) {
	stars := testStars(t, 50)
	data, err := RenderSVG(stars, WithSize(1000, 500))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}
	root := doc.SelectElement("svg")
	if root == nil {
		t.Fatal("missing <svg> root")
	}
	if got := root.SelectAttrValue("viewBox", ""); got != "0 0 1000 500" {
		t.Errorf("viewBox = %q", got)
	}

	circles := doc.FindElements("//circle")
	if len(circles) != len(stars) {
		t.Fatalf("circles = %d, want %d", len(circles), len(stars))
	}
	first := circles[0]
	if want := ftoa(stars[0].X / 100 * 1000); first.SelectAttrValue("cx", "") != want {
		t.Errorf("cx = %q, want %q", first.SelectAttrValue("cx", ""), want)
	}
	if want := ftoa(stars[0].Size / 2); first.SelectAttrValue("r", "") != want {
		t.Errorf("r = %q, want %q", first.SelectAttrValue("r", ""), want)
	}
	anim := first.SelectElement("animate")
	if anim == nil {
		t.Fatal("missing <animate>")
	}
	if got, want := anim.SelectAttrValue("dur", ""), ftoa(stars[0].Duration)+"s"; got != want {
		t.Errorf("dur = %q, want %q", got, want)
	}
	if got, want := anim.SelectAttrValue("begin", ""), ftoa(stars[0].Delay)+"s"; got != want {
		t.Errorf("begin = %q, want %q", got, want)
	}
}

func TestRenderSVGStatic(t *testing.T) {
	data, err := RenderSVG(testStars(t, 10), WithStatic(), WithSVGBackground(""))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if strings.Contains(s, "<animate") {
		t.Error("static output should not animate")
	}
	if strings.Contains(s, "<rect") {
		t.Error("empty background should skip the rect")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testStars(t, 100), WithPNGSize(320, 200))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Errorf("size = %dx%d, want 320x200", b.Dx(), b.Dy())
	}
}

func TestRenderPNGFrameZeroIsDark(t *testing.T) {
	// At t=0 no star has started brightening.
	data, err := RenderPNG(testStars(t, 100), WithPNGSize(64, 64), WithFrame(0), WithBackground("#000000"))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if r, g, b, _ := img.At(x, y).RGBA(); r|g|b != 0 {
				t.Fatalf("pixel (%d,%d) lit at t=0", x, y)
			}
		}
	}
}

func TestRenderJSON(t *testing.T) {
	stars := testStars(t, 7)
	data, err := RenderJSON(stars, WithJSONSeed(42), WithJSONContainerID("stars"), WithJSONParams(starfield.DefaultParams))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	snap, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if snap.Seed != 42 || snap.Count != 7 || snap.ContainerID != "stars" {
		t.Errorf("snapshot header = %+v", snap)
	}
	if snap.Params == nil || *snap.Params != starfield.DefaultParams {
		t.Errorf("params = %+v", snap.Params)
	}
	if snap.Stars[3] != stars[3] {
		t.Errorf("star[3] = %+v, want %+v", snap.Stars[3], stars[3])
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(nil)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["stars"].([]any); !ok {
		t.Errorf("stars = %v, want empty array", raw["stars"])
	}
}

func TestReadJSONCountMismatch(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"count": 2, "stars": []}`))
	if err == nil {
		t.Error("expected count mismatch error")
	}
}

func TestContentType(t *testing.T) {
	stars := testStars(t, 3)
	htmlOut, _ := RenderHTML(stars)
	svgOut, _ := RenderSVG(stars)
	pngOut, _ := RenderPNG(stars, WithPNGSize(8, 8))
	jsonOut, _ := RenderJSON(stars)

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"html", htmlOut, "text/html"},
		{"svg", svgOut, "image/svg+xml"},
		{"png", pngOut, "image/png"},
		{"json", jsonOut, "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentType(tt.data); !strings.HasPrefix(got, tt.want) {
				t.Errorf("ContentType = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

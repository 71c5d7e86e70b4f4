package starfield

import "strconv"

const (
	// DefaultCount is the number of stars generated per page load.
	DefaultCount = 200

	// DefaultContainerID is the id of the page element that owns the stars.
	DefaultContainerID = "stars"

	// ClassName marks generated elements so stylesheets can animate them.
	ClassName = "star"
)

// Star is one decorative element.
type Star struct {
	Size     float64 `json:"size"`     // width and height, px
	X        float64 `json:"x"`        // left offset, vw
	Y        float64 `json:"y"`        // top offset, vh
	Duration float64 `json:"duration"` // animation duration, s
	Delay    float64 `json:"delay"`    // animation delay, s
}

// Element converts s into the element appended to a container.
func (s Star) Element() Element {
	return Element{
		Class: ClassName,
		Style: []Property{
			{Name: "width", Value: formatUnit(s.Size, "px")},
			{Name: "height", Value: formatUnit(s.Size, "px")},
			{Name: "left", Value: formatUnit(s.X, "vw")},
			{Name: "top", Value: formatUnit(s.Y, "vh")},
			{Name: "animation-duration", Value: formatUnit(s.Duration, "s")},
			{Name: "animation-delay", Value: formatUnit(s.Delay, "s")},
		},
	}
}

func formatUnit(v float64, unit string) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

// NewStar draws one star from src. Each attribute is drawn independently.
func NewStar(src Source, p Params) Star {
	return Star{
		Size:     p.Size.Draw(src),
		X:        p.X.Draw(src),
		Y:        p.Y.Draw(src),
		Duration: p.Duration.Draw(src),
		Delay:    p.Delay.Draw(src),
	}
}

// Generate draws count stars from src without touching any container.
// A non-positive count yields an empty slice.
func Generate(src Source, count int, p Params) []Star {
	if count <= 0 {
		return []Star{}
	}
	stars := make([]Star, count)
	for i := range stars {
		stars[i] = NewStar(src, p)
	}
	return stars
}

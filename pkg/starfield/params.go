package starfield

import (
	"fmt"
	"math"

	"github.com/matzehuels/starfield/pkg/errors"
)

// Range is a half-open interval [Min, Max) sampled uniformly.
type Range struct {
	Min float64 `json:"min" toml:"min" mapstructure:"min"`
	Max float64 `json:"max" toml:"max" mapstructure:"max"`
}

// Draw returns Min + u*(Max-Min) for a uniform u in [0, 1) from src.
func (r Range) Draw(src Source) float64 {
	return r.Min + src.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max).
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v < r.Max
}

// Mean is the expected value of a uniform draw.
func (r Range) Mean() float64 {
	return (r.Min + r.Max) / 2
}

// Width is Max - Min.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g)", r.Min, r.Max)
}

func (r Range) validate(name string) error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return errors.New(errors.ErrCodeInvalidRange, "%s range %s must be finite", name, r)
	}
	if r.Min >= r.Max {
		return errors.New(errors.ErrCodeInvalidRange, "%s range %s is empty", name, r)
	}
	return nil
}

// Params holds the sampling range of every star attribute.
type Params struct {
	Size     Range `json:"size" toml:"size" mapstructure:"size"`
	X        Range `json:"x" toml:"x" mapstructure:"x"`
	Y        Range `json:"y" toml:"y" mapstructure:"y"`
	Duration Range `json:"duration" toml:"duration" mapstructure:"duration"`
	Delay    Range `json:"delay" toml:"delay" mapstructure:"delay"`
}

// DefaultParams are the ranges used for page backgrounds.
var DefaultParams = Params{
	Size:     Range{Min: 1, Max: 4},
	X:        Range{Min: 0, Max: 100},
	Y:        Range{Min: 0, Max: 100},
	Duration: Range{Min: 3, Max: 8},
	Delay:    Range{Min: 0, Max: 5},
}

// Validate rejects empty, inverted or non-finite ranges. Sizes and timings
// must also be non-negative.
func (p Params) Validate() error {
	checks := []struct {
		name string
		r    Range
	}{
		{"size", p.Size},
		{"x", p.X},
		{"y", p.Y},
		{"duration", p.Duration},
		{"delay", p.Delay},
	}
	for _, c := range checks {
		if err := c.r.validate(c.name); err != nil {
			return err
		}
	}
	if p.Size.Min < 0 || p.Duration.Min < 0 || p.Delay.Min < 0 {
		return errors.New(errors.ErrCodeInvalidRange, "size, duration and delay must be non-negative")
	}
	return nil
}

// IsZero reports whether p is the zero value, used to fall back to DefaultParams.
func (p Params) IsZero() bool {
	return p == Params{}
}

// Mean returns a star whose attributes are the theoretical means of p.
func (p Params) Mean() Star {
	return Star{
		Size:     p.Size.Mean(),
		X:        p.X.Mean(),
		Y:        p.Y.Mean(),
		Duration: p.Duration.Mean(),
		Delay:    p.Delay.Mean(),
	}
}

// Contains reports whether every attribute of s lies inside its range.
func (p Params) Contains(s Star) bool {
	return p.Size.Contains(s.Size) &&
		p.X.Contains(s.X) &&
		p.Y.Contains(s.Y) &&
		p.Duration.Contains(s.Duration) &&
		p.Delay.Contains(s.Delay)
}

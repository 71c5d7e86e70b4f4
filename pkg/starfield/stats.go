package starfield

import "math"

// Moments summarizes one attribute over a set of stars.
type Moments struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Summary holds per-attribute moments.
type Summary struct {
	Count    int     `json:"count"`
	Size     Moments `json:"size"`
	X        Moments `json:"x"`
	Y        Moments `json:"y"`
	Duration Moments `json:"duration"`
	Delay    Moments `json:"delay"`
}

// Mean returns the empirical means as a Star.
func (s Summary) Mean() Star {
	return Star{
		Size:     s.Size.Mean,
		X:        s.X.Mean,
		Y:        s.Y.Mean,
		Duration: s.Duration.Mean,
		Delay:    s.Delay.Mean,
	}
}

// Summarize computes the empirical mean, min and max of every attribute.
func Summarize(stars []Star) Summary {
	sum := Summary{Count: len(stars)}
	if len(stars) == 0 {
		return sum
	}

	acc := func(get func(Star) float64) Moments {
		m := Moments{Min: math.Inf(1), Max: math.Inf(-1)}
		total := 0.0
		for _, s := range stars {
			v := get(s)
			total += v
			m.Min = min(m.Min, v)
			m.Max = max(m.Max, v)
		}
		m.Mean = total / float64(len(stars))
		return m
	}

	sum.Size = acc(func(s Star) float64 { return s.Size })
	sum.X = acc(func(s Star) float64 { return s.X })
	sum.Y = acc(func(s Star) float64 { return s.Y })
	sum.Duration = acc(func(s Star) float64 { return s.Duration })
	sum.Delay = acc(func(s Star) float64 { return s.Delay })
	return sum
}

package starfield

import "math"

// Opacity returns the star's opacity t seconds after page load, following
// the twinkle keyframes: invisible until Delay, then a smooth 0→1→0 pulse
// every Duration seconds.
func (s Star) Opacity(t float64) float64 {
	if t < s.Delay || s.Duration <= 0 {
		return 0
	}
	phase := math.Mod(t-s.Delay, s.Duration) / s.Duration
	return (1 - math.Cos(2*math.Pi*phase)) / 2
}

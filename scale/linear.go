// ABOUTME: Continuous linear scale mapping a numeric domain onto a pixel range, with exact inversion.
// ABOUTME: Ticks follows the d3-array increment rules (1, 2, 5 x 10^n) so grids line up with round values.
package scale

import "math"

// Linear maps the domain [d0, d1] onto the range [r0, r1].
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear creates a linear scale. Inverted ranges (r0 > r1) are allowed and
// used for screen y-axes.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the domain bounds as given.
func (l Linear) Domain() (float64, float64) {
	return l.d0, l.d1
}

// Range returns the range bounds as given.
func (l Linear) Range() (float64, float64) {
	return l.r0, l.r1
}

// Map converts a domain value to range space. A degenerate domain maps
// everything to the middle of the range.
func (l Linear) Map(v float64) float64 {
	span := l.d1 - l.d0
	if span == 0 {
		return (l.r0 + l.r1) / 2
	}
	t := (v - l.d0) / span
	return l.r0 + t*(l.r1-l.r0)
}

// Invert converts a range value back to domain space. A degenerate range
// returns the domain start.
func (l Linear) Invert(px float64) float64 {
	span := l.r1 - l.r0
	if span == 0 {
		return l.d0
	}
	t := (px - l.r0) / span
	return l.d0 + t*(l.d1-l.d0)
}

// Ticks returns roughly count round values spanning the domain.
func (l Linear) Ticks(count int) []float64 {
	return Ticks(l.d0, l.d1, count)
}

// Clamp restricts v to [lo, hi].
func Clamp(lo, hi, v float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks returns round tick values between start and stop, aiming for count ticks.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	step := tickIncrement(start, stop, count)
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil
	}

	var ticks []float64
	if step > 0 {
		lo := math.Ceil(start / step)
		hi := math.Floor(stop / step)
		n := int(math.Ceil(hi - lo + 1))
		for i := 0; i < n; i++ {
			ticks = append(ticks, (lo+float64(i))*step)
		}
	} else {
		lo := math.Floor(start * step)
		hi := math.Ceil(stop * step)
		n := int(math.Ceil(lo - hi + 1))
		for i := 0; i < n; i++ {
			ticks = append(ticks, (lo-float64(i))/step)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// tickIncrement returns the tick step. Steps below one are encoded as the
// negative reciprocal to keep the tick arithmetic exact.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

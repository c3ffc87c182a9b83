// ABOUTME: Yearly time series model: ordered points built from a year -> value mapping.
// ABOUTME: Provides extent helpers (min/max year, min/max value) used by the scale builder.
package series

import "sort"

// Point is one observation of a yearly series.
type Point struct {
	Year  int     `yaml:"year" json:"year"`
	Value float64 `yaml:"value" json:"value"`
}

// Series is an ordered sequence of points, ascending by year with unique years.
type Series []Point

// FromMapping builds a Series from a year -> value mapping, sorted ascending by year.
func FromMapping(data map[int]float64) Series {
	s := make(Series, 0, len(data))
	for year, value := range data {
		s = append(s, Point{Year: year, Value: value})
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Year < s[j].Year })
	return s
}

// MinYear returns the first year of the series. The series must not be empty.
func (s Series) MinYear() int {
	return s[0].Year
}

// MaxYear returns the last year of the series. The series must not be empty.
func (s Series) MaxYear() int {
	return s[len(s)-1].Year
}

// Extent returns the smallest and largest value in the series.
// An empty series yields (0, 0).
func (s Series) Extent() (lo, hi float64) {
	if len(s) == 0 {
		return 0, 0
	}
	lo, hi = s[0].Value, s[0].Value
	for _, p := range s[1:] {
		if p.Value < lo {
			lo = p.Value
		}
		if p.Value > hi {
			hi = p.Value
		}
	}
	return lo, hi
}

// Years returns the years of the series in order.
func (s Series) Years() []int {
	years := make([]int, len(s))
	for i, p := range s {
		years[i] = p.Year
	}
	return years
}

// Between returns the points whose year lies in [lower, upper].
func (s Series) Between(lower, upper int) Series {
	var out Series
	for _, p := range s {
		if p.Year >= lower && p.Year <= upper {
			out = append(out, p)
		}
	}
	return out
}

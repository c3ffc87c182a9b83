// ABOUTME: Period boundaries that partition a series into styled segments.
// ABOUTME: ResolvePeriods clamps/extends the final boundary and MedianYear finds the history/result split.
package series

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPeriods is returned when period boundaries can not partition a series.
var ErrInvalidPeriods = errors.New("invalid periods")

// Style tags a segment with one of the two visual treatments.
type Style int

const (
	StylePrimary Style = iota
	StyleSecondary
)

// Class returns the CSS class name used for segments, dots, labels and gradients.
func (s Style) Class() string {
	switch s {
	case StyleSecondary:
		return "secondary"
	default:
		return "primary"
	}
}

// String implements fmt.Stringer.
func (s Style) String() string {
	return s.Class()
}

// ParseStyle maps a style name to a Style; "black" and "red" are accepted as aliases.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "primary", "black":
		return StylePrimary, nil
	case "secondary", "red":
		return StyleSecondary, nil
	default:
		return StylePrimary, fmt.Errorf("unknown style %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler so JSON carries the class name.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.Class()), nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Style) MarshalYAML() (any, error) {
	return s.Class(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Style) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseStyle(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Period closes a segment at Year. The segment starts at the previous
// period's boundary (or the series' first year for the first period).
type Period struct {
	Year  int    `yaml:"year" json:"year"`
	Style Style  `yaml:"class" json:"class"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
}

// ResolvePeriods returns a copy of periods whose final boundary equals maxYear.
// A final boundary past maxYear is clamped to it; a final boundary before
// maxYear gets an implicit result period appended that ends at maxYear.
// Boundaries must strictly increase, start no earlier than minYear, and leave
// at least two periods so that a result segment exists.
func ResolvePeriods(periods []Period, minYear, maxYear int) ([]Period, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("%w: at least one period is required", ErrInvalidPeriods)
	}

	out := make([]Period, len(periods))
	copy(out, periods)

	last := &out[len(out)-1]
	switch {
	case last.Year > maxYear:
		last.Year = maxYear
	case last.Year < maxYear:
		out = append(out, Period{Year: maxYear, Style: last.Style})
	}

	if len(out) < 2 {
		return nil, fmt.Errorf("%w: no result period after %d", ErrInvalidPeriods, out[0].Year)
	}
	if out[0].Year < minYear {
		return nil, fmt.Errorf("%w: boundary %d precedes first year %d", ErrInvalidPeriods, out[0].Year, minYear)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Year <= out[i-1].Year {
			return nil, fmt.Errorf("%w: boundary %d does not follow %d", ErrInvalidPeriods, out[i].Year, out[i-1].Year)
		}
	}
	return out, nil
}

// MedianYear returns the second-to-last boundary of resolved periods: the
// split between the pre-drawn history and the region the user must draw.
func MedianYear(resolved []Period) int {
	return resolved[len(resolved)-2].Year
}

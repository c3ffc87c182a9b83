// ABOUTME: Tests for the series data model: ordering, extents, period resolution and value formatting.
// ABOUTME: Covers the clamp/extend rules for the final period and the median year invariant.
package series

import (
	"errors"
	"testing"
)

func TestFromMappingSortsByYear(t *testing.T) {
	s := FromMapping(map[int]float64{2014: 12, 2010: 5, 2012: 7})

	want := []int{2010, 2012, 2014}
	got := s.Years()
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("years[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if s.MinYear() != 2010 || s.MaxYear() != 2014 {
		t.Errorf("extent years = [%d, %d], want [2010, 2014]", s.MinYear(), s.MaxYear())
	}
}

func TestExtent(t *testing.T) {
	s := FromMapping(map[int]float64{2000: 3, 2001: -2, 2002: 9})
	lo, hi := s.Extent()
	if lo != -2 || hi != 9 {
		t.Errorf("Extent() = (%v, %v), want (-2, 9)", lo, hi)
	}

	lo, hi = Series{}.Extent()
	if lo != 0 || hi != 0 {
		t.Errorf("empty Extent() = (%v, %v), want (0, 0)", lo, hi)
	}
}

func TestBetween(t *testing.T) {
	s := FromMapping(map[int]float64{2010: 1, 2011: 2, 2012: 3, 2013: 4})
	got := s.Between(2011, 2012)
	if len(got) != 2 || got[0].Year != 2011 || got[1].Year != 2012 {
		t.Errorf("Between(2011, 2012) = %+v", got)
	}
}

func TestResolvePeriods(t *testing.T) {
	tests := []struct {
		name       string
		periods    []Period
		minYear    int
		maxYear    int
		wantYears  []int
		wantMedian int
		wantErr    bool
	}{
		{
			name:       "final boundary clamped to max year",
			periods:    []Period{{Year: 2010}, {Year: 2012, Style: StyleSecondary}, {Year: 2017, Style: StyleSecondary}},
			minYear:    2005,
			maxYear:    2016,
			wantYears:  []int{2010, 2012, 2016},
			wantMedian: 2012,
		},
		{
			name:       "implicit result period appended",
			periods:    []Period{{Year: 2010}, {Year: 2012, Style: StyleSecondary}},
			minYear:    2010,
			maxYear:    2014,
			wantYears:  []int{2010, 2012, 2014},
			wantMedian: 2012,
		},
		{
			name:       "exact final boundary kept",
			periods:    []Period{{Year: 2012}, {Year: 2014}},
			minYear:    2010,
			maxYear:    2014,
			wantYears:  []int{2012, 2014},
			wantMedian: 2012,
		},
		{
			name:    "no periods",
			minYear: 2010,
			maxYear: 2014,
			wantErr: true,
		},
		{
			name:    "single period at max year leaves no result segment",
			periods: []Period{{Year: 2014}},
			minYear: 2010,
			maxYear: 2014,
			wantErr: true,
		},
		{
			name:    "boundaries out of order",
			periods: []Period{{Year: 2012}, {Year: 2011}, {Year: 2014}},
			minYear: 2010,
			maxYear: 2014,
			wantErr: true,
		},
		{
			name:    "boundary before first year",
			periods: []Period{{Year: 2005}, {Year: 2014}},
			minYear: 2010,
			maxYear: 2014,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePeriods(tt.periods, tt.minYear, tt.maxYear)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPeriods) {
					t.Fatalf("expected ErrInvalidPeriods, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.wantYears) {
				t.Fatalf("expected %d periods, got %d (%+v)", len(tt.wantYears), len(got), got)
			}
			for i, y := range tt.wantYears {
				if got[i].Year != y {
					t.Errorf("period[%d].Year = %d, want %d", i, got[i].Year, y)
				}
			}
			median := MedianYear(got)
			if median != tt.wantMedian {
				t.Errorf("MedianYear = %d, want %d", median, tt.wantMedian)
			}
			if median < tt.minYear || median > tt.maxYear {
				t.Errorf("median %d outside [%d, %d]", median, tt.minYear, tt.maxYear)
			}
		})
	}
}

func TestResolvePeriodsDoesNotMutateInput(t *testing.T) {
	in := []Period{{Year: 2010}, {Year: 2020}}
	if _, err := ResolvePeriods(in, 2000, 2015); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in[1].Year != 2020 {
		t.Errorf("input mutated: %+v", in)
	}
}

func TestImplicitPeriodInheritsStyle(t *testing.T) {
	got, err := ResolvePeriods([]Period{{Year: 2010}, {Year: 2012, Style: StyleSecondary}}, 2010, 2014)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := got[len(got)-1]
	if last.Style != StyleSecondary || last.Title != "" {
		t.Errorf("implicit period = %+v, want secondary style without title", last)
	}
}

func TestParseStyle(t *testing.T) {
	cases := map[string]Style{
		"primary":   StylePrimary,
		"black":     StylePrimary,
		"":          StylePrimary,
		"secondary": StyleSecondary,
		"RED":       StyleSecondary,
	}
	for in, want := range cases {
		got, err := ParseStyle(in)
		if err != nil {
			t.Errorf("ParseStyle(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseStyle(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseStyle("green"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestFormatValue(t *testing.T) {
	one := 1
	tests := []struct {
		name string
		d    Dataset
		v    float64
		want string
	}{
		{name: "plain integer", d: Dataset{}, v: 42, want: "42"},
		{name: "comma decimal", d: Dataset{}, v: 7.25, want: "7,25"},
		{name: "unit suffix", d: Dataset{Unit: "%"}, v: 5.5, want: "5,5 %"},
		{name: "precision rounding", d: Dataset{Precision: &one, Unit: "Mrd. €"}, v: 3.14159, want: "3,1 Mrd. €"},
		{name: "precision pads", d: Dataset{Precision: &one}, v: 3, want: "3,0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.FormatValue(tt.v); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestRepository(t *testing.T) {
	repo := NewRepository(&Dataset{Key: "b"}, &Dataset{Key: "a"})
	repo.Put(&Dataset{Key: "c"})

	keys := repo.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[2] != "c" {
		t.Errorf("Keys() = %v, want [a b c]", keys)
	}
	if repo.Len() != 3 {
		t.Errorf("Len() = %d, want 3", repo.Len())
	}
	if _, err := repo.Get("missing"); !errors.Is(err, ErrUnknownDataset) {
		t.Errorf("expected ErrUnknownDataset, got %v", err)
	}
}

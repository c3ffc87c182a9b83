// ABOUTME: Dataset descriptor pairing a yearly mapping with display metadata (unit, precision, periods).
// ABOUTME: FormatValue renders values the way chart labels show them: comma decimals plus unit suffix.
package series

import (
	"strconv"
	"strings"
)

// Dataset is one "question": a yearly mapping plus the metadata needed to
// label it. Question and Result hold markdown shown around the chart.
type Dataset struct {
	Key       string          `yaml:"-" json:"key"`
	Title     string          `yaml:"title,omitempty" json:"title,omitempty"`
	Question  string          `yaml:"question,omitempty" json:"question,omitempty"`
	Result    string          `yaml:"result,omitempty" json:"result,omitempty"`
	Data      map[int]float64 `yaml:"data" json:"data"`
	Unit      string          `yaml:"unit,omitempty" json:"unit,omitempty"`
	Precision *int            `yaml:"precision,omitempty" json:"precision,omitempty"`
	Periods   []Period        `yaml:"periods,omitempty" json:"periods,omitempty"`
}

// Series returns the dataset's mapping as an ordered series.
func (d *Dataset) Series() Series {
	return FromMapping(d.Data)
}

// ValueAt looks up the exact value recorded for year.
func (d *Dataset) ValueAt(year int) (float64, bool) {
	v, ok := d.Data[year]
	return v, ok
}

// FormatValue renders v for a data label: rounded to Precision when set,
// the decimal point replaced by a comma, and the unit appended.
func (d *Dataset) FormatValue(v float64) string {
	var text string
	if d.Precision != nil {
		text = strconv.FormatFloat(v, 'f', *d.Precision, 64)
	} else {
		text = strconv.FormatFloat(v, 'f', -1, 64)
	}
	text = strings.Replace(text, ".", ",", 1)
	if d.Unit != "" {
		text += " " + d.Unit
	}
	return text
}

// Package frame provides a tabular view of a forecast, indexed by forecast
// step. It is the structure a prediction response converts into for
// inspection and export.
package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptyForecast = errors.New("forecast has no values")
	ErrBoundMismatch = errors.New("confidence bounds have a different length than the forecast")
)

// Frame is a forecast laid out as rows, one per forecast step. Lower and
// Upper are present only when confidence intervals were requested, and Times
// only when the step timestamps are known.
type Frame struct {
	Steps    []int
	Times    []time.Time
	Forecast []float64
	Lower    []float64
	Upper    []float64
}

// New builds a frame from a point forecast and optional bounds. Steps are
// numbered from 1.
func New(forecast, lower, upper []float64) (*Frame, error) {
	if len(forecast) == 0 {
		return nil, ErrEmptyForecast
	}
	if len(lower) != len(upper) {
		return nil, ErrBoundMismatch
	}
	if len(lower) != 0 && len(lower) != len(forecast) {
		return nil, ErrBoundMismatch
	}

	f := &Frame{
		Steps:    make([]int, len(forecast)),
		Forecast: make([]float64, len(forecast)),
	}
	for i := range forecast {
		f.Steps[i] = i + 1
	}
	copy(f.Forecast, forecast)
	if len(lower) != 0 {
		f.Lower = make([]float64, len(lower))
		f.Upper = make([]float64, len(upper))
		copy(f.Lower, lower)
		copy(f.Upper, upper)
	}
	return f, nil
}

// WithTimes attaches step timestamps extrapolated from the end of the input
// series at the given interval.
func (f *Frame) WithTimes(last time.Time, interval time.Duration) *Frame {
	f.Times = make([]time.Time, len(f.Steps))
	for i := range f.Steps {
		f.Times[i] = last.Add(interval * time.Duration(i+1))
	}
	return f
}

// HasBounds reports whether the frame carries confidence bounds.
func (f *Frame) HasBounds() bool {
	return len(f.Lower) != 0
}

func (f *Frame) header() []string {
	cols := []string{"step"}
	if len(f.Times) != 0 {
		cols = append(cols, "time")
	}
	cols = append(cols, "forecast")
	if f.HasBounds() {
		cols = append(cols, "lower", "upper")
	}
	return cols
}

func (f *Frame) row(i int) []string {
	row := []string{strconv.Itoa(f.Steps[i])}
	if len(f.Times) != 0 {
		row = append(row, f.Times[i].Format(time.RFC3339))
	}
	row = append(row, strconv.FormatFloat(f.Forecast[i], 'f', 4, 64))
	if f.HasBounds() {
		row = append(row,
			strconv.FormatFloat(f.Lower[i], 'f', 4, 64),
			strconv.FormatFloat(f.Upper[i], 'f', 4, 64))
	}
	return row
}

// String renders the frame as an aligned text table.
func (f *Frame) String() string {
	rows := make([][]string, 0, len(f.Steps)+1)
	rows = append(rows, f.header())
	for i := range f.Steps {
		rows = append(rows, f.row(i))
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%*s", widths[i], cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteCSV writes the frame to w in CSV form with a header row.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.header()); err != nil {
		return err
	}
	for i := range f.Steps {
		if err := cw.Write(f.row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Stats describes the point forecast of a frame.
type Stats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summary computes descriptive statistics over the point forecast.
func (f *Frame) Summary() Stats {
	mean, std := stat.MeanStdDev(f.Forecast, nil)
	s := Stats{
		Mean:   mean,
		StdDev: std,
		Min:    f.Forecast[0],
		Max:    f.Forecast[0],
	}
	for _, v := range f.Forecast[1:] {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}

// Package series provides the univariate time-series input type accepted by
// the forecasting client. A series is a slice of observations, optionally
// paired with a strictly increasing time index.
package series

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNoObservations  = errors.New("series has no observations")
	ErrLenMismatch     = errors.New("time index has a different length than observations")
	ErrNonMonotonic    = errors.New("time index is not strictly increasing")
	ErrNonFiniteValue  = errors.New("series contains a NaN or infinite value")
	ErrNoTimeIndex     = errors.New("series has no time index")
	ErrIrregularSeries = errors.New("cannot infer a sampling interval")
)

// Series is an ordered sequence of numeric observations. Times is optional;
// when present it has the same length as Values and is strictly increasing.
type Series struct {
	Values []float64
	Times  []time.Time
}

// FromValues builds a series from plain observations with no time index.
func FromValues(values []float64) (Series, error) {
	if len(values) == 0 {
		return Series{}, ErrNoObservations
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Series{}, fmt.Errorf("observation %d: %w", i, ErrNonFiniteValue)
		}
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	return Series{Values: vals}, nil
}

// New builds a time-indexed series. The time index must be strictly
// increasing and aligned with the observations.
func New(t []time.Time, values []float64) (Series, error) {
	s, err := FromValues(values)
	if err != nil {
		return Series{}, err
	}
	if len(t) != len(values) {
		return Series{}, fmt.Errorf(
			"time index has length %d, observations have length %d: %w",
			len(t), len(values), ErrLenMismatch,
		)
	}
	for i := 1; i < len(t); i++ {
		if !t[i].After(t[i-1]) {
			return Series{}, fmt.Errorf("index %d: %w", i, ErrNonMonotonic)
		}
	}
	idx := make([]time.Time, len(t))
	copy(idx, t)
	s.Times = idx
	return s, nil
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.Values)
}

// Interval infers the sampling interval from the time index. It returns an
// error for series without a time index or with fewer than two points, and
// for irregularly spaced series.
func (s Series) Interval() (time.Duration, error) {
	if len(s.Times) == 0 {
		return 0, ErrNoTimeIndex
	}
	if len(s.Times) < 2 {
		return 0, ErrIrregularSeries
	}
	interval := s.Times[1].Sub(s.Times[0])
	for i := 2; i < len(s.Times); i++ {
		if s.Times[i].Sub(s.Times[i-1]) != interval {
			return 0, fmt.Errorf("gap at index %d: %w", i, ErrIrregularSeries)
		}
	}
	return interval, nil
}

// Tail returns the last n observations, or the whole series if it is shorter.
func (s Series) Tail(n int) []float64 {
	if n >= len(s.Values) {
		return s.Values
	}
	return s.Values[len(s.Values)-n:]
}

// Copy returns a deep copy of the series.
func (s Series) Copy() Series {
	out := Series{Values: make([]float64, len(s.Values))}
	copy(out.Values, s.Values)
	if s.Times != nil {
		out.Times = make([]time.Time, len(s.Times))
		copy(out.Times, s.Times)
	}
	return out
}

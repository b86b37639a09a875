package series

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// GenerateTimes returns n timestamps at the given interval ending just before
// now, truncated to whole minutes.
func GenerateTimes(n int, interval time.Duration, nowFunc func() time.Time) []time.Time {
	t := make([]time.Time, 0, n)
	ct := nowFunc().Truncate(time.Minute).Add(-time.Duration(n) * interval)
	for i := 0; i < n; i++ {
		t = append(t, ct.Add(interval*time.Duration(i)))
	}
	return t
}

// Trend returns n values rising linearly from start to end.
func Trend(n int, start, end float64) []float64 {
	y := make([]float64, n)
	if n == 1 {
		y[0] = start
		return y
	}
	step := (end - start) / float64(n-1)
	for i := range y {
		y[i] = start + step*float64(i)
	}
	return y
}

// Seasonal returns n values of a sine wave with the given amplitude and
// period measured in samples.
func Seasonal(n int, amplitude float64, period int) []float64 {
	y := make([]float64, n)
	for i := range y {
		y[i] = amplitude * math.Sin(2.0*math.Pi*float64(i)/float64(period))
	}
	return y
}

// Noise returns n samples of gaussian noise with the given standard
// deviation. The seed makes generated fixtures reproducible.
func Noise(n int, stddev float64, seed uint64) []float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: stddev,
		Src:   rand.NewSource(seed),
	}
	y := make([]float64, n)
	for i := range y {
		y[i] = dist.Rand()
	}
	return y
}

// Sum adds the component slices element-wise into a new slice. All components
// must have the same length.
func Sum(components ...[]float64) []float64 {
	if len(components) == 0 {
		return nil
	}
	y := make([]float64, len(components[0]))
	copy(y, components[0])
	for _, c := range components[1:] {
		floats.Add(y, c)
	}
	return y
}

// Package chart renders a forecast returned by the service as an HTML line
// chart, with the confidence band when present.
package chart

import (
	"errors"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"tsfm/client"
	"tsfm/series"
)

var ErrNoTimeIndex = errors.New("chart requires a time-indexed series")

// LineForecast draws the observed series followed by the forecast, plus
// upper/lower bound series when the response carries confidence intervals.
func LineForecast(title string, s series.Series, resp *client.PredictResponse) (*charts.Line, error) {
	interval, err := s.Interval()
	if err != nil {
		return nil, ErrNoTimeIndex
	}

	n := s.Len()
	h := len(resp.Forecast)
	t := make([]time.Time, 0, n+h)
	t = append(t, s.Times...)
	last := s.Times[n-1]
	for i := 0; i < h; i++ {
		t = append(t, last.Add(interval*time.Duration(i+1)))
	}

	actual := make([]opts.LineData, 0, n)
	for _, v := range s.Values {
		actual = append(actual, opts.LineData{Value: v})
	}

	// forecast series are padded so they start where the history ends
	pad := make([]opts.LineData, n)
	for i := range pad {
		pad[i] = opts.LineData{Value: "-"}
	}
	forecast := append(append([]opts.LineData{}, pad...), lineData(resp.Forecast)...)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
	)
	line.SetXAxis(t).
		AddSeries("Actual", actual).
		AddSeries("Forecast", forecast)

	if ci := resp.ConfidenceIntervals; ci != nil {
		upper := append(append([]opts.LineData{}, pad...), lineData(ci.Upper)...)
		lower := append(append([]opts.LineData{}, pad...), lineData(ci.Lower)...)
		line.AddSeries("Upper", upper).
			AddSeries("Lower", lower)
	}
	return line, nil
}

func lineData(vals []float64) []opts.LineData {
	data := make([]opts.LineData, 0, len(vals))
	for _, v := range vals {
		data = append(data, opts.LineData{Value: v})
	}
	return data
}

// RenderForecast writes a standalone HTML page with the forecast chart to w.
func RenderForecast(w io.Writer, title string, s series.Series, resp *client.PredictResponse) error {
	line, err := LineForecast(title, s, resp)
	if err != nil {
		return err
	}
	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}

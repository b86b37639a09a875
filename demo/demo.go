// Package demo walks through the client's synchronous API against a running
// forecasting service. Each example is guarded at its call boundary: a
// failing example reports its error and the remaining examples still run.
package demo

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"tsfm/client"
	"tsfm/series"
)

const (
	chronosModel = "chronos-t5-small"
	totoModel    = "toto-open-base-1.0"
)

// Run executes the example sequence, writing progress to w. It always runs
// every example and returns the number of examples that failed.
func Run(ctx context.Context, w io.Writer, c *client.Client) int {
	fmt.Fprintln(w, "TSFM Client - Simple Usage Examples")
	fmt.Fprintln(w, strings.Repeat("=", 50))

	failures := 0
	for _, ex := range []struct {
		name string
		fn   func(context.Context, io.Writer, *client.Client) error
	}{
		{"Quick Prediction (Package Function)", quickPrediction},
		{"Client Instance (Multiple Predictions)", clientInstance},
		{"Time-Indexed Series", timeIndexedSeries},
		{"Different Models", differentModels},
		{"Model Info & Health Check", infoAndHealth},
	} {
		fmt.Fprintf(w, "\n%s\n%s\n", ex.name, strings.Repeat("-", 40))
		if err := ex.fn(ctx, w, c); err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			failures++
		}
	}

	fmt.Fprintln(w, "\nAll examples completed.")
	return failures
}

// quickPrediction uses the package-level convenience function, the shortest
// path to a forecast.
func quickPrediction(ctx context.Context, w io.Writer, _ *client.Client) error {
	data := []float64{10, 12, 13, 15, 17, 16, 18, 20, 22, 25}
	fmt.Fprintf(w, "input data: %v\n", data)

	resp, err := client.Predict(ctx, data, client.WithHorizon(5))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "forecast: %v\n", resp.Forecast)
	fmt.Fprintf(w, "model: %s\n", resp.ModelName)
	fmt.Fprintf(w, "metadata: %v\n", resp.Metadata)
	return nil
}

// clientInstance reuses one client for several calls: model listing, a plain
// prediction, and one with confidence intervals.
func clientInstance(ctx context.Context, w io.Writer, c *client.Client) error {
	models, err := c.ListModels(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "available models: %v\n", models)

	s, err := series.FromValues([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	if err != nil {
		return err
	}

	resp, err := c.Predict(ctx, s)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "simple forecast: %v\n", resp.Forecast)

	resp, err = c.Predict(ctx, s,
		client.WithHorizon(3),
		client.WithConfidenceIntervals())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "forecast with CI: %v\n", resp.Forecast)
	if ci := resp.ConfidenceIntervals; ci != nil {
		fmt.Fprintf(w, "confidence intervals: lower=%v upper=%v\n", ci.Lower, ci.Upper)
	}
	return nil
}

// timeIndexedSeries predicts from a daily series with a time index and an
// explicitly selected model.
func timeIndexedSeries(ctx context.Context, w io.Writer, c *client.Client) error {
	n := 20
	t := series.GenerateTimes(n, 24*time.Hour, time.Now)
	y := series.Sum(
		series.Trend(n, 100, 120),
		series.Noise(n, 1.0, 7),
	)
	s, err := series.New(t, y)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "series length: %d\n", s.Len())
	fmt.Fprintf(w, "last values: %.2f\n", s.Tail(5))

	resp, err := c.Predict(ctx, s,
		client.WithHorizon(7),
		client.WithModel(chronosModel))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "forecast: %v\n", resp.Forecast)
	return nil
}

// differentModels runs the same input through two named models. The second
// model is optional on a server, so its failure is reported inline rather
// than failing the example.
func differentModels(ctx context.Context, w io.Writer, c *client.Client) error {
	s, err := series.FromValues([]float64{5, 6, 7, 8, 9, 10, 11, 12, 13, 14})
	if err != nil {
		return err
	}

	resp, err := c.Predict(ctx, s,
		client.WithHorizon(3),
		client.WithModel(chronosModel))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %v\n", chronosModel, resp.Forecast)

	resp, err = c.Predict(ctx, s,
		client.WithHorizon(3),
		client.WithModel(totoModel))
	if err != nil {
		fmt.Fprintf(w, "%s not available: %v\n", totoModel, err)
		return nil
	}
	fmt.Fprintf(w, "%s: %v\n", totoModel, resp.Forecast)
	return nil
}

// infoAndHealth checks service liveness and fetches model details.
func infoAndHealth(ctx context.Context, w io.Writer, c *client.Client) error {
	health, err := c.HealthCheck(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "health: %s (models loaded: %d)\n", health.Status, health.ModelsLoaded)

	info, err := c.GetModelInfo(ctx, chronosModel)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "model info: %s - %s (max horizon %d)\n",
		info.Name, info.Description, info.MaxHorizon)
	return nil
}

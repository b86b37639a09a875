// Command forecastplot builds a synthetic daily sales series, requests a
// forecast with confidence intervals, prints the result as a table, and
// renders an HTML chart of the forecast.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tsfm/chart"
	"tsfm/client"
	"tsfm/series"
)

func main() {
	var (
		baseURL = flag.String("base-url", client.DefaultBaseURL, "forecasting service endpoint")
		horizon = flag.Int("horizon", 10, "forecast steps to request")
		days    = flag.Int("days", 50, "length of the synthetic sales series")
		out     = flag.String("out", "forecast.html", "output HTML file")
	)
	flag.Parse()

	c, err := client.New(client.WithBaseURL(*baseURL))
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	// daily sales with a rising trend, weekly seasonality and gaussian noise
	n := *days
	t := series.GenerateTimes(n, 24*time.Hour, time.Now)
	y := series.Sum(
		series.Trend(n, 100, 200),
		series.Seasonal(n, 10, 7),
		series.Noise(n, 10, 42),
	)
	s, err := series.New(t, y)
	if err != nil {
		log.Fatalf("Failed to build series: %v", err)
	}

	fmt.Printf("Sample data (last 5 days): %.2f\n\n", s.Tail(5))

	resp, err := c.Predict(context.Background(), s,
		client.WithHorizon(*horizon),
		client.WithConfidenceIntervals())
	if err != nil {
		log.Fatalf("Prediction failed: %v", err)
	}

	f, err := resp.Frame()
	if err != nil {
		log.Fatalf("Failed to build frame: %v", err)
	}
	fmt.Printf("%d-step forecast from %s:\n\n%s\n", *horizon, resp.ModelName, f)

	p := message.NewPrinter(language.English)
	stats := f.Summary()
	p.Printf("summary: mean=%.2f stddev=%.2f min=%.2f max=%.2f\n",
		stats.Mean, stats.StdDev, stats.Min, stats.Max)

	file, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	defer file.Close()
	if err := chart.RenderForecast(file, "Sales Forecast", s, resp); err != nil {
		log.Fatalf("Failed to render chart: %v", err)
	}
	fmt.Printf("chart written to %s\n", *out)
}

package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"tsfm/frame"
	"tsfm/history"
	"tsfm/series"
)

// DefaultHorizon is used when a prediction does not specify how many steps to
// forecast.
const DefaultHorizon = 5

type predictRequest struct {
	Data                []float64 `json:"data" validate:"required,min=1"`
	Timestamps          []int64   `json:"timestamps,omitempty"`
	ForecastHorizon     int       `json:"forecast_horizon" validate:"gte=1"`
	ConfidenceIntervals bool      `json:"confidence_intervals"`
	Model               string    `json:"model,omitempty"`
}

type predictResponse struct {
	Forecast            []float64            `json:"forecast"`
	ModelName           string               `json:"model_name"`
	Metadata            map[string]any       `json:"metadata"`
	ConfidenceIntervals *ConfidenceIntervals `json:"confidence_intervals"`
}

// ConfidenceIntervals are per-step bounds around a point forecast.
type ConfidenceIntervals struct {
	Lower []float64 `json:"lower"`
	Upper []float64 `json:"upper"`
	Level float64   `json:"level"`
}

// PredictResponse is the result of a prediction call.
type PredictResponse struct {
	Forecast            []float64
	ModelName           string
	Metadata            map[string]any
	ConfidenceIntervals *ConfidenceIntervals

	input series.Series
}

// Frame lays the forecast out as a step-indexed table. When the input series
// carried a regular time index, forecast steps get extrapolated timestamps.
func (r *PredictResponse) Frame() (*frame.Frame, error) {
	var lower, upper []float64
	if r.ConfidenceIntervals != nil {
		lower = r.ConfidenceIntervals.Lower
		upper = r.ConfidenceIntervals.Upper
	}
	f, err := frame.New(r.Forecast, lower, upper)
	if err != nil {
		return nil, err
	}
	if interval, err := r.input.Interval(); err == nil {
		f = f.WithTimes(r.input.Times[len(r.input.Times)-1], interval)
	}
	return f, nil
}

// PredictOption adjusts a single prediction call.
type PredictOption func(*predictRequest)

// WithHorizon sets the number of future steps to forecast.
func WithHorizon(n int) PredictOption {
	return func(r *predictRequest) { r.ForecastHorizon = n }
}

// WithModel selects a named model instead of the service default.
func WithModel(name string) PredictOption {
	return func(r *predictRequest) { r.Model = name }
}

// WithConfidenceIntervals asks the service to return lower and upper bounds
// alongside the point forecast.
func WithConfidenceIntervals() PredictOption {
	return func(r *predictRequest) { r.ConfidenceIntervals = true }
}

// Predict submits the series and returns the model's forecast.
func (c *Client) Predict(ctx context.Context, s series.Series, opts ...PredictOption) (*PredictResponse, error) {
	req := predictRequest{
		Data:            s.Values,
		ForecastHorizon: DefaultHorizon,
	}
	for _, t := range s.Times {
		req.Timestamps = append(req.Timestamps, t.Unix())
	}
	for _, opt := range opts {
		opt(&req)
	}

	if req.ForecastHorizon < 1 {
		return nil, ErrInvalidHorizon
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid prediction request: %w", err)
	}

	start := time.Now()
	var resp predictResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/predict", req, &resp)
	c.recordHistory(req, resp.ModelName, start, err)
	if err != nil {
		return nil, err
	}
	if len(resp.Forecast) == 0 {
		return nil, ErrEmptyForecast
	}

	c.logger.Debug("prediction completed",
		zap.String("model", resp.ModelName),
		zap.Int("horizon", req.ForecastHorizon),
		zap.Int("input_points", len(req.Data)),
		zap.Duration("latency", time.Since(start)))

	return &PredictResponse{
		Forecast:            resp.Forecast,
		ModelName:           resp.ModelName,
		Metadata:            resp.Metadata,
		ConfidenceIntervals: resp.ConfidenceIntervals,
		input:               s.Copy(),
	}, nil
}

func (c *Client) recordHistory(req predictRequest, model string, start time.Time, err error) {
	if c.store == nil {
		return
	}
	entry := history.Entry{
		Model:       req.Model,
		Horizon:     req.ForecastHorizon,
		InputPoints: len(req.Data),
		LatencyMS:   time.Since(start).Milliseconds(),
		Status:      "ok",
		CreatedAt:   start,
	}
	if model != "" {
		entry.Model = model
	}
	if err != nil {
		entry.Status = "error"
		entry.Error = err.Error()
	}
	if recErr := c.store.Record(entry); recErr != nil {
		c.logger.Warn("failed to record prediction history", zap.Error(recErr))
	}
}

package client

import (
	"context"
	"sync"

	"tsfm/series"
)

var (
	defaultMu     sync.Mutex
	defaultClient *Client
)

// Default returns a process-wide client built from environment defaults. It
// is what the package-level Predict uses for quick one-off calls.
func Default() (*Client, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClient == nil {
		c, err := New()
		if err != nil {
			return nil, err
		}
		defaultClient = c
	}
	return defaultClient, nil
}

// SetDefault replaces the process-wide client used by the package-level
// Predict.
func SetDefault(c *Client) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = c
}

// Predict is a one-off prediction against the default client: plain values
// in, forecast out.
func Predict(ctx context.Context, values []float64, opts ...PredictOption) (*PredictResponse, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	s, err := series.FromValues(values)
	if err != nil {
		return nil, err
	}
	return c.Predict(ctx, s, opts...)
}

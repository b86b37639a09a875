package client

import (
	"context"
	"net/http"
)

// Health is the service's liveness report.
type Health struct {
	Status       string `json:"status"`
	ModelsLoaded int    `json:"models_loaded"`
	Version      string `json:"version"`
}

// OK reports whether the service considers itself healthy.
func (h *Health) OK() bool {
	return h.Status == "ok" || h.Status == "healthy"
}

// HealthCheck queries the service's health endpoint. Health checks are never
// retried so that a flapping service is observed as it is.
func (c *Client) HealthCheck(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.doOnce(ctx, http.MethodGet, c.baseURL+"/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

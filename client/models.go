package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const listCacheKey = "models"

// ModelInfo describes a model hosted by the service.
type ModelInfo struct {
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	MaxContextLength int            `json:"max_context_length"`
	MaxHorizon       int            `json:"max_horizon"`
	Loaded           bool           `json:"loaded"`
	Metadata         map[string]any `json:"metadata"`
}

type listModelsResponse struct {
	Models []string `json:"models"`
}

// ListModels returns the names of the models the service can serve. Results
// are cached for the configured TTL.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	if models, ok := c.listCache.Get(listCacheKey); ok {
		return models, nil
	}

	var resp listModelsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/models", nil, &resp); err != nil {
		return nil, err
	}
	c.listCache.Add(listCacheKey, resp.Models)
	return resp.Models, nil
}

// GetModelInfo returns details for a named model. A 404 from the service is
// reported as ErrModelNotFound. Results are cached for the configured TTL.
func (c *Client) GetModelInfo(ctx context.Context, name string) (*ModelInfo, error) {
	if name == "" {
		return nil, errors.New("model name is required")
	}
	if info, ok := c.modelCache.Get(name); ok {
		return info, nil
	}

	var info ModelInfo
	err := c.doJSON(ctx, http.MethodGet, "/v1/models/"+url.PathEscape(name), nil, &info)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%q: %w", name, ErrModelNotFound)
		}
		return nil, err
	}
	c.modelCache.Add(name, &info)
	return &info, nil
}

package client

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey  = errors.New("api key is required, set TSFM_API_KEY or use WithAPIKey")
	ErrModelNotFound  = errors.New("model not found")
	ErrEmptyForecast  = errors.New("service returned an empty forecast")
	ErrInvalidHorizon = errors.New("forecast horizon must be at least 1")
)

// APIError is a non-2xx response from the forecasting service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tsfm api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("tsfm api returned status %d", e.StatusCode)
}

// Temporary reports whether the error is worth retrying.
func (e *APIError) Temporary() bool {
	switch e.StatusCode {
	case 502, 503, 504:
		return true
	}
	return false
}

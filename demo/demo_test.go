package demo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsfm/client"
)

// fakeServer answers the subset of the API the examples touch with canned
// responses.
func fakeServer(t *testing.T, withToto bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "models_loaded": 2})
	})
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"models": []string{chronosModel, totoModel}})
	})
	mux.HandleFunc("/v1/models/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/v1/models/")
		json.NewEncoder(w).Encode(map[string]any{
			"name": name, "description": "test model", "max_horizon": 64, "loaded": true,
		})
	})
	mux.HandleFunc("/v1/predict", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Data                []float64 `json:"data"`
			ForecastHorizon     int       `json:"forecast_horizon"`
			ConfidenceIntervals bool      `json:"confidence_intervals"`
			Model               string    `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if req.Model == totoModel && !withToto {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": "model_not_found", "message": "toto is not loaded"},
			})
			return
		}
		model := req.Model
		if model == "" {
			model = chronosModel
		}
		resp := map[string]any{"forecast": make([]float64, req.ForecastHorizon), "model_name": model}
		if req.ConfidenceIntervals {
			resp["confidence_intervals"] = map[string]any{
				"lower": make([]float64, req.ForecastHorizon),
				"upper": make([]float64, req.ForecastHorizon),
				"level": 0.95,
			}
		}
		json.NewEncoder(w).Encode(resp)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newDemoClient(t *testing.T, baseURL string) *client.Client {
	t.Helper()
	c, err := client.New(
		client.WithBaseURL(baseURL),
		client.WithAPIKey("test-key"),
		client.WithTimeout(2*time.Second),
		client.WithRetry(1, time.Millisecond),
	)
	require.NoError(t, err)
	return c
}

func TestRunAllExamplesSucceed(t *testing.T) {
	srv := fakeServer(t, true)
	c := newDemoClient(t, srv.URL)
	client.SetDefault(c)
	t.Cleanup(func() { client.SetDefault(nil) })

	var out strings.Builder
	failures := Run(context.Background(), &out, c)

	assert.Equal(t, 0, failures)
	assert.Contains(t, out.String(), "Quick Prediction")
	assert.Contains(t, out.String(), "available models:")
	assert.Contains(t, out.String(), "confidence intervals:")
	assert.Contains(t, out.String(), "health: ok")
	assert.Contains(t, out.String(), "All examples completed.")
}

func TestRunMissingOptionalModel(t *testing.T) {
	srv := fakeServer(t, false)
	c := newDemoClient(t, srv.URL)
	client.SetDefault(c)
	t.Cleanup(func() { client.SetDefault(nil) })

	var out strings.Builder
	failures := Run(context.Background(), &out, c)

	// an unavailable optional model is reported but is not a failure
	assert.Equal(t, 0, failures)
	assert.Contains(t, out.String(), totoModel+" not available")
}

func TestRunUnreachableService(t *testing.T) {
	srv := fakeServer(t, true)
	srv.Close() // nothing is listening anymore
	c := newDemoClient(t, srv.URL)
	client.SetDefault(c)
	t.Cleanup(func() { client.SetDefault(nil) })

	var out strings.Builder
	failures := Run(context.Background(), &out, c)

	// every example fails, none stops the others, the run completes
	assert.Equal(t, 5, failures)
	assert.Equal(t, 5, strings.Count(out.String(), "\nerror: "))
	assert.Contains(t, out.String(), "All examples completed.")
}

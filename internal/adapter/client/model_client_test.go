package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelClient_Predict(t *testing.T) {
	t.Run("successful prediction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/predict", r.URL.Path)
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req PredictRequest
			err := json.NewDecoder(r.Body).Decode(&req)
			require.NoError(t, err)
			assert.Equal(t, 90.0, req.Nitrogen)
			assert.Equal(t, 2, req.TopK)

			resp := PredictResponse{
				Predictions:   []string{"rice", "maize"},
				Probabilities: []float64{0.7, 0.2},
				RawOutput:     []float64{0.7, 0.2, 0.1},
			}
			w.Header().Set("Content-Type", "application/json")
			err = json.NewEncoder(w).Encode(resp)
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewModelClient(server.URL+"/", 5*time.Second)
		result, err := client.Predict(context.Background(), &PredictRequest{Nitrogen: 90, Phosphorus: 42, Potassium: 43, TopK: 2})

		require.NoError(t, err)
		assert.Equal(t, []string{"rice", "maize"}, result.Predictions)
		assert.Equal(t, []float64{0.7, 0.2}, result.Probabilities)
		assert.Len(t, result.RawOutput, 3)
	})

	t.Run("detail is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, err := w.Write([]byte(`{"detail":"Model not loaded"}`))
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewModelClient(server.URL, 5*time.Second)
		_, err := client.Predict(context.Background(), &PredictRequest{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "Model not loaded")
	})

	t.Run("plain error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, err := w.Write([]byte("upstream down"))
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewModelClient(server.URL, 5*time.Second)
		_, err := client.Predict(context.Background(), &PredictRequest{})

		assert.ErrorContains(t, err, "502: upstream down")
	})

	t.Run("connection error", func(t *testing.T) {
		client := NewModelClient("http://localhost:99999", 1*time.Second)
		_, err := client.Predict(context.Background(), &PredictRequest{})

		assert.Error(t, err)
	})
}

func TestModelClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"status":"ok","model_loaded":true,"model_path":"./crop.gob"}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	client := NewModelClient(server.URL, 5*time.Second)
	result, err := client.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", result.Status)
	assert.True(t, result.ModelLoaded)
	assert.Equal(t, "./crop.gob", result.ModelPath)
}

func TestModelClient_Reload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reload-model", r.URL.Path)
			assert.Equal(t, "POST", r.Method)
			_, err := w.Write([]byte(`{"status":"ok","model_loaded":true}`))
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewModelClient(server.URL, 5*time.Second)
		result, err := client.Reload(context.Background())

		require.NoError(t, err)
		assert.True(t, result.ModelLoaded)
	})

	t.Run("failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, err := w.Write([]byte(`{"detail":"Reload failed: open crop.gob: no such file or directory"}`))
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewModelClient(server.URL, 5*time.Second)
		_, err := client.Reload(context.Background())

		assert.ErrorContains(t, err, "Reload failed")
	})
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PredictRequest represents a request to the model server
type PredictRequest struct {
	Nitrogen    float64 `json:"nitrogen"`
	Phosphorus  float64 `json:"phosphorus"`
	Potassium   float64 `json:"potassium"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
	TopK        int     `json:"top_k"`
}

// PredictResponse represents the model server's top-k answer
type PredictResponse struct {
	Predictions   []string  `json:"predictions"`
	Probabilities []float64 `json:"probabilities"`
	RawOutput     []float64 `json:"raw_output"`
}

// HealthResponse represents the model server status
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelPath   string `json:"model_path"`
}

// ReloadResponse represents a successful reload
type ReloadResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// ModelClient is an HTTP client for the model server
type ModelClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewModelClient creates a new model server client
func NewModelClient(baseURL string, timeout time.Duration) *ModelClient {
	return &ModelClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict sends one feature row for prediction
func (c *ModelClient) Predict(ctx context.Context, reqBody *PredictRequest) (*PredictResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var result PredictResponse
	if err := c.do(ctx, http.MethodPost, "/predict", bytes.NewReader(body), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health reads the model server status
func (c *ModelClient) Health(ctx context.Context) (*HealthResponse, error) {
	var result HealthResponse
	if err := c.do(ctx, http.MethodGet, "/", http.NoBody, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reload asks the model server to reload its artifact
func (c *ModelClient) Reload(ctx context.Context) (*ReloadResponse, error) {
	var result ReloadResponse
	if err := c.do(ctx, http.MethodPost, "/reload-model", http.NoBody, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *ModelClient) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != http.NoBody {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("model server returned status %d", resp.StatusCode)
		}
		var detail struct {
			Detail any `json:"detail"`
		}
		if json.Unmarshal(respBody, &detail) == nil && detail.Detail != nil {
			return fmt.Errorf("model server returned status %d: %v", resp.StatusCode, detail.Detail)
		}
		return fmt.Errorf("model server returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

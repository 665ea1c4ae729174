package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	workbench "github.com/insightpro/go-workbench/components/workbench"
)

// HTTPConfig configures the HTTP insight client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// HTTPClient talks to a remote text-generation service over REST.
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting a live generation API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("insight: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  httpClient,
	}, nil
}

var _ workbench.InsightClient = (*HTTPClient)(nil)

// Generate implements workbench.InsightClient by calling the remote
// analysis endpoint with the sampled rows.
func (c *HTTPClient) Generate(ctx context.Context, req workbench.InsightRequest) (string, error) {
	payload := generateRequest{
		Model:    c.model,
		Title:    req.Title,
		Language: req.Language,
		Rows:     req.Rows,
	}
	var resp generateResponse
	if err := c.do(ctx, http.MethodPost, "/v1/insights/generate", payload, &resp); err != nil {
		return "", err
	}
	if resp.Text == "" {
		return "", fmt.Errorf("insight: remote returned an empty analysis")
	}
	return resp.Text, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("insight: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("insight: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("insight: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("insight: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("insight: decode response: %w", err)
	}
	return nil
}

type generateRequest struct {
	Model    string          `json:"model,omitempty"`
	Title    string          `json:"title"`
	Language string          `json:"language"`
	Rows     []workbench.Row `json:"rows"`
}

type generateResponse struct {
	Text string `json:"text"`
}

package api

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

const maxResponseBytes = 2 << 20

// Client wraps the outbound calls to the analysis backend
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// New creates a client for the backend at baseURL
func New(baseURL string, timeout time.Duration, userAgent string, httpProxy, httpsProxy, noProxy string) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: newProxyFunc(httpProxy, httpsProxy, noProxy),
			},
		},
	}
}

// analyzeRequest is the fixed outbound payload shape
type analyzeRequest struct {
	ProductURL   string `json:"product_url"`
	ForceRefresh bool   `json:"force_refresh"`
}

// errorBody is the backend's explanation envelope on failure responses
type errorBody struct {
	Detail string `json:"detail"`
}

// AnalyzeOptions carries the per-call knobs
type AnalyzeOptions struct {
	// ForceRefresh asks the backend to bypass its server-side cache.
	ForceRefresh bool
	// Credential, when non-empty, is attached as a bearer token.
	Credential string
}

// Analyze issues exactly one POST /analyze request and returns the decoded
// JSON body untyped. The caller owns shape checking and sanitization. Failures
// are normalized into *Error; no retry is attempted.
func (c *Client) Analyze(ctx context.Context, productURL string, opts AnalyzeOptions) (interface{}, error) {
	body, err := json.Marshal(analyzeRequest{
		ProductURL:   productURL,
		ForceRefresh: opts.ForceRefresh,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if opts.Credential != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetworkUnavailable, cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &Error{Kind: KindRateLimited, Status: resp.StatusCode, Detail: decodeDetail(respBody)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Kind: KindRequestFailed, Status: resp.StatusCode, Detail: decodeDetail(respBody)}
	}

	var raw interface{}
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return raw, nil
}

// decodeDetail extracts the backend's explanation from a failure body.
// A missing or malformed body yields the empty string.
func decodeDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	return eb.Detail
}

// HealthStatus is the backend health probe result
type HealthStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Health probes GET /health. Failures are folded into an "unhealthy" status
// rather than returned as errors.
func (c *Client) Health(ctx context.Context) HealthStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return HealthStatus{Status: "unhealthy", Error: err.Error()}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthStatus{Status: "unhealthy", Error: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return HealthStatus{Status: "unhealthy", Error: fmt.Sprintf("health check failed: %d", resp.StatusCode)}
	}

	var status HealthStatus
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&status); err != nil {
		return HealthStatus{Status: "unhealthy", Error: fmt.Sprintf("decode health response: %v", err)}
	}
	return status
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(baseURL string) *Client {
	return New(baseURL, 5*time.Second, "test-agent", "", "", "")
}

func TestAnalyze_Success(t *testing.T) {
	var gotBody analyzeRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/analyze" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"trust_score": 72, "risk_level": "low"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	raw, err := client.Analyze(context.Background(), "https://www.amazon.in/dp/XYZ", AnalyzeOptions{
		ForceRefresh: true,
		Credential:   "tok-123",
	})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		t.Fatalf("expected object response, got %T", raw)
	}
	if obj["trust_score"] != float64(72) {
		t.Errorf("trust_score = %v, want 72", obj["trust_score"])
	}
	if gotBody.ProductURL != "https://www.amazon.in/dp/XYZ" || !gotBody.ForceRefresh {
		t.Errorf("unexpected request payload: %+v", gotBody)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestAnalyze_NoCredentialOmitsHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("Authorization header should be absent, got %q", auth)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Analyze(context.Background(), "https://example.com/p", AnalyzeOptions{}); err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
}

func TestAnalyze_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"detail": "slow down"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Analyze(context.Background(), "https://example.com/p", AnalyzeOptions{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Kind != KindRateLimited {
		t.Errorf("kind = %v, want KindRateLimited", apiErr.Kind)
	}
	if apiErr.Message() != "slow down" {
		t.Errorf("message = %q, want backend detail", apiErr.Message())
	}
}

func TestAnalyze_RateLimited_GenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Analyze(context.Background(), "https://example.com/p", AnalyzeOptions{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Message() != "Too many requests. Please try again later." {
		t.Errorf("message = %q, want generic rate-limit message", apiErr.Message())
	}
}

func TestAnalyze_RequestFailed(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"with detail", http.StatusBadGateway, `{"detail": "upstream scraper failed"}`, "upstream scraper failed"},
		{"without detail", http.StatusInternalServerError, ``, "Analysis failed with status: 500"},
		{"malformed body", http.StatusBadRequest, `not json`, "Analysis failed with status: 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Analyze(context.Background(), "https://example.com/p", AnalyzeOptions{})
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if apiErr.Kind != KindRequestFailed {
				t.Errorf("kind = %v, want KindRequestFailed", apiErr.Kind)
			}
			if apiErr.Status != tt.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message() != tt.message {
				t.Errorf("message = %q, want %q", apiErr.Message(), tt.message)
			}
		})
	}
}

func TestAnalyze_NetworkUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := newTestClient(server.URL).Analyze(context.Background(), "https://example.com/p", AnalyzeOptions{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Kind != KindNetworkUnavailable {
		t.Errorf("kind = %v, want KindNetworkUnavailable", apiErr.Kind)
	}
	if apiErr.Message() != "Unable to connect to analysis server. Please check your connection." {
		t.Errorf("unexpected message: %q", apiErr.Message())
	}
}

func TestAnalyze_NonObjectBodyDecodes(t *testing.T) {
	// A 2xx body that is valid JSON but not an object is still returned; the
	// flow controller owns the shape check.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer server.Close()

	raw, err := newTestClient(server.URL).Analyze(context.Background(), "https://example.com/p", AnalyzeOptions{})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if raw != nil {
		t.Errorf("expected nil for JSON null, got %v", raw)
	}
}

func TestAnalyze_SingleAttempt(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, _ = newTestClient(server.URL).Analyze(context.Background(), "https://example.com/p", AnalyzeOptions{})
	if attempts != 1 {
		t.Errorf("attempts = %d, want exactly 1 (no internal retry)", attempts)
	}
}

func TestHealth_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	}))
	defer server.Close()

	status := newTestClient(server.URL).Health(context.Background())
	if status.Status != "healthy" {
		t.Errorf("status = %q, want healthy", status.Status)
	}
	if status.Error != "" {
		t.Errorf("error = %q, want empty", status.Error)
	}
}

func TestHealth_FailureWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	status := newTestClient(server.URL).Health(context.Background())
	if status.Status != "unhealthy" {
		t.Errorf("status = %q, want unhealthy", status.Status)
	}
	if status.Error == "" {
		t.Error("expected error description for unreachable backend")
	}
}

func TestHealth_BadStatusWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	status := newTestClient(server.URL).Health(context.Background())
	if status.Status != "unhealthy" {
		t.Errorf("status = %q, want unhealthy", status.Status)
	}
}

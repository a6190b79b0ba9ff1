package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pranjul332/TrustLens/internal/model"
)

func TestNewSummarizer_RequiresKeyOrEndpoint(t *testing.T) {
	if _, err := NewSummarizer(Config{}); err == nil {
		t.Error("expected error without API key or base URL")
	}
	if _, err := NewSummarizer(Config{APIKey: "sk-test"}); err != nil {
		t.Errorf("unexpected error with API key: %v", err)
	}
	if _, err := NewSummarizer(Config{BaseURL: "http://localhost:11434/v1"}); err != nil {
		t.Errorf("unexpected error with base URL: %v", err)
	}
}

func TestSummarize(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		// Capture the user message for prompt assertions.
		body := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(body)
		gotPrompt = string(body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Most reviews look genuine.  "}, "finish_reason": "stop"}],
			"usage": {"total_tokens": 42}
		}`))
	}))
	defer server.Close()

	s, err := NewSummarizer(Config{APIKey: "sk-test", BaseURL: server.URL, Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("NewSummarizer: %v", err)
	}

	result := model.AnalysisResult{
		TrustScore:     82,
		RiskLevel:      model.RiskLow,
		Recommendation: "Safe to buy",
		KeyInsights: []model.Insight{
			{Title: "Consistent ratings", Description: "No burst patterns", Category: model.CategoryInformational, Severity: model.SeverityLow},
		},
	}

	summary, err := s.Summarize(context.Background(), "https://www.amazon.in/dp/XYZ", result)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary != "Most reviews look genuine." {
		t.Errorf("summary = %q, want trimmed model output", summary)
	}
	if !strings.Contains(gotPrompt, "Safe to buy") || !strings.Contains(gotPrompt, "Consistent ratings") {
		t.Errorf("prompt missing report fields: %s", gotPrompt)
	}
}

func TestSummarize_APIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "upstream down"}}`))
	}))
	defer server.Close()

	s, err := NewSummarizer(Config{APIKey: "sk-test", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewSummarizer: %v", err)
	}
	if _, err := s.Summarize(context.Background(), "https://example.com/p", model.AnalysisResult{}); err == nil {
		t.Error("expected error from failing endpoint")
	}
}

func TestBuildPrompt_SkipsInsightOverflow(t *testing.T) {
	insights := make([]model.Insight, 12)
	for i := range insights {
		insights[i] = model.Insight{Title: "finding", Category: model.CategoryWarning, Severity: model.SeverityMedium}
	}
	prompt := buildPrompt("https://example.com/p", model.AnalysisResult{KeyInsights: insights})

	if !strings.Contains(prompt, "and 4 more findings") {
		t.Errorf("prompt should cap findings, got:\n%s", prompt)
	}
}

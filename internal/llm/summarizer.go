// Package llm produces an optional plain-language summary of an analysis
// result. The summary is presentation-only: it is built strictly from fields
// the backend returned and never feeds back into the result.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/pranjul332/TrustLens/internal/model"
)

// Config holds the summarizer settings
type Config struct {
	Model     string
	APIKey    string
	BaseURL   string // OpenAI-compatible endpoint override (e.g. a local server)
	MaxTokens int
	Timeout   int // seconds
}

// Summarizer turns a sanitized result into a short buyer-facing explanation
type Summarizer struct {
	client *openai.Client
	config Config
}

// NewSummarizer creates a summarizer. An API key is required unless a custom
// BaseURL points at an endpoint that does not check one.
func NewSummarizer(config Config) (*Summarizer, error) {
	if config.APIKey == "" && config.BaseURL == "" {
		return nil, fmt.Errorf("LLM API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Summarize generates a 2-3 sentence explanation of the result
func (s *Summarizer) Summarize(ctx context.Context, productURL string, result model.AnalysisResult) (string, error) {
	modelName := s.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	maxTokens := s.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 400
	}

	timeout := time.Duration(s.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You explain product review trust reports to shoppers. Use only the data in the report; do not invent findings or cite outside sources.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(productURL, result),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("LLM API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildPrompt renders the report data the model is allowed to use
func buildPrompt(productURL string, result model.AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Summarize this review-trust report in 2-3 plain sentences for a shopper.

Product: %s
Trust score: %.0f/100
Risk level: %s
Confidence: %.0f%%
Fake reviews: %.1f%%
Reviews analyzed: %.0f
Recommendation: %s
`,
		productURL,
		result.TrustScore,
		result.RiskLevel,
		result.Confidence*100,
		result.FakeReviewsPercentage,
		result.TotalReviewsAnalyzed,
		result.Recommendation,
	)

	if len(result.KeyInsights) > 0 {
		b.WriteString("\nFindings:\n")
		for i, insight := range result.KeyInsights {
			if i >= 8 {
				fmt.Fprintf(&b, "- ... and %d more findings\n", len(result.KeyInsights)-8)
				break
			}
			fmt.Fprintf(&b, "- [%s/%s] %s: %s\n", insight.Category, insight.Severity, insight.Title, insight.Description)
		}
	}

	b.WriteString("\nDo not mention fields that are zero or missing.")
	return b.String()
}

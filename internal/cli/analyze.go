package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pranjul332/TrustLens/internal/flow"
	"github.com/pranjul332/TrustLens/internal/llm"
	"github.com/pranjul332/TrustLens/internal/model"
	"github.com/pranjul332/TrustLens/internal/render"
	"github.com/pranjul332/TrustLens/internal/validate"
)

var (
	analyzeForceRefresh bool
	analyzeNoCache      bool
	analyzeJSONPath     string
	analyzeTimeout      time.Duration
	analyzePlain        bool
	analyzeLLM          bool
	analyzeLLMModel     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <product-url>",
	Short: "Analyze the reviews of a product listing",
	Long: `Analyze validates the product URL, sends it to the TrustLens backend, and
renders the trust report: overall score, risk level, score breakdown, and the
key findings behind them.

Cached reports are reused when available; pass --refresh to force a fresh
analysis.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd.Context(), args[0])
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeForceRefresh, "refresh", false, "bypass caches and force a fresh analysis")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "disable the local result cache for this run")
	analyzeCmd.Flags().StringVarP(&analyzeJSONPath, "json", "j", "", "also write the report as JSON to a file")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "request timeout (default: from config)")
	analyzeCmd.Flags().BoolVar(&analyzePlain, "plain", false, "plain output without colors")
	analyzeCmd.Flags().BoolVar(&analyzeLLM, "llm", false, "append a plain-language summary (requires OPENAI_API_KEY)")
	analyzeCmd.Flags().StringVar(&analyzeLLMModel, "llm-model", "", "model for the summary (default: from config)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(ctx context.Context, rawURL string) error {
	cfg := loadConfig()
	if analyzeNoCache {
		cfg.Cache.Enabled = false
	}
	if analyzeTimeout > 0 {
		cfg.HTTP.Timeout = analyzeTimeout
	}
	if analyzeLLMModel != "" {
		cfg.LLM.Model = analyzeLLMModel
	}
	r := render.New(analyzePlain || cfg.Output.Plain)

	checked := validate.ProductURL(rawURL)
	if !checked.Valid {
		r.Errorf(os.Stderr, checked.Error)
		return errors.New("invalid product URL")
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Platform: %s\n", checked.Platform)
	}

	tokens, err := tokenSource()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	store := flow.NewPendingStore()
	store.Put(checked.URL)

	controller := flow.NewController(flow.Config{
		Store:        store,
		Tokens:       tokens,
		Client:       newClient(cfg),
		Results:      newResults(cfg),
		ForceRefresh: analyzeForceRefresh,
	})

	outcome := controller.Run(ctx)
	switch outcome.State {
	case flow.StateReady:
		r.Result(os.Stdout, outcome.URL, outcome.Result)
		if analyzeJSONPath != "" {
			if err := r.JSON(outcome.Result, analyzeJSONPath); err != nil {
				return fmt.Errorf("writing JSON report: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Report written to %s\n", analyzeJSONPath)
		}
		if analyzeLLM || cfg.LLM.Enabled {
			summarize(ctx, cfg, r, outcome.URL, outcome.Result)
		}
		return nil
	case flow.StateError:
		r.Errorf(os.Stderr, outcome.Message)
		return errors.New("analysis failed")
	case flow.StateRedirect:
		if outcome.Reason == flow.RedirectSignIn {
			return errors.New("not signed in: run 'trustlens login --token <token>' or set TRUSTLENS_API_TOKEN")
		}
		return errors.New("no product URL staged for analysis")
	default:
		return errors.New("analysis did not complete")
	}
}

// summarize is best-effort: a summary failure never fails the report
func summarize(ctx context.Context, cfg *model.Config, r *render.Renderer, productURL string, result model.AnalysisResult) {
	s, err := llm.NewSummarizer(llm.Config{
		Model:     cfg.LLM.Model,
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		MaxTokens: cfg.LLM.MaxTokens,
		Timeout:   cfg.LLM.Timeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Summary unavailable: %v\n", err)
		return
	}
	text, err := s.Summarize(ctx, productURL, result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Summary unavailable: %v\n", err)
		return
	}
	r.Summary(os.Stdout, text)
}

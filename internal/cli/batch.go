package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pranjul332/TrustLens/internal/flow"
	"github.com/pranjul332/TrustLens/internal/model"
	"github.com/pranjul332/TrustLens/internal/render"
	"github.com/pranjul332/TrustLens/internal/validate"
	"github.com/pranjul332/TrustLens/internal/worker"
)

var (
	batchWorkers      int
	batchOutputDir    string
	batchForceRefresh bool
	batchPlain        bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <urls-file>",
	Short: "Analyze many product listings from a file",
	Long: `Batch reads product URLs from a file (one per line, # starts a comment),
analyzes them concurrently, and prints a one-line verdict per URL. The outbound
request rate is throttled so the backend's rate limiter is not tripped.

With --output, the full JSON report of each successful analysis is written to
the given directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), args[0])
	},
}

func init() {
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "concurrent workers (default: from config)")
	batchCmd.Flags().StringVarP(&batchOutputDir, "output", "o", "", "directory for per-URL JSON reports")
	batchCmd.Flags().BoolVar(&batchForceRefresh, "refresh", false, "bypass caches and force fresh analyses")
	batchCmd.Flags().BoolVar(&batchPlain, "plain", false, "plain output without colors")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(ctx context.Context, path string) error {
	cfg := loadConfig()
	if batchWorkers > 0 {
		cfg.Concurrency.Workers = batchWorkers
	}
	r := render.New(batchPlain || cfg.Output.Plain)

	tokens, err := tokenSource()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}
	client := newClient(cfg)
	results := newResults(cfg)

	// Each URL gets its own single-shot controller, so a failure on one
	// listing never disturbs the others.
	analyze := func(ctx context.Context, productURL string) (model.AnalysisResult, error) {
		checked := validate.ProductURL(productURL)
		if !checked.Valid {
			return model.AnalysisResult{}, errors.New(checked.Error)
		}

		store := flow.NewPendingStore()
		store.Put(checked.URL)
		outcome := flow.NewController(flow.Config{
			Store:        store,
			Tokens:       tokens,
			Client:       client,
			Results:      results,
			ForceRefresh: batchForceRefresh,
		}).Run(ctx)

		switch outcome.State {
		case flow.StateReady:
			return outcome.Result, nil
		case flow.StateError:
			return model.AnalysisResult{}, errors.New(outcome.Message)
		case flow.StateRedirect:
			return model.AnalysisResult{}, errors.New(outcome.Reason)
		default:
			return model.AnalysisResult{}, errors.New("analysis did not complete")
		}
	}

	processor := worker.NewProcessor(
		analyze,
		cfg.Concurrency.Workers,
		cfg.RateLimiting.RequestsPerSecond,
		cfg.RateLimiting.BurstSize,
	)
	reports, err := processor.ProcessFile(ctx, path)
	if err != nil {
		return err
	}

	if batchOutputDir != "" {
		if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	failures := 0
	for i, report := range reports {
		if report.Err != nil {
			failures++
			fmt.Printf("[%d/%d] %s  ERROR: %v\n", i+1, len(reports), report.URL, report.Err)
			continue
		}
		fmt.Printf("[%d/%d] %s  score=%.1f risk=%s\n",
			i+1, len(reports), report.URL, report.Result.TrustScore, report.Result.RiskLevel)
		if batchOutputDir != "" {
			out := filepath.Join(batchOutputDir, fmt.Sprintf("report-%03d.json", i+1))
			if err := r.JSON(report.Result, out); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", out, err)
			}
		}
	}

	fmt.Printf("\n%d analyzed, %d failed\n", len(reports)-failures, failures)
	if failures == len(reports) && len(reports) > 0 {
		return errors.New("all analyses failed")
	}
	return nil
}

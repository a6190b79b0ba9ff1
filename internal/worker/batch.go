// Package worker runs many product analyses concurrently for batch mode,
// throttled so the client itself does not trip the backend's rate limiter.
package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/pranjul332/TrustLens/internal/model"
)

// AnalyzeFunc performs one full analysis of a product URL
type AnalyzeFunc func(ctx context.Context, productURL string) (model.AnalysisResult, error)

// Report is the per-URL outcome of a batch run
type Report struct {
	URL    string
	Result model.AnalysisResult
	Err    error
}

// Processor fans analysis jobs out over a bounded worker set
type Processor struct {
	analyze AnalyzeFunc
	workers int
	limiter *rate.Limiter
}

// NewProcessor creates a batch processor. requestsPerSecond caps the outbound
// analysis rate across all workers.
func NewProcessor(analyze AnalyzeFunc, workers int, requestsPerSecond float64, burst int) *Processor {
	if workers <= 0 {
		workers = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &Processor{
		analyze: analyze,
		workers: workers,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// ProcessURLs analyzes all URLs concurrently and returns one report per URL,
// in input order.
func (p *Processor) ProcessURLs(ctx context.Context, urls []string) []Report {
	if len(urls) == 0 {
		return []Report{}
	}

	reports := make([]Report, len(urls))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.workers)

	for i, url := range urls {
		wg.Add(1)
		go func(idx int, productURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				reports[idx] = Report{URL: productURL, Err: ctx.Err()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			if err := p.limiter.Wait(ctx); err != nil {
				reports[idx] = Report{URL: productURL, Err: err}
				return
			}

			result, err := p.analyze(ctx, productURL)
			reports[idx] = Report{URL: productURL, Result: result, Err: err}
		}(i, url)
	}

	wg.Wait()
	return reports
}

// ProcessFile reads URLs from a file (one per line) and analyzes them
func (p *Processor) ProcessFile(ctx context.Context, path string) ([]Report, error) {
	urls, err := ReadURLsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return p.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads one URL per line, skipping blanks, comments, and
// duplicates.
func ReadURLsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return urls, nil
}

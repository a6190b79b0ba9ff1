// Package flow orchestrates a single analysis activation: consume the pending
// URL, call the backend once, sanitize the payload, and expose the outcome to
// the presentation layer.
package flow

import (
	"context"
	"errors"
	"sync"

	"github.com/pranjul332/TrustLens/internal/api"
	"github.com/pranjul332/TrustLens/internal/auth"
	"github.com/pranjul332/TrustLens/internal/cache"
	"github.com/pranjul332/TrustLens/internal/model"
	"github.com/pranjul332/TrustLens/internal/sanitize"
)

// State is the controller's terminal-observable state
type State int

const (
	// StateLoading is reported to re-entrant callers while the single
	// analysis attempt is still in flight.
	StateLoading State = iota
	// StateReady holds a sanitized result.
	StateReady
	// StateError holds a display-ready failure message.
	StateError
	// StateRedirect sends the user back to submission without an error.
	StateRedirect
)

// Redirect reasons
const (
	RedirectNoPendingURL = "no pending product URL"
	RedirectSignIn       = "sign-in required"
)

// ErrInvalidResponseShape flags a 2xx body that is not a JSON object.
var ErrInvalidResponseShape = errors.New("analysis response is not a JSON object")

// invalidShapeMessage is what the Error state shows for a malformed body.
const invalidShapeMessage = "Analysis server returned an unexpected response. Please try again."

// genericFailureMessage mirrors the fallback shown when an error carries no
// message of its own.
const genericFailureMessage = "Failed to analyze product"

// Analyzer is the outbound call the controller depends on. *api.Client
// satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, productURL string, opts api.AnalyzeOptions) (interface{}, error)
}

// Outcome is what the presentation layer consumes
type Outcome struct {
	State   State
	URL     string               // the product URL under analysis
	Result  model.AnalysisResult // populated when State == StateReady
	Message string               // populated when State == StateError
	Reason  string               // populated when State == StateRedirect
}

// Controller drives one analysis per activation. Loading is entered exactly
// once; re-entrant Run calls never start a second request.
type Controller struct {
	store        *PendingStore
	tokens       auth.TokenSource
	client       Analyzer
	results      *cache.Results // nil disables the local cache
	forceRefresh bool

	mu      sync.Mutex
	started bool
	done    bool
	outcome Outcome
}

// Config wires a controller
type Config struct {
	Store        *PendingStore
	Tokens       auth.TokenSource
	Client       Analyzer
	Results      *cache.Results
	ForceRefresh bool
}

// NewController creates a controller for a single page activation
func NewController(cfg Config) *Controller {
	return &Controller{
		store:        cfg.Store,
		tokens:       cfg.Tokens,
		client:       cfg.Client,
		results:      cfg.Results,
		forceRefresh: cfg.ForceRefresh,
	}
}

// Run performs the activation. The first call does the work; any further call
// is a no-op that reports the recorded outcome, or Loading while the first
// call is still in flight.
func (c *Controller) Run(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.started {
		out := c.outcome
		if !c.done {
			out = Outcome{State: StateLoading}
		}
		c.mu.Unlock()
		return out
	}
	c.started = true
	c.mu.Unlock()

	out := c.activate(ctx)

	c.mu.Lock()
	c.outcome = out
	c.done = true
	c.mu.Unlock()
	return out
}

func (c *Controller) activate(ctx context.Context) Outcome {
	if c.tokens == nil || !c.tokens.Active() {
		return Outcome{State: StateRedirect, Reason: RedirectSignIn}
	}

	url, ok := c.store.Take()
	if !ok {
		return Outcome{State: StateRedirect, Reason: RedirectNoPendingURL}
	}

	if c.results != nil && !c.forceRefresh {
		if result, found := c.results.Get(url); found {
			return Outcome{State: StateReady, URL: url, Result: result}
		}
	}

	credential, err := c.tokens.Token(ctx)
	if err != nil {
		return Outcome{State: StateError, URL: url, Message: errorMessage(err)}
	}

	raw, err := c.client.Analyze(ctx, url, api.AnalyzeOptions{
		ForceRefresh: c.forceRefresh,
		Credential:   credential,
	})
	if err != nil {
		return Outcome{State: StateError, URL: url, Message: errorMessage(err)}
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return Outcome{State: StateError, URL: url, Message: invalidShapeMessage}
	}

	result := sanitize.Result(obj)
	if c.results != nil {
		_ = c.results.Put(url, result)
	}
	return Outcome{State: StateReady, URL: url, Result: result}
}

// errorMessage derives the display-ready message for the Error state
func errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	if err == nil || err.Error() == "" {
		return genericFailureMessage
	}
	return err.Error()
}

// Package render writes analysis outcomes to the terminal and to JSON files.
// All visual concerns live here; the flow controller only hands over its
// three-state outcome.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/pranjul332/TrustLens/internal/api"
	"github.com/pranjul332/TrustLens/internal/model"
	"github.com/pranjul332/TrustLens/internal/validate"
)

// Renderer writes styled or plain output
type Renderer struct {
	styles Styles
	plain  bool
}

// New creates a renderer. plain disables styling for pipes and dumb terminals.
func New(plain bool) *Renderer {
	return &Renderer{styles: DefaultStyles(), plain: plain}
}

func (r *Renderer) styled(s string, style func(Styles) string) string {
	if r.plain {
		return s
	}
	return style(r.styles)
}

// Result renders a sanitized analysis result
func (r *Renderer) Result(w io.Writer, productURL string, result model.AnalysisResult) {
	fmt.Fprintln(w, r.title("Trust Report"))
	fmt.Fprintf(w, "%s %s\n", r.label("Product:"), productURL)
	fmt.Fprintf(w, "%s %s\n\n", r.label("Platform:"), platformLabel(productURL))

	fmt.Fprintf(w, "%s %s  %s\n", r.label("Trust score:"), scoreBar(result.TrustScore), fmt.Sprintf("%.0f/100", result.TrustScore))
	fmt.Fprintf(w, "%s %s\n", r.label("Risk level:"), r.risk(result.RiskLevel))
	fmt.Fprintf(w, "%s %.0f%%\n", r.label("Confidence:"), result.Confidence*100)
	fmt.Fprintf(w, "%s %.1f%%\n", r.label("Fake reviews:"), result.FakeReviewsPercentage)
	fmt.Fprintf(w, "%s %.0f\n\n", r.label("Reviews analyzed:"), result.TotalReviewsAnalyzed)

	fmt.Fprintln(w, r.title("Score Breakdown"))
	fmt.Fprintf(w, "%s %.1f\n", r.label("NLP:"), result.ScoreBreakdown.NLPContribution)
	fmt.Fprintf(w, "%s %.1f\n", r.label("Behavior:"), result.ScoreBreakdown.BehaviorContribution)
	fmt.Fprintf(w, "%s %.1f\n", r.label("Statistical:"), result.ScoreBreakdown.StatisticalContribution)
	fmt.Fprintf(w, "%s %.1f\n\n", r.label("Final:"), result.ScoreBreakdown.FinalScore)

	if len(result.KeyInsights) > 0 {
		fmt.Fprintln(w, r.title("Key Insights"))
		for _, insight := range result.KeyInsights {
			r.insight(w, insight)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s %s\n", r.label("Recommendation:"), result.Recommendation)
	if result.Timestamp != "" {
		fmt.Fprintf(w, "%s\n", r.muted("Analysis completed on "+result.Timestamp+" (report valid for 7 days)"))
	}
	if result.Status != "" && result.Status != "completed" {
		fmt.Fprintf(w, "%s\n", r.muted("Backend status: "+result.Status))
	}
	if result.Cached {
		fmt.Fprintf(w, "%s\n", r.muted("Served from backend cache; use --refresh for a fresh analysis"))
	}
}

// insight renders one finding with its severity-tiered style
func (r *Renderer) insight(w io.Writer, insight model.Insight) {
	marker := insight.Marker()
	if !r.plain {
		if style, ok := r.styles.Tier[insight.Tier()]; ok {
			marker = style.Render(marker)
		}
	}

	title := insight.Title
	if title == "" {
		title = "Finding"
	}
	fmt.Fprintf(w, "  %s %s", marker, title)
	if insight.Severity != "" {
		fmt.Fprintf(w, " %s", r.muted("("+string(insight.Severity)+")"))
	}
	fmt.Fprintln(w)
	if insight.Description != "" {
		fmt.Fprintf(w, "    %s\n", insight.Description)
	}
	if insight.Evidence != "" {
		fmt.Fprintf(w, "    %s\n", r.muted(insight.Evidence))
	}
}

// Errorf renders a display-ready failure message with the retry hint
func (r *Renderer) Errorf(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", r.styled("Analysis failed:", func(s Styles) string { return s.Error.Render("Analysis failed:") }), message)
	fmt.Fprintln(w, r.muted("Check the URL and try again."))
}

// Health renders a backend health probe result
func (r *Renderer) Health(w io.Writer, status api.HealthStatus) {
	if status.Error == "" {
		fmt.Fprintf(w, "%s %s\n", r.label("Backend status:"), r.styled(status.Status, func(s Styles) string { return s.Success.Render(status.Status) }))
		return
	}
	fmt.Fprintf(w, "%s %s\n", r.label("Backend status:"), r.styled(status.Status, func(s Styles) string { return s.Error.Render(status.Status) }))
	fmt.Fprintf(w, "%s %s\n", r.label("Detail:"), status.Error)
}

// Summary renders the optional LLM summary under its own heading
func (r *Renderer) Summary(w io.Writer, summary string) {
	fmt.Fprintln(w, r.title("Summary"))
	fmt.Fprintln(w, summary)
}

// JSON writes the sanitized result to a file
func (r *Renderer) JSON(result model.AnalysisResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (r *Renderer) title(s string) string {
	return r.styled(s, func(st Styles) string { return st.Title.Render(s) })
}

func (r *Renderer) label(s string) string {
	return r.styled(s, func(st Styles) string { return st.Label.Render(s) })
}

func (r *Renderer) muted(s string) string {
	return r.styled(s, func(st Styles) string { return st.Muted.Render(s) })
}

func (r *Renderer) risk(level model.RiskLevel) string {
	text := strings.ToUpper(string(level))
	if r.plain {
		return text
	}
	return r.styles.riskStyle(level).Render(text)
}

// scoreBar draws a 20-cell bar for a 0-100 score
func scoreBar(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := int(score / 5)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", 20-filled) + "]"
}

// platformLabel names the platform, or the registrable domain for unknown
// hosts.
func platformLabel(productURL string) string {
	parsed, err := url.Parse(productURL)
	if err != nil || parsed.Hostname() == "" {
		return validate.PlatformOther
	}
	platform := validate.PlatformForHost(parsed.Hostname())
	if platform == validate.PlatformOther {
		return fmt.Sprintf("%s (%s)", validate.PlatformOther, validate.RegistrableDomain(parsed.Hostname()))
	}
	return platform
}

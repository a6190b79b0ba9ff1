package model

// DefaultRecommendation is substituted when the backend omits or mangles the
// recommendation field.
const DefaultRecommendation = "Unable to generate recommendation"

// AnalysisResult is the sanitized, guaranteed-shape analysis record.
// Every field is safe to read without further nil or type checks.
type AnalysisResult struct {
	TrustScore            float64        `json:"trust_score"` // 0-100, higher = more trustworthy
	RiskLevel             RiskLevel      `json:"risk_level"`  // low, medium, high, critical
	Confidence            float64        `json:"confidence"`  // 0-1 confidence in the assessment
	FakeReviewsPercentage float64        `json:"fake_reviews_percentage"`
	TotalReviewsAnalyzed  float64        `json:"total_reviews_analyzed"`
	Recommendation        string         `json:"recommendation"`
	ScoreBreakdown        ScoreBreakdown `json:"score_breakdown"`
	KeyInsights           []Insight      `json:"key_insights"`
	Timestamp             string         `json:"timestamp,omitempty"` // backend-supplied, RFC 3339 when present
	Status                string         `json:"status,omitempty"`    // backend processing status, e.g. "completed"
	Cached                bool           `json:"cached"`              // served from a backend-side cache
}

// ScoreBreakdown shows how each backend analysis stage contributed to the
// final score.
type ScoreBreakdown struct {
	NLPContribution         float64 `json:"nlp_contribution"`
	BehaviorContribution    float64 `json:"behavior_contribution"`
	StatisticalContribution float64 `json:"statistical_contribution"`
	FinalScore              float64 `json:"final_score"`
}

// RiskLevel is the backend's ordinal risk classification. Free strings are
// tolerated; unknown values render with the fallback presentation.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Known reports whether the risk level is one of the documented values.
func (r RiskLevel) Known() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// Insight is a single human-readable finding from the analysis.
type Insight struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    InsightCategory `json:"category"`
	Severity    InsightSeverity `json:"severity"`
	Evidence    string          `json:"evidence,omitempty"`
}

// InsightCategory classifies the kind of finding
type InsightCategory string

const (
	CategoryRedFlag       InsightCategory = "red_flag"
	CategoryWarning       InsightCategory = "warning"
	CategoryInformational InsightCategory = "informational"
)

// InsightSeverity indicates how strongly the finding should be presented
type InsightSeverity string

const (
	SeverityLow    InsightSeverity = "low"
	SeverityMedium InsightSeverity = "medium"
	SeverityHigh   InsightSeverity = "high"
)

// DisplayTier maps category and severity to a presentation tier. Unrecognized
// values fall back to the informational/low tier rather than failing.
type DisplayTier int

const (
	TierInfo DisplayTier = iota
	TierWarning
	TierAlert
)

// Tier derives the display tier for an insight from its severity.
func (i Insight) Tier() DisplayTier {
	switch i.Severity {
	case SeverityHigh:
		return TierAlert
	case SeverityMedium:
		return TierWarning
	default:
		return TierInfo
	}
}

// Marker returns the text marker used when rendering the insight, derived
// solely from the category.
func (i Insight) Marker() string {
	switch i.Category {
	case CategoryRedFlag:
		return "✗"
	case CategoryWarning:
		return "!"
	default:
		return "✓"
	}
}

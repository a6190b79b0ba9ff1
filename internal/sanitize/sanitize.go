// Package sanitize coerces the backend's partially-trusted JSON into the
// strict AnalysisResult shape. The backend contract drifts (missing fields,
// wrong types), so every field is defaulted independently rather than letting
// a malformed payload surface at render time.
package sanitize

import (
	"math"

	"github.com/pranjul332/TrustLens/internal/model"
)

// Result converts a decoded JSON object into a complete AnalysisResult.
// Total function: any input, including nil, yields a fully-populated record.
func Result(raw map[string]interface{}) model.AnalysisResult {
	return model.AnalysisResult{
		TrustScore:            number(raw, "trust_score"),
		RiskLevel:             model.RiskLevel(str(raw, "risk_level", string(model.RiskMedium))),
		Confidence:            number(raw, "confidence"),
		FakeReviewsPercentage: number(raw, "fake_reviews_percentage"),
		TotalReviewsAnalyzed:  number(raw, "total_reviews_analyzed"),
		Recommendation:        str(raw, "recommendation", model.DefaultRecommendation),
		ScoreBreakdown:        breakdown(raw["score_breakdown"]),
		KeyInsights:           insights(raw["key_insights"]),
		Timestamp:             str(raw, "timestamp", ""),
		Status:                str(raw, "status", ""),
		Cached:                boolean(raw, "cached"),
	}
}

// number returns the field when it is a real number, else 0
func number(m map[string]interface{}, key string) float64 {
	if m == nil {
		return 0
	}
	if v, ok := m[key].(float64); ok && !math.IsNaN(v) {
		return v
	}
	return 0
}

// str returns the field when it is a non-empty string, else the default
func str(m map[string]interface{}, key, def string) string {
	if m == nil {
		return def
	}
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}

func boolean(m map[string]interface{}, key string) bool {
	if m == nil {
		return false
	}
	v, _ := m[key].(bool)
	return v
}

// breakdown defaults each sub-field independently, even when the parent is
// absent or not an object.
func breakdown(v interface{}) model.ScoreBreakdown {
	m, _ := v.(map[string]interface{})
	return model.ScoreBreakdown{
		NLPContribution:         number(m, "nlp_contribution"),
		BehaviorContribution:    number(m, "behavior_contribution"),
		StatisticalContribution: number(m, "statistical_contribution"),
		FinalScore:              number(m, "final_score"),
	}
}

// insights maps the key_insights sequence into typed records. A non-sequence
// value yields an empty (never nil) slice; entries that are not objects come
// through as zero-valued insights, matching the pass-through treatment of the
// list itself.
func insights(v interface{}) []model.Insight {
	seq, ok := v.([]interface{})
	if !ok {
		return []model.Insight{}
	}

	out := make([]model.Insight, 0, len(seq))
	for _, item := range seq {
		m, _ := item.(map[string]interface{})
		out = append(out, model.Insight{
			Title:       str(m, "title", ""),
			Description: str(m, "description", ""),
			Category:    model.InsightCategory(str(m, "category", "")),
			Severity:    model.InsightSeverity(str(m, "severity", "")),
			Evidence:    str(m, "evidence", ""),
		})
	}
	return out
}

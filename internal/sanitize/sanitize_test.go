package sanitize

import (
	"encoding/json"
	"testing"

	"github.com/pranjul332/TrustLens/internal/model"
)

func decode(t *testing.T, payload string) map[string]interface{} {
	t.Helper()
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return raw
}

func TestResult_SparsePayloadDefaults(t *testing.T) {
	raw := decode(t, `{"trust_score": 72, "risk_level": "low"}`)
	result := Result(raw)

	if result.TrustScore != 72 {
		t.Errorf("TrustScore = %v, want 72", result.TrustScore)
	}
	if result.RiskLevel != model.RiskLow {
		t.Errorf("RiskLevel = %q, want low", result.RiskLevel)
	}
	if result.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", result.Confidence)
	}
	if result.FakeReviewsPercentage != 0 {
		t.Errorf("FakeReviewsPercentage = %v, want 0", result.FakeReviewsPercentage)
	}
	if result.TotalReviewsAnalyzed != 0 {
		t.Errorf("TotalReviewsAnalyzed = %v, want 0", result.TotalReviewsAnalyzed)
	}
	if result.Recommendation != model.DefaultRecommendation {
		t.Errorf("Recommendation = %q, want default", result.Recommendation)
	}
	if result.ScoreBreakdown != (model.ScoreBreakdown{}) {
		t.Errorf("ScoreBreakdown = %+v, want all zero", result.ScoreBreakdown)
	}
	if result.KeyInsights == nil || len(result.KeyInsights) != 0 {
		t.Errorf("KeyInsights = %v, want empty slice", result.KeyInsights)
	}
}

func TestResult_FullPayload(t *testing.T) {
	raw := decode(t, `{
		"trust_score": 34,
		"risk_level": "high",
		"confidence": 0.82,
		"fake_reviews_percentage": 41.5,
		"total_reviews_analyzed": 1287,
		"recommendation": "Avoid this listing",
		"score_breakdown": {
			"nlp_contribution": 12.5,
			"behavior_contribution": 10,
			"statistical_contribution": 11.5,
			"final_score": 34
		},
		"key_insights": [
			{"title": "Burst of reviews", "description": "300 reviews in one day", "category": "red_flag", "severity": "high", "evidence": "2024-03-02"}
		],
		"timestamp": "2024-03-03T10:00:00Z",
		"cached": true
	}`)
	result := Result(raw)

	if result.TrustScore != 34 || result.Confidence != 0.82 {
		t.Errorf("unexpected numbers: score=%v confidence=%v", result.TrustScore, result.Confidence)
	}
	if result.ScoreBreakdown.NLPContribution != 12.5 || result.ScoreBreakdown.FinalScore != 34 {
		t.Errorf("unexpected breakdown: %+v", result.ScoreBreakdown)
	}
	if len(result.KeyInsights) != 1 {
		t.Fatalf("KeyInsights len = %d, want 1", len(result.KeyInsights))
	}
	insight := result.KeyInsights[0]
	if insight.Title != "Burst of reviews" || insight.Category != model.CategoryRedFlag ||
		insight.Severity != model.SeverityHigh || insight.Evidence != "2024-03-02" {
		t.Errorf("unexpected insight: %+v", insight)
	}
	if !result.Cached || result.Timestamp != "2024-03-03T10:00:00Z" {
		t.Errorf("cached=%v timestamp=%q", result.Cached, result.Timestamp)
	}
}

func TestResult_WrongTypesBecomeDefaults(t *testing.T) {
	raw := decode(t, `{
		"trust_score": "seventy",
		"risk_level": 3,
		"confidence": null,
		"recommendation": "",
		"score_breakdown": "broken",
		"key_insights": {"not": "a list"},
		"cached": "yes"
	}`)
	result := Result(raw)

	if result.TrustScore != 0 {
		t.Errorf("TrustScore = %v, want 0 for non-number", result.TrustScore)
	}
	if result.RiskLevel != model.RiskMedium {
		t.Errorf("RiskLevel = %q, want medium fallback", result.RiskLevel)
	}
	if result.Recommendation != model.DefaultRecommendation {
		t.Errorf("Recommendation = %q, want default for empty string", result.Recommendation)
	}
	if result.ScoreBreakdown != (model.ScoreBreakdown{}) {
		t.Errorf("ScoreBreakdown = %+v, want all zero", result.ScoreBreakdown)
	}
	if len(result.KeyInsights) != 0 {
		t.Errorf("KeyInsights = %v, want empty for non-sequence", result.KeyInsights)
	}
	if result.Cached {
		t.Error("Cached = true, want false for non-bool")
	}
}

func TestResult_PartialBreakdown(t *testing.T) {
	raw := decode(t, `{"score_breakdown": {"nlp_contribution": 5, "final_score": "bad"}}`)
	result := Result(raw)

	want := model.ScoreBreakdown{NLPContribution: 5}
	if result.ScoreBreakdown != want {
		t.Errorf("ScoreBreakdown = %+v, want %+v", result.ScoreBreakdown, want)
	}
}

func TestResult_NilIsTotal(t *testing.T) {
	result := Result(nil)

	if result.RiskLevel != model.RiskMedium {
		t.Errorf("RiskLevel = %q, want medium", result.RiskLevel)
	}
	if result.Recommendation != model.DefaultRecommendation {
		t.Errorf("Recommendation = %q, want default", result.Recommendation)
	}
	if result.KeyInsights == nil {
		t.Error("KeyInsights is nil, want empty slice")
	}
}

func TestResult_FreeRiskStringTolerated(t *testing.T) {
	raw := decode(t, `{"risk_level": "catastrophic"}`)
	if got := Result(raw).RiskLevel; got != "catastrophic" {
		t.Errorf("RiskLevel = %q, want free string preserved", got)
	}
}

func TestResult_MalformedInsightEntries(t *testing.T) {
	raw := decode(t, `{"key_insights": [42, {"title": "ok"}, null]}`)
	got := Result(raw).KeyInsights

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (sequence used as-is)", len(got))
	}
	if got[0] != (model.Insight{}) || got[2] != (model.Insight{}) {
		t.Errorf("non-object entries should be zero insights: %+v", got)
	}
	if got[1].Title != "ok" {
		t.Errorf("got[1].Title = %q, want ok", got[1].Title)
	}
}

func TestInsightFallbackPresentation(t *testing.T) {
	unknown := model.Insight{Category: "mystery", Severity: "extreme"}
	if unknown.Tier() != model.TierInfo {
		t.Errorf("Tier = %v, want TierInfo fallback", unknown.Tier())
	}
	if unknown.Marker() != "✓" {
		t.Errorf("Marker = %q, want informational fallback", unknown.Marker())
	}

	alert := model.Insight{Category: model.CategoryRedFlag, Severity: model.SeverityHigh}
	if alert.Tier() != model.TierAlert || alert.Marker() != "✗" {
		t.Errorf("red_flag/high = (%v, %q), want alert presentation", alert.Tier(), alert.Marker())
	}
}

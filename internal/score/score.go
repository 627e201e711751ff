// Package score turns extracted privacy features into a 0..100 privacy score
// with human-readable findings and recommendations. The score is a plain
// penalty model: every weight lives in one table so a reported score can be
// traced back to the features that produced it.
package score

import (
	"fmt"

	"github.com/avel9n/privacylens/internal/model"
)

// Weights are the per-feature penalties subtracted from a perfect score.
type Weights struct {
	PerThirdPartyDomain int
	PerKnownTracker     int
	PerThirdPartyCookie int
	PerPersistentCookie int
	Analytics           int
	Fingerprinting      int

	// HighTrackerRatioPenalty applies once when TrackerScriptRatio exceeds
	// HighTrackerRatioThreshold.
	HighTrackerRatioPenalty   int
	HighTrackerRatioThreshold float64
}

// DefaultWeights are the shipped scoring weights.
func DefaultWeights() Weights {
	return Weights{
		PerThirdPartyDomain:       2,
		PerKnownTracker:           5,
		PerThirdPartyCookie:       2,
		PerPersistentCookie:       1,
		Analytics:                 5,
		Fingerprinting:            15,
		HighTrackerRatioPenalty:   10,
		HighTrackerRatioThreshold: 0.5,
	}
}

// Thresholds for bucketing the numeric score into a privacy level.
const (
	levelHighMin   = 75
	levelMediumMin = 40
)

// Scorer computes scores with a fixed weight table.
type Scorer struct {
	weights Weights
}

// NewScorer returns a Scorer. Zero-value weights are replaced with defaults.
func NewScorer(w Weights) *Scorer {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	return &Scorer{weights: w}
}

// Outcome is the scored result for one feature set.
type Outcome struct {
	Score           int
	Level           string
	Findings        []string
	Recommendations []string
}

// Score computes the penalty score for f, clamped to 0..100.
func (s *Scorer) Score(f model.PrivacyFeatures) Outcome {
	w := s.weights

	score := 100
	score -= f.NumThirdPartyDomains * w.PerThirdPartyDomain
	score -= f.NumKnownTrackerDomains * w.PerKnownTracker
	score -= f.NumThirdPartyCookies * w.PerThirdPartyCookie
	score -= f.NumPersistentCookies * w.PerPersistentCookie
	if f.HasAnalytics == 1 {
		score -= w.Analytics
	}
	if f.FingerprintingFlag == 1 {
		score -= w.Fingerprinting
	}
	if f.TrackerScriptRatio > w.HighTrackerRatioThreshold {
		score -= w.HighTrackerRatioPenalty
	}
	if score < 0 {
		score = 0
	}

	findings := buildFindings(f)
	return Outcome{
		Score:           score,
		Level:           levelFor(score),
		Findings:        findings,
		Recommendations: buildRecommendations(f, findings),
	}
}

func levelFor(score int) string {
	switch {
	case score >= levelHighMin:
		return "high"
	case score >= levelMediumMin:
		return "medium"
	default:
		return "low"
	}
}

func buildFindings(f model.PrivacyFeatures) []string {
	var findings []string
	if f.NumKnownTrackerDomains > 0 {
		findings = append(findings, fmt.Sprintf("%d known tracker domain(s) contacted", f.NumKnownTrackerDomains))
	}
	if f.NumThirdPartyDomains > 10 {
		findings = append(findings, fmt.Sprintf("High number of third-party domains (%d)", f.NumThirdPartyDomains))
	}
	if f.NumThirdPartyCookies > 10 {
		findings = append(findings, "High number of tracking cookies detected")
	}
	if f.NumThirdPartyScripts > 20 {
		findings = append(findings, "Numerous third-party scripts loaded")
	}
	if f.FingerprintingFlag == 1 {
		findings = append(findings, "Browser fingerprinting techniques detected")
	}
	if f.HasAnalytics == 1 {
		findings = append(findings, "Analytics integration active on this page")
	}
	if f.TrackerScriptRatio > 0.5 {
		findings = append(findings, "Most external scripts come from known trackers")
	}
	return findings
}

func buildRecommendations(f model.PrivacyFeatures, findings []string) []string {
	if len(findings) == 0 {
		return []string{"Website appears to have good privacy practices"}
	}
	recs := []string{
		"Consider using a cookie blocker",
		"Review website permissions",
		"Enable enhanced tracking protection",
	}
	if f.FingerprintingFlag == 1 {
		recs = append(recs, "Use a browser with fingerprinting resistance")
	}
	return recs
}

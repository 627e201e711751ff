package model

import "time"

// DomainVerdict is the classification of one observed domain relative to the
// analyzed page.
type DomainVerdict struct {
	// Domain is the observed lowercase hostname.
	Domain string `json:"domain"`

	// Count is how many observations (requests, scripts, cookies) referenced
	// this domain.
	Count int `json:"count"`

	// ThirdParty is true when the domain does not belong to the page's own
	// organization.
	ThirdParty bool `json:"third_party"`

	// KnownTracker is true when the domain appears verbatim in the tracker set.
	KnownTracker bool `json:"known_tracker"`
}

// DomainRisk is the pretrained model's assessment of a single domain.
type DomainRisk struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`

	// Known is true when the domain (or one of its lookup variations) exists
	// in the model artifact.
	Known bool `json:"domain_known"`

	// SafeScore is 0..100, higher is safer.
	SafeScore float64 `json:"domain_safe_score"`

	// Weight is the contribution of this domain to the aggregated score.
	Weight float64 `json:"weight"`
}

// RiskSummary aggregates per-domain model scores for one page observation.
type RiskSummary struct {
	Domains        []DomainRisk `json:"domains"`
	AggregatedML   float64      `json:"aggregated_ml_score"`
	ModelUsed      string       `json:"model_used"`
	TotalDomains   int          `json:"total_domains"`
	KnownDomains   int          `json:"known_domains"`
	UnknownDomains int          `json:"unknown_domains"`
}

// AnalysisReport is the persisted outcome of analyzing one page observation.
type AnalysisReport struct {
	// ID is assigned when the report is stored.
	ID string `json:"id,omitempty"`

	PageURL    string `json:"page_url"`
	PageTitle  string `json:"page_title,omitempty"`
	PageDomain string `json:"page_domain"`

	// Score is the heuristic privacy score, 0..100, higher is better.
	Score int `json:"privacy_score"`

	// Level buckets the score into "low", "medium" or "high" privacy.
	Level string `json:"privacy_level"`

	// Features are the extracted metrics the score was computed from.
	Features PrivacyFeatures `json:"computed_features"`

	// Verdicts lists every observed domain with its classification,
	// sorted by domain for stable output.
	Verdicts []DomainVerdict `json:"domain_verdicts,omitempty"`

	// ThirdPartyDomains and KnownTrackers are convenience projections of
	// Verdicts for the extension popup.
	ThirdPartyDomains []string `json:"third_party_domains,omitempty"`
	KnownTrackers     []string `json:"known_trackers,omitempty"`

	Findings        []string `json:"findings,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`

	// Risk is the pretrained-model summary, when a model artifact is loaded.
	Risk *RiskSummary `json:"risk,omitempty"`

	CookiesAnalyzed int `json:"cookies_analyzed"`
	ScriptsAnalyzed int `json:"scripts_analyzed"`

	CreatedAt time.Time `json:"created_at"`
}

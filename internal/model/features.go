package model

// PrivacyFeatures are the ten core metrics extracted from a page observation.
// All counts are over the single analyzed page, not cumulative.
type PrivacyFeatures struct {
	// NumThirdPartyDomains counts unique third-party domains across requests,
	// scripts and cookies.
	NumThirdPartyDomains int `json:"num_third_party_domains"`

	// NumThirdPartyScripts counts external scripts served from third-party domains.
	NumThirdPartyScripts int `json:"num_third_party_scripts"`

	// NumThirdPartyCookies counts cookies scoped to third-party domains.
	NumThirdPartyCookies int `json:"num_third_party_cookies"`

	// NumThirdPartyRequests counts network requests to third-party domains.
	NumThirdPartyRequests int `json:"num_third_party_requests"`

	// FractionThirdPartyRequests is NumThirdPartyRequests over all requests,
	// 0 when no requests were observed.
	FractionThirdPartyRequests float64 `json:"fraction_third_party_requests"`

	// NumKnownTrackerDomains counts unique observed domains present in the
	// known-tracker set.
	NumKnownTrackerDomains int `json:"num_known_tracker_domains"`

	// NumPersistentCookies counts cookies that outlive the browser session.
	NumPersistentCookies int `json:"num_persistent_cookies"`

	// HasAnalytics is 1 when an analytics integration was detected, else 0.
	HasAnalytics int `json:"has_analytics_global"`

	// NumInlineScripts counts scripts embedded directly in the page markup.
	NumInlineScripts int `json:"num_inline_scripts"`

	// FingerprintingFlag is 1 when any fingerprinting technique was detected.
	FingerprintingFlag int `json:"fingerprinting_flag"`

	// TrackerScriptRatio is the share of external scripts that came from
	// known tracker domains, 0 when no external scripts were observed.
	TrackerScriptRatio float64 `json:"tracker_script_ratio"`
}

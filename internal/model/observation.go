package model

// Cookie is a single cookie observed on the analyzed page, as captured by the
// browser extension. Only the properties relevant to privacy analysis survive
// the trip to the backend.
type Cookie struct {
	// Domain is the cookie's domain attribute (may carry a leading dot).
	Domain string `json:"domain"`

	// Secure reports whether the cookie is restricted to HTTPS.
	Secure bool `json:"secure,omitempty"`

	// Session is true for session cookies, false for persistent ones. A nil
	// value means the extension did not say; such cookies count as session
	// cookies.
	Session *bool `json:"session,omitempty"`

	// ExpirationDate is a unix timestamp (seconds, possibly fractional) for
	// persistent cookies; zero when the cookie is a session cookie.
	ExpirationDate float64 `json:"expiration_date,omitempty"`
}

// Persistent reports whether the cookie outlives the browser session. A
// cookie is a session cookie unless the extension says otherwise or an
// expiration timestamp is present.
func (c Cookie) Persistent() bool {
	return (c.Session != nil && !*c.Session) || c.ExpirationDate > 0
}

// Script is an observed script on the analyzed page. External scripts carry the
// domain their source was loaded from; inline scripts have an empty domain.
type Script struct {
	// Domain is the lowercase hostname the script was loaded from, or empty
	// for inline scripts.
	Domain string `json:"domain,omitempty"`

	// Inline marks scripts embedded directly in the page markup.
	Inline bool `json:"inline,omitempty"`
}

// NetworkRequest is a single network request observed while the page loaded.
type NetworkRequest struct {
	// URL is the full request URL.
	URL string `json:"url"`

	// Method is the HTTP method (GET, POST, ...).
	Method string `json:"method,omitempty"`

	// Type is the resource type reported by the browser (script, image, xhr, ...).
	Type string `json:"type,omitempty"`

	// Domain is the request hostname when the collector already parsed it;
	// derived from URL otherwise.
	Domain string `json:"domain,omitempty"`

	// Timestamp is when the request was observed (collector clock, RFC3339).
	Timestamp string `json:"timestamp,omitempty"`
}

// AnalyticsFlags are client-side detection results for well-known analytics
// integrations.
type AnalyticsFlags struct {
	HasGoogleAnalytics bool     `json:"has_google_analytics,omitempty"`
	HasGtag            bool     `json:"has_gtag,omitempty"`
	HasFacebookPixel   bool     `json:"has_facebook_pixel,omitempty"`
	HasDataLayer       bool     `json:"has_data_layer,omitempty"`
	DetectedAnalytics  []string `json:"detected_analytics,omitempty"`
}

// FingerprintingFlags are client-side detection results for browser
// fingerprinting techniques.
type FingerprintingFlags struct {
	Canvas          bool     `json:"canvas_fingerprinting,omitempty"`
	Audio           bool     `json:"audio_fingerprinting,omitempty"`
	WebGL           bool     `json:"webgl_fingerprinting,omitempty"`
	Font            bool     `json:"font_fingerprinting,omitempty"`
	DetectedMethods []string `json:"detected_methods,omitempty"`
}

// AnalyzeRequest is one complete page observation submitted for analysis.
type AnalyzeRequest struct {
	// PageURL is the full URL of the analyzed page.
	PageURL string `json:"page_url"`

	// PageTitle is the document title, for display in history listings.
	PageTitle string `json:"page_title,omitempty"`

	// PageDomain is the lowercase hostname of the page; derived from PageURL
	// when absent.
	PageDomain string `json:"page_domain,omitempty"`

	// Timestamp is when the observation was captured (collector clock).
	Timestamp string `json:"timestamp,omitempty"`

	Cookies         []Cookie         `json:"cookies,omitempty"`
	Scripts         []Script         `json:"scripts,omitempty"`
	NetworkRequests []NetworkRequest `json:"network_requests,omitempty"`

	// PageHTML optionally carries the raw page markup. When present and no
	// script observations were submitted, script information is recovered
	// from the markup server-side.
	PageHTML string `json:"page_html,omitempty"`

	Analytics      *AnalyticsFlags      `json:"analytics_flags,omitempty"`
	Fingerprinting *FingerprintingFlags `json:"fingerprinting_flags,omitempty"`
}

// Package classify decides whether an observed domain belongs to the page
// being analyzed (first-party) or to an external organization (third-party),
// and whether it appears in a reference set of known tracking domains.
//
// Every function in this package is total: malformed input never produces an
// error or a panic, it degrades to the conservative answer (third-party,
// not a tracker, empty domain). Under-reporting privacy risk is worse than
// over-reporting it.
package classify

import (
	"net/url"
	"strings"
)

// Result is the classification of one observed domain relative to one page
// domain. It is derived fresh per call and never cached.
type Result struct {
	ThirdParty   bool `json:"third_party"`
	KnownTracker bool `json:"known_tracker"`
}

// Classifier bundles the immutable tracker set with the classification
// functions so callers thread one value through instead of reaching for
// package state.
type Classifier struct {
	trackers *TrackerSet
}

// New returns a Classifier over the given tracker set. A nil set behaves as
// an empty one.
func New(trackers *TrackerSet) *Classifier {
	if trackers == nil {
		trackers = NewTrackerSet(nil)
	}
	return &Classifier{trackers: trackers}
}

// Trackers exposes the underlying tracker set (read-only).
func (c *Classifier) Trackers() *TrackerSet { return c.trackers }

// Classify runs both checks for one observed domain.
func (c *Classifier) Classify(requestDomain, pageDomain string) Result {
	return Result{
		ThirdParty:   IsThirdPartyDomain(requestDomain, pageDomain),
		KnownTracker: c.IsKnownTracker(requestDomain),
	}
}

// IsKnownTracker reports whether domain appears verbatim in the tracker set.
// The match is exact and case-insensitive; subdomains of a listed tracker do
// not match unless listed themselves.
func (c *Classifier) IsKnownTracker(domain string) bool {
	return c.trackers.Contains(domain)
}

// DomainFromURL parses a URL string and returns its lowercase hostname.
// Any parse failure, or a URL without a host, yields "" — callers treat the
// empty string as "unknown domain", which classifies as third-party.
func DomainFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// IsThirdPartyDomain reports whether requestDomain is third-party relative to
// pageDomain. Both inputs are lowercased here; callers do not need to
// normalize case. Either input being empty classifies as third-party.
//
// The checks run in order, each an early exit:
//
//  1. exact match after stripping a leading "www."
//  2. requestDomain is a subdomain of pageDomain
//  3. pageDomain is a subdomain of requestDomain (page hosted on a subdomain,
//     request targets the parent)
//  4. both share the same last-two-label base domain
//  5. keyword overlap between extracted brand tokens (catches affiliated
//     infrastructure like githubassets.com vs github.com)
func IsThirdPartyDomain(requestDomain, pageDomain string) bool {
	req := stripWWW(strings.ToLower(strings.TrimSpace(requestDomain)))
	page := stripWWW(strings.ToLower(strings.TrimSpace(pageDomain)))

	if req == "" || page == "" {
		return true
	}
	if req == page {
		return false
	}
	if strings.HasSuffix(req, "."+page) {
		return false
	}
	if strings.HasSuffix(page, "."+req) {
		return false
	}
	// Naive registrable-domain approximation: compare the last two labels.
	// Multi-part TLDs (co.uk etc.) are knowingly not handled; see the
	// divergence test in classify_test.go.
	if baseDomain(req) == baseDomain(page) {
		return false
	}
	if keywordOverlap(extractKeywords(req), extractKeywords(page)) {
		return false
	}
	return true
}

func stripWWW(domain string) string {
	return strings.TrimPrefix(domain, "www.")
}

// baseDomain returns the last two dot-separated labels, or the whole input
// when it has fewer than two.
func baseDomain(domain string) string {
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return domain
	}
	return labels[len(labels)-2] + "." + labels[len(labels)-1]
}

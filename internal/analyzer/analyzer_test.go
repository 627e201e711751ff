package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/avel9n/privacylens/internal/classify"
	"github.com/avel9n/privacylens/internal/model"
)

func newTestAnalyzer() *Analyzer {
	trackers := classify.NewTrackerSet([]string{"doubleclick.net", "google-analytics.com"})
	return New(classify.New(trackers), nil)
}

func boolPtr(b bool) *bool { return &b }

func TestExtract_Features(t *testing.T) {
	a := newTestAnalyzer()

	req := &model.AnalyzeRequest{
		PageURL:    "https://example.com/article",
		PageDomain: "example.com",
		NetworkRequests: []model.NetworkRequest{
			{URL: "https://example.com/api/data"},
			{URL: "https://cdn.example.com/bundle.js"},
			{URL: "https://doubleclick.net/ads"},
			{URL: "https://doubleclick.net/pixel"},
		},
		Scripts: []model.Script{
			{Domain: "example.com"},
			{Domain: "doubleclick.net"},
			{Domain: "google-analytics.com"},
			{Inline: true},
		},
		Cookies: []model.Cookie{
			{Domain: ".example.com", Session: boolPtr(true)},
			{Domain: "doubleclick.net", Session: boolPtr(false), ExpirationDate: 2e9},
		},
	}

	ext := a.Extract(req)

	f := ext.Features
	if f.NumThirdPartyRequests != 2 {
		t.Errorf("NumThirdPartyRequests = %d, want 2", f.NumThirdPartyRequests)
	}
	if f.FractionThirdPartyRequests != 0.5 {
		t.Errorf("FractionThirdPartyRequests = %v, want 0.5", f.FractionThirdPartyRequests)
	}
	if f.NumThirdPartyScripts != 2 {
		t.Errorf("NumThirdPartyScripts = %d, want 2", f.NumThirdPartyScripts)
	}
	if f.NumThirdPartyCookies != 1 {
		t.Errorf("NumThirdPartyCookies = %d, want 1", f.NumThirdPartyCookies)
	}
	if f.NumPersistentCookies != 1 {
		t.Errorf("NumPersistentCookies = %d, want 1", f.NumPersistentCookies)
	}
	// unique third-party domains: doubleclick.net, google-analytics.com
	if f.NumThirdPartyDomains != 2 {
		t.Errorf("NumThirdPartyDomains = %d, want 2", f.NumThirdPartyDomains)
	}
	if f.NumKnownTrackerDomains != 2 {
		t.Errorf("NumKnownTrackerDomains = %d, want 2", f.NumKnownTrackerDomains)
	}
	if f.NumInlineScripts != 1 {
		t.Errorf("NumInlineScripts = %d, want 1", f.NumInlineScripts)
	}
	// two of the three external scripts are known trackers
	if got, want := f.TrackerScriptRatio, 2.0/3.0; got != want {
		t.Errorf("TrackerScriptRatio = %v, want %v", got, want)
	}
	// google-analytics.com is an analytics domain even without flags
	if f.HasAnalytics != 1 {
		t.Errorf("HasAnalytics = %d, want 1", f.HasAnalytics)
	}

	if ext.CookiesAnalyzed != 2 || ext.ScriptsAnalyzed != 4 {
		t.Errorf("analyzed counts = %d cookies, %d scripts; want 2, 4", ext.CookiesAnalyzed, ext.ScriptsAnalyzed)
	}

	// verdicts sorted and complete: cdn.example.com, doubleclick.net,
	// example.com, google-analytics.com
	if len(ext.Verdicts) != 4 {
		t.Fatalf("verdicts = %v, want 4 entries", ext.Verdicts)
	}
	if ext.Verdicts[0].Domain != "cdn.example.com" || ext.Verdicts[0].ThirdParty {
		t.Errorf("cdn.example.com should be first and first-party, got %+v", ext.Verdicts[0])
	}
	if dc := ext.Verdicts[1]; dc.Domain != "doubleclick.net" || !dc.ThirdParty || !dc.KnownTracker || dc.Count != 4 {
		t.Errorf("doubleclick.net verdict wrong: %+v", dc)
	}
}

func TestExtract_PageDomainFromURL(t *testing.T) {
	a := newTestAnalyzer()
	ext := a.Extract(&model.AnalyzeRequest{
		PageURL: "HTTPS://Example.COM/path",
		NetworkRequests: []model.NetworkRequest{
			{URL: "https://sub.example.com/x"},
		},
	})
	if ext.PageDomain != "example.com" {
		t.Fatalf("PageDomain = %q, want example.com", ext.PageDomain)
	}
	if ext.Features.NumThirdPartyRequests != 0 {
		t.Errorf("subdomain request counted as third-party")
	}
}

func TestExtract_UnresolvedPageDomain(t *testing.T) {
	a := newTestAnalyzer()
	ext := a.Extract(&model.AnalyzeRequest{
		PageURL: "not a url",
		NetworkRequests: []model.NetworkRequest{
			{URL: "https://example.com/x"},
		},
	})
	// With no page domain every observation degrades to third-party.
	if ext.Features.NumThirdPartyRequests != 1 {
		t.Errorf("expected conservative third-party classification, got %+v", ext.Features)
	}
}

func TestExtract_ScriptsRecoveredFromHTML(t *testing.T) {
	a := newTestAnalyzer()
	req := &model.AnalyzeRequest{
		PageURL: "https://example.com/",
		PageHTML: `<html><head>
<script src="https://doubleclick.net/tag.js"></script>
<script>init();</script>
</head></html>`,
	}

	ext := a.Extract(req)
	if ext.Features.NumThirdPartyScripts != 1 {
		t.Errorf("NumThirdPartyScripts = %d, want 1", ext.Features.NumThirdPartyScripts)
	}
	if ext.Features.NumInlineScripts != 1 {
		t.Errorf("NumInlineScripts = %d, want 1", ext.Features.NumInlineScripts)
	}
	if ext.ScriptsAnalyzed != 2 {
		t.Errorf("ScriptsAnalyzed = %d, want 2", ext.ScriptsAnalyzed)
	}
}

func TestExtract_CookiePersistence(t *testing.T) {
	a := newTestAnalyzer()

	// A cookie submitted with only a domain is a session cookie.
	var bare model.Cookie
	if err := json.Unmarshal([]byte(`{"domain":"example.com"}`), &bare); err != nil {
		t.Fatalf("unmarshal cookie: %v", err)
	}

	tests := []struct {
		name   string
		cookie model.Cookie
		want   int
	}{
		{"domain only", bare, 0},
		{"explicit session", model.Cookie{Domain: "example.com", Session: boolPtr(true)}, 0},
		{"explicit persistent", model.Cookie{Domain: "example.com", Session: boolPtr(false)}, 1},
		{"expiration set", model.Cookie{Domain: "example.com", ExpirationDate: 2e9}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := a.Extract(&model.AnalyzeRequest{
				PageURL: "https://example.com/",
				Cookies: []model.Cookie{tt.cookie},
			})
			if got := ext.Features.NumPersistentCookies; got != tt.want {
				t.Errorf("NumPersistentCookies = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExtract_FlagsRespected(t *testing.T) {
	a := newTestAnalyzer()
	ext := a.Extract(&model.AnalyzeRequest{
		PageURL:        "https://example.com/",
		Analytics:      &model.AnalyticsFlags{HasGtag: true},
		Fingerprinting: &model.FingerprintingFlags{Canvas: true},
	})
	if ext.Features.HasAnalytics != 1 {
		t.Errorf("HasAnalytics = %d, want 1", ext.Features.HasAnalytics)
	}
	if ext.Features.FingerprintingFlag != 1 {
		t.Errorf("FingerprintingFlag = %d, want 1", ext.Features.FingerprintingFlag)
	}
}

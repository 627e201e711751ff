// Package analyzer turns one raw page observation into privacy features and
// per-domain verdicts by driving the domain classifier over everything the
// collector saw.
package analyzer

import (
	"sort"
	"strings"

	"github.com/avel9n/privacylens/internal/classify"
	"github.com/avel9n/privacylens/internal/logging"
	"github.com/avel9n/privacylens/internal/model"
	"github.com/avel9n/privacylens/internal/pagemeta"
)

// analyticsDomains flag the page as carrying an analytics integration even
// when the extension did not submit detection flags.
var analyticsDomains = map[string]struct{}{
	"google-analytics.com":          {},
	"www.google-analytics.com":      {},
	"googletagmanager.com":          {},
	"www.googletagmanager.com":      {},
	"connect.facebook.net":          {},
	"stats.g.doubleclick.net":       {},
	"analytics.tiktok.com":          {},
	"script.hotjar.com":             {},
	"cdn.heapanalytics.com":         {},
	"cdn.mxpnl.com":                 {},
	"cdn.segment.com":               {},
	"plausible.io":                  {},
	"cdn.matomo.cloud":              {},
	"static.cloudflareinsights.com": {},
}

// Analyzer is stateless apart from the classifier it delegates to; one
// instance serves arbitrarily many concurrent extractions.
type Analyzer struct {
	classifier *classify.Classifier
	logger     logging.Logger
}

// New returns an Analyzer. A nil logger falls back to a no-op logger.
func New(classifier *classify.Classifier, logger logging.Logger) *Analyzer {
	if classifier == nil {
		classifier = classify.New(nil)
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Analyzer{
		classifier: classifier,
		logger:     logger.With(logging.Field{Key: "component", Value: "analyzer"}),
	}
}

// Extraction is the analyzer output handed to the scoring layer.
type Extraction struct {
	PageDomain string
	Features   model.PrivacyFeatures
	Verdicts   []model.DomainVerdict

	CookiesAnalyzed int
	ScriptsAnalyzed int
}

// Extract computes privacy features for req. It never fails: malformed
// observations degrade to conservative classifications, and an unparseable
// page URL results in every observed domain counting as third-party.
func (a *Analyzer) Extract(req *model.AnalyzeRequest) *Extraction {
	pageDomain := strings.ToLower(strings.TrimSpace(req.PageDomain))
	if pageDomain == "" {
		pageDomain = classify.DomainFromURL(req.PageURL)
	}
	if pageDomain == "" {
		a.logger.Warn("page domain unresolved; all observations will classify third-party",
			logging.Field{Key: "page_url", Value: req.PageURL})
	}

	scripts := req.Scripts
	recoveredInline := 0
	if len(scripts) == 0 && req.PageHTML != "" {
		scripts, recoveredInline = a.scriptsFromHTML(req.PageHTML)
	}
	inlineScripts := recoveredInline
	for _, s := range scripts {
		if s.Inline {
			inlineScripts++
		}
	}

	counts := make(map[string]int)
	observe := func(domain string) string {
		domain = normalizeObserved(domain)
		if domain != "" {
			counts[domain]++
		}
		return domain
	}

	feats := model.PrivacyFeatures{}

	// Network requests
	totalRequests := 0
	for _, r := range req.NetworkRequests {
		domain := r.Domain
		if domain == "" {
			domain = classify.DomainFromURL(r.URL)
		}
		domain = observe(domain)
		totalRequests++
		if classify.IsThirdPartyDomain(domain, pageDomain) {
			feats.NumThirdPartyRequests++
		}
	}
	if totalRequests > 0 {
		feats.FractionThirdPartyRequests = float64(feats.NumThirdPartyRequests) / float64(totalRequests)
	}

	// Scripts
	externalScripts := 0
	trackerScripts := 0
	for _, s := range scripts {
		if s.Inline || s.Domain == "" {
			continue
		}
		domain := observe(s.Domain)
		externalScripts++
		if classify.IsThirdPartyDomain(domain, pageDomain) {
			feats.NumThirdPartyScripts++
		}
		if a.classifier.IsKnownTracker(domain) {
			trackerScripts++
		}
	}
	if externalScripts > 0 {
		feats.TrackerScriptRatio = float64(trackerScripts) / float64(externalScripts)
	}
	feats.NumInlineScripts = inlineScripts

	// Cookies
	for _, c := range req.Cookies {
		domain := observe(c.Domain)
		if classify.IsThirdPartyDomain(domain, pageDomain) {
			feats.NumThirdPartyCookies++
		}
		if c.Persistent() {
			feats.NumPersistentCookies++
		}
	}

	// Per-domain verdicts over the unique observed domains
	verdicts := make([]model.DomainVerdict, 0, len(counts))
	for domain, count := range counts {
		res := a.classifier.Classify(domain, pageDomain)
		if res.ThirdParty {
			feats.NumThirdPartyDomains++
		}
		if res.KnownTracker {
			feats.NumKnownTrackerDomains++
		}
		verdicts = append(verdicts, model.DomainVerdict{
			Domain:       domain,
			Count:        count,
			ThirdParty:   res.ThirdParty,
			KnownTracker: res.KnownTracker,
		})
	}
	sort.Slice(verdicts, func(i, j int) bool { return verdicts[i].Domain < verdicts[j].Domain })

	if a.detectAnalytics(req, counts) {
		feats.HasAnalytics = 1
	}
	if f := req.Fingerprinting; f != nil && (f.Canvas || f.Audio || f.WebGL || f.Font || len(f.DetectedMethods) > 0) {
		feats.FingerprintingFlag = 1
	}

	return &Extraction{
		PageDomain:      pageDomain,
		Features:        feats,
		Verdicts:        verdicts,
		CookiesAnalyzed: len(req.Cookies),
		ScriptsAnalyzed: len(scripts) + recoveredInline,
	}
}

// scriptsFromHTML recovers script observations from the submitted markup.
func (a *Analyzer) scriptsFromHTML(html string) ([]model.Script, int) {
	info, err := pagemeta.ExtractScripts(html)
	if err != nil {
		a.logger.Warn("parsing submitted page html", logging.Field{Key: "error", Value: err.Error()})
		return nil, 0
	}
	scripts := make([]model.Script, 0, len(info.ExternalSources))
	for _, src := range info.ExternalSources {
		scripts = append(scripts, model.Script{Domain: classify.DomainFromURL(src)})
	}
	return scripts, info.InlineCount
}

func (a *Analyzer) detectAnalytics(req *model.AnalyzeRequest, observed map[string]int) bool {
	if f := req.Analytics; f != nil {
		if f.HasGoogleAnalytics || f.HasGtag || f.HasFacebookPixel || f.HasDataLayer || len(f.DetectedAnalytics) > 0 {
			return true
		}
	}
	for domain := range observed {
		if _, ok := analyticsDomains[domain]; ok {
			return true
		}
	}
	return false
}

// normalizeObserved lowercases a domain and strips the leading dot cookie
// domains carry.
func normalizeObserved(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimPrefix(domain, ".")
}

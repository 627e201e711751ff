package classify

import "strings"

// Token length thresholds. These are load-bearing: relaxing any of them lets
// generic short tokens ("api", "cdn") collapse unrelated organizations into
// one.
const (
	minTokenLen   = 3 // candidacy: shorter tokens are never keywords
	minCompareLen = 4 // final comparison: both sides must be at least this long
	minExpandLen  = 6 // stem expansion: only long tokens pull in related stems
)

// genericTokens never qualify as brand keywords regardless of length.
var genericTokens = map[string]struct{}{
	"www": {}, "cdn": {}, "static": {}, "assets": {}, "api": {},
	"img": {}, "images": {}, "js": {}, "css": {}, "media": {},
	"content": {}, "data": {}, "files": {}, "docs": {}, "blog": {},
	"news": {}, "store": {}, "shop": {}, "mail": {}, "email": {},
	"support": {}, "help": {}, "admin": {}, "secure": {},
}

// knownTLDs is the fixed list of common top-level labels stripped before
// tokenization. Deliberately an enumeration, not a public-suffix lookup.
var knownTLDs = map[string]struct{}{
	"com": {}, "net": {}, "org": {}, "io": {}, "co": {}, "edu": {},
	"gov": {}, "mil": {}, "int": {}, "biz": {}, "info": {}, "name": {},
	"app": {}, "dev": {}, "xyz": {}, "site": {}, "online": {}, "tech": {},
	"cloud": {}, "ai": {}, "me": {}, "tv": {}, "cc": {}, "us": {},
	"uk": {}, "ca": {}, "de": {}, "fr": {}, "es": {}, "it": {}, "nl": {},
	"jp": {}, "cn": {}, "in": {}, "au": {}, "br": {}, "ru": {},
}

// extractKeywords builds the set of brand-like tokens for one domain:
// strip "www." and known TLD labels, split the remainder on '.', '-' and '_',
// drop short and generic tokens. Tokens of length >= minExpandLen also pull
// previously collected keywords that share a stem back into the set, keeping
// related spellings together (the expansion adds, never filters).
func extractKeywords(domain string) map[string]struct{} {
	domain = strings.TrimPrefix(domain, "www.")
	domain = stripKnownTLDs(domain)

	tokens := strings.FieldsFunc(domain, func(r rune) bool {
		return r == '.' || r == '-' || r == '_'
	})

	kw := make(map[string]struct{}, len(tokens))
	var collected []string
	for _, t := range tokens {
		if len(t) < minTokenLen {
			continue
		}
		if _, generic := genericTokens[t]; generic {
			continue
		}
		if len(t) >= minExpandLen {
			for _, prev := range collected {
				if strings.Contains(t, prev) || strings.Contains(prev, t) {
					kw[prev] = struct{}{}
				}
			}
		}
		kw[t] = struct{}{}
		collected = append(collected, t)
	}
	return kw
}

// stripKnownTLDs removes trailing labels while they appear in knownTLDs, so
// "github.com" -> "github" and "example.co.uk" -> "example".
func stripKnownTLDs(domain string) string {
	for {
		i := strings.LastIndexByte(domain, '.')
		if i < 0 {
			return domain
		}
		if _, ok := knownTLDs[domain[i+1:]]; !ok {
			return domain
		}
		domain = domain[:i]
	}
}

// keywordOverlap reports whether any keyword pair (one per set, both at least
// minCompareLen long) is equal or in a substring relation. The substring rule
// trades precision for recall on purpose: brand-affiliated CDN hosts rarely
// share a registrable domain with the main site.
func keywordOverlap(a, b map[string]struct{}) bool {
	for ka := range a {
		if len(ka) < minCompareLen {
			continue
		}
		for kb := range b {
			if len(kb) < minCompareLen {
				continue
			}
			if ka == kb || strings.Contains(ka, kb) || strings.Contains(kb, ka) {
				return true
			}
		}
	}
	return false
}

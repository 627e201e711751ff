// Package urlutil normalizes submitted page URLs so that analysis history for
// the same page lands under one key regardless of how the extension captured
// the address bar.
package urlutil

import (
	"net"
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/net/idna"
)

// CanonicalizeOptions controls optional canonicalization policies.
type CanonicalizeOptions struct {
	DropTrackingParams bool   // remove common tracking params (utm_*, gclid, fbclid, ...)
	StripTrailingSlash bool   // treat /a and /a/ the same by removing trailing slash (except for root "/")
	DefaultScheme      string // if empty, require scheme in input; otherwise assume this scheme for schemeless URLs
}

// Common tracking params to strip when DropTrackingParams is true.
var defaultTrackingParams = map[string]struct{}{
	"utm_source": {}, "utm_medium": {}, "utm_campaign": {}, "utm_term": {}, "utm_content": {},
	"gclid": {}, "fbclid": {}, "mc_cid": {}, "mc_eid": {},
}

// Errors
var (
	ErrEmptyURL    = &url.Error{Op: "canonicalize", URL: "", Err: &errStr{"empty url"}}
	ErrMissingHost = &url.Error{Op: "canonicalize", URL: "", Err: &errStr{"missing host"}}
)

type errStr struct{ s string }

func (e *errStr) Error() string { return e.s }

// Canonicalize returns a deterministic canonical URL string or an error.
// It lowercases scheme and host, converts IDN hosts to punycode, drops
// credentials and fragments, cleans the path and sorts query params.
func Canonicalize(raw string, opts CanonicalizeOptions) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}

	// If the caller provided a default scheme and the input has none, prepend it.
	if opts.DefaultScheme != "" && !strings.Contains(raw, "://") {
		raw = opts.DefaultScheme + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", ErrMissingHost
	}

	u.Scheme = strings.ToLower(u.Scheme)

	// Lowercase host and convert IDN -> punycode
	host := strings.ToLower(u.Hostname())
	if puny, err := idna.Lookup.ToASCII(host); err == nil {
		host = puny
	}

	// Preserve non-default port only
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") || port == "" {
		u.Host = host
	} else {
		u.Host = net.JoinHostPort(host, port)
	}

	// Drop userinfo (credentials)
	u.User = nil

	// Normalize path
	cleanPath := path.Clean(u.Path)
	if cleanPath == "." {
		cleanPath = "/"
	}
	if opts.StripTrailingSlash && len(cleanPath) > 1 {
		cleanPath = strings.TrimRight(cleanPath, "/")
		if cleanPath == "" {
			cleanPath = "/"
		}
	}
	u.Path = cleanPath

	u.Fragment = ""

	// Normalize query: optionally drop tracking params, then sort keys and
	// values for deterministic encoding.
	q := u.Query()
	if opts.DropTrackingParams {
		for k := range q {
			if _, ok := defaultTrackingParams[strings.ToLower(k)]; ok {
				q.Del(k)
			}
		}
	}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ordered := url.Values{}
	for _, k := range keys {
		values := q[k]
		sort.Strings(values)
		for _, v := range values {
			ordered.Add(k, v)
		}
	}
	u.RawQuery = ordered.Encode()

	return u.String(), nil
}

package urlutil

import "testing"

func TestCanonicalize(t *testing.T) {
	opts := CanonicalizeOptions{
		DropTrackingParams: true,
		StripTrailingSlash: true,
		DefaultScheme:      "https",
	}

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"lowercases host and scheme", "HTTPS://Example.COM/Path", "https://example.com/Path"},
		{"default scheme applied", "example.com/a", "https://example.com/a"},
		{"default port dropped", "https://example.com:443/a", "https://example.com/a"},
		{"custom port kept", "https://example.com:8443/a", "https://example.com:8443/a"},
		{"trailing slash stripped", "https://example.com/a/", "https://example.com/a"},
		{"fragment removed", "https://example.com/a#frag", "https://example.com/a"},
		{"tracking params dropped", "https://example.com/a?utm_source=x&q=1", "https://example.com/a?q=1"},
		{"query sorted", "https://example.com/a?b=2&a=1", "https://example.com/a?a=1&b=2"},
		{"credentials dropped", "https://user:pw@example.com/a", "https://example.com/a"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Canonicalize(tc.raw, opts)
			if err != nil {
				t.Fatalf("Canonicalize(%q): %v", tc.raw, err)
			}
			if got != tc.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestCanonicalizeErrors(t *testing.T) {
	if _, err := Canonicalize("", CanonicalizeOptions{}); err == nil {
		t.Errorf("expected error for empty url")
	}
	if _, err := Canonicalize("/just/a/path", CanonicalizeOptions{}); err == nil {
		t.Errorf("expected error for url without host")
	}
}

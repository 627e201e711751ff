package classify

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

//go:embed trackers.txt
var trackersFS embed.FS

// TrackerSet is an immutable set of known tracker domains. It is constructed
// once at startup and safe for concurrent reads; there is no way to mutate it
// afterwards.
type TrackerSet struct {
	domains map[string]struct{}
}

// NewTrackerSet builds a set from the given domains. Entries are trimmed and
// lowercased; empty entries are dropped.
func NewTrackerSet(domains []string) *TrackerSet {
	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		set[d] = struct{}{}
	}
	return &TrackerSet{domains: set}
}

// DefaultTrackerSet returns the embedded demo subset of tracker domains.
func DefaultTrackerSet() *TrackerSet {
	data, err := trackersFS.ReadFile("trackers.txt")
	if err != nil {
		// The file is compiled in; this cannot fail at runtime.
		return NewTrackerSet(nil)
	}
	ts, _ := ReadTrackerSet(strings.NewReader(string(data)))
	return ts
}

// ReadTrackerSet parses a one-domain-per-line listing. Blank lines and lines
// starting with '#' are skipped.
func ReadTrackerSet(r io.Reader) (*TrackerSet, error) {
	var domains []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		domains = append(domains, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading tracker list: %w", err)
	}
	return NewTrackerSet(domains), nil
}

// LoadTrackerSet reads a tracker listing from path.
func LoadTrackerSet(path string) (*TrackerSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tracker list %s: %w", path, err)
	}
	defer f.Close()
	return ReadTrackerSet(f)
}

// Contains reports exact, case-insensitive membership. No subdomain or fuzzy
// matching: "sub.doubleclick.net" does not match a "doubleclick.net" entry.
func (t *TrackerSet) Contains(domain string) bool {
	if t == nil || len(t.domains) == 0 {
		return false
	}
	_, ok := t.domains[strings.ToLower(strings.TrimSpace(domain))]
	return ok
}

// Len returns the number of tracker domains in the set.
func (t *TrackerSet) Len() int {
	if t == nil {
		return 0
	}
	return len(t.domains)
}

// Domains returns the sorted tracker domains. The slice is a copy; the set
// itself stays immutable.
func (t *TrackerSet) Domains() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.domains))
	for d := range t.domains {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

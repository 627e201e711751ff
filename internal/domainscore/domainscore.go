// Package domainscore serves a pretrained per-domain tracking-intensity model.
// The artifact is a JSON export of the offline training pipeline: a map from
// domain to predicted tracking intensity in [0, 1]. Training itself happens
// elsewhere; this package only loads and serves the result.
package domainscore

import (
	"embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/avel9n/privacylens/internal/model"
)

//go:embed model.json
var modelFS embed.FS

const (
	// KnownDomainMultiplier boosts the aggregation weight of domains the
	// model actually knows.
	KnownDomainMultiplier = 3.0

	// UnknownDomainScore is the neutral-leaning safety score assigned to
	// domains absent from the artifact.
	UnknownDomainScore = 95.0
)

// trackingPrefixes are stripped when looking up a domain variation.
var trackingPrefixes = []string{
	"stats.", "analytics.", "tracking.", "data.", "metrics.",
	"secure.", "api.", "cdn.", "static.",
}

// DomainCount pairs an observed domain with its observation count.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

type artifact struct {
	ModelType string             `json:"model_type"`
	Domains   map[string]float64 `json:"domains"`
}

// Model holds the loaded artifact. It is immutable after construction and
// safe for concurrent use.
type Model struct {
	modelType   string
	intensities map[string]float64
}

// Parse decodes a JSON model artifact.
func Parse(data []byte) (*Model, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decoding model artifact: %w", err)
	}
	intensities := make(map[string]float64, len(a.Domains))
	for d, v := range a.Domains {
		intensities[strings.ToLower(strings.TrimSpace(d))] = v
	}
	return &Model{modelType: a.ModelType, intensities: intensities}, nil
}

// Load reads a model artifact from path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the embedded demo artifact.
func Default() *Model {
	data, err := modelFS.ReadFile("model.json")
	if err != nil {
		// Compiled in; cannot fail at runtime.
		return &Model{modelType: "none", intensities: map[string]float64{}}
	}
	m, err := Parse(data)
	if err != nil {
		return &Model{modelType: "none", intensities: map[string]float64{}}
	}
	return m
}

// ModelType names the artifact's model, "none" for a nil or empty model.
func (m *Model) ModelType() string {
	if m == nil || len(m.intensities) == 0 {
		return "none"
	}
	return m.modelType
}

// Known returns the number of domains in the artifact.
func (m *Model) Known() int {
	if m == nil {
		return 0
	}
	return len(m.intensities)
}

// SafeScore returns the 0..100 safety score (higher is safer) for domain and
// whether the domain was found in the artifact. Lookup tries variations in
// order: the domain itself, its www toggle, tracking-prefix-stripped forms,
// and the parent last-two-label domain, each with a www variant.
func (m *Model) SafeScore(domain string) (float64, bool) {
	if m == nil || len(m.intensities) == 0 {
		return UnknownDomainScore, false
	}

	for _, v := range lookupVariations(domain) {
		intensity, ok := m.intensities[v]
		if !ok {
			continue
		}
		safe := math.Round((1.0-intensity)*100*100) / 100
		return clamp(safe, 0, 100), true
	}
	return UnknownDomainScore, false
}

// ScoreDomains scores every domain and aggregates a count-weighted mean
// safety score. Known domains weigh KnownDomainMultiplier times their count.
func (m *Model) ScoreDomains(counts []DomainCount) *model.RiskSummary {
	summary := &model.RiskSummary{
		ModelUsed: m.ModelType(),
	}

	totalWeight := 0.0
	weightedSum := 0.0
	for _, dc := range counts {
		safe, known := m.SafeScore(dc.Domain)

		multiplier := 1.0
		if known {
			multiplier = KnownDomainMultiplier
			summary.KnownDomains++
		}
		weight := float64(dc.Count) * multiplier

		totalWeight += weight
		weightedSum += safe * weight

		summary.Domains = append(summary.Domains, model.DomainRisk{
			Domain:    dc.Domain,
			Count:     dc.Count,
			Known:     known,
			SafeScore: safe,
			Weight:    weight,
		})
	}

	aggregated := UnknownDomainScore
	if totalWeight > 0 {
		aggregated = weightedSum / totalWeight
	}
	summary.AggregatedML = math.Round(clamp(aggregated, 0, 100)*100) / 100
	summary.TotalDomains = len(summary.Domains)
	summary.UnknownDomains = summary.TotalDomains - summary.KnownDomains
	return summary
}

// lookupVariations returns the ordered, de-duplicated domain variations to
// try against the artifact.
func lookupVariations(domain string) []string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil
	}

	var candidates []string
	candidates = append(candidates, domain)

	if stripped, ok := strings.CutPrefix(domain, "www."); ok {
		candidates = append(candidates, stripped)
	} else {
		candidates = append(candidates, "www."+domain)
	}

	for _, prefix := range trackingPrefixes {
		if base, ok := strings.CutPrefix(domain, prefix); ok {
			candidates = append(candidates, base, "www."+base)
		}
	}

	if parts := strings.Split(domain, "."); len(parts) >= 3 {
		parent := strings.Join(parts[len(parts)-2:], ".")
		candidates = append(candidates, parent, "www."+parent)
	}

	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avel9n/privacylens/internal/score"
	"github.com/avel9n/privacylens/internal/urlutil"
)

// Config is the runtime configuration for the analysis service.
type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string `yaml:"listen_addr"`

	// StorageRoot is where the history database lives.
	StorageRoot string `yaml:"storage_root"`

	// TrackerListPath points at a one-domain-per-line tracker listing.
	// Empty means the embedded demo subset.
	TrackerListPath string `yaml:"tracker_list"`

	// ModelPath points at a domain risk model artifact (JSON).
	// Empty means the embedded demo artifact.
	ModelPath string `yaml:"model_path"`

	// AllowedOrigin is the CORS origin granted to the extension.
	AllowedOrigin string `yaml:"allowed_origin"`

	// ExtensionHeader is the expected X-Extension-Client value; requests to
	// analysis endpoints without it are rejected. Empty disables the check.
	ExtensionHeader string `yaml:"extension_header"`

	// Weights override the default scoring penalties.
	Weights score.Weights `yaml:"-"`

	// URLOpts control page URL canonicalization.
	URLOpts urlutil.CanonicalizeOptions `yaml:"-"`
}

// DefaultConfig returns a Config populated with development defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:      ":8080",
		StorageRoot:     "~/.config/privacylens",
		AllowedOrigin:   "*",
		ExtensionHeader: "privacy-inspector",
		Weights:         score.DefaultWeights(),
		URLOpts: urlutil.CanonicalizeOptions{
			DropTrackingParams: true,
			StripTrailingSlash: true,
			DefaultScheme:      "https",
		},
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is an
// error; callers that treat the file as optional should stat it first.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

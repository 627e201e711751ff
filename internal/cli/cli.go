package cli

import (
	"flag"
)

// CLIArgs are the command-line arguments for the analysis server.
type CLIArgs struct {
	// ConfigPath is an optional YAML config file; flags override it.
	ConfigPath string

	// Listen overrides the configured HTTP listen address.
	Listen string

	// StorageRoot overrides where the history database lives.
	StorageRoot string

	// TrackerList overrides the tracker domain list file.
	TrackerList string

	// ModelPath overrides the domain risk model artifact.
	ModelPath string

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by
// passing arbitrary slices. The function is deterministic and does not read
// os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("privacylens", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", "", "Path to a YAML config file (optional)")
		listen      = fs.String("listen", "", "HTTP listen address (overrides config)")
		storageRoot = fs.String("storage", "", "History database directory (overrides config)")
		trackerList = fs.String("trackers", "", "Tracker domain list file (default: embedded)")
		modelPath   = fs.String("model", "", "Domain risk model file (default: embedded)")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(nil)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &CLIArgs{
		ConfigPath:  *configPath,
		Listen:      *listen,
		StorageRoot: *storageRoot,
		TrackerList: *trackerList,
		ModelPath:   *modelPath,
		RawArgs:     args,
	}, nil
}

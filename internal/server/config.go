package server

import (
	"github.com/avel9n/privacylens/internal/app"
	"github.com/avel9n/privacylens/internal/logging"
)

// Config bundles everything NewServer needs.
type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string

	// AppConfig configures the analysis pipeline. Nil means defaults.
	AppConfig *app.Config

	// Logger receives request and handler logs. Nil means JSON to stdout.
	Logger logging.Logger
}

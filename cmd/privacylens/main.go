// Command privacylens starts the page privacy analysis API server.
// Usage: go run ./cmd/privacylens [-config file.yaml] [-listen :8080]
package main

import (
	"log"
	"os"

	"github.com/avel9n/privacylens/internal/app"
	"github.com/avel9n/privacylens/internal/cli"
	"github.com/avel9n/privacylens/internal/logging"
	"github.com/avel9n/privacylens/internal/server"
)

func main() {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("parsing arguments: %v", err)
	}

	cfg := app.DefaultConfig()
	if args.ConfigPath != "" {
		cfg, err = app.LoadConfig(args.ConfigPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	// Flags override the config file.
	if args.Listen != "" {
		cfg.ListenAddr = args.Listen
	}
	if args.StorageRoot != "" {
		cfg.StorageRoot = args.StorageRoot
	}
	if args.TrackerList != "" {
		cfg.TrackerListPath = args.TrackerList
	}
	if args.ModelPath != "" {
		cfg.ModelPath = args.ModelPath
	}

	logger := logging.NewStdoutLogger("PrivacyLens")

	s, err := server.NewServer(server.Config{
		ListenAddr: cfg.ListenAddr,
		AppConfig:  cfg,
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("starting server: %v", err)
	}
	defer s.Close()

	logger.Info("listening", logging.Field{Key: "addr", Value: cfg.ListenAddr})
	if err := s.HTTPServer().ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gastrack-dev/gastrack/internal/config"
	"github.com/gastrack-dev/gastrack/internal/logger"
	"github.com/gastrack-dev/gastrack/internal/mockapi"
)

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	seed := flag.String("seed", "", "path to a YAML seed fixture file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.GetLogger()

	// Create server
	srv, err := mockapi.New(mockapi.Options{
		Addr:     *addr,
		SeedPath: *seed,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	log.Info().Str("addr", *addr).Msg("Starting GasTrack mock API server...")

	// Start HTTP server (this blocks)
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}

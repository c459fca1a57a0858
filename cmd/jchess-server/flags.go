// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/jchess-go/internal/config"
)

var (
	// Listener
	listenAddr     = flag.String("listen", ":8080", "Address to listen on")
	allowedOrigins = flag.String("origins", "*", "Comma-separated CORS origins")
	maxGames       = flag.Int("max-games", 0, "Maximum live games (0 = unlimited)")

	// Games
	startFEN     = flag.String("fen", "", "Default start position for new games")
	notationFlag = flag.String("notation", "auto", "Move notation: auto, san, uci")
	squareSize   = flag.Int("size", 45, "SVG square size in pixels")

	// Logging
	logFile   = flag.String("l", "", "Write request and game logs to this file (default: stderr)")
	verbosity = flag.Int("v", 1, "Verbosity: 0 silent, 1 requests and games, 2 every move")

	help = flag.Bool("h", false, "Show help")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	notation, err := config.ParseNotation(*notationFlag)
	if err != nil {
		return err
	}
	cfg.Notation = notation
	cfg.StartFEN = *startFEN
	cfg.Verbosity = *verbosity

	cfg.Server.ListenAddr = *listenAddr
	cfg.Server.AllowedOrigins = *allowedOrigins
	cfg.Server.MaxGames = *maxGames
	cfg.Output.SquareSize = *squareSize
	return nil
}

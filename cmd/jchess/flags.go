// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/jchess-go/internal/config"
)

var (
	// Position and notation
	startFEN     = flag.String("fen", "", "Start from this FEN position instead of the initial position")
	notationFlag = flag.String("notation", "auto", "Move notation: auto, san, uci")

	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	outputFormat = flag.String("format", "text", "Board format: text, svg, json")
	squareSize   = flag.Int("size", 45, "SVG square size in pixels")
	noCheck      = flag.Bool("nocheck", false, "Don't report check after a move")
	noSummary    = flag.Bool("nosummary", false, "Don't print piece count and side to move")
	indentJSON   = flag.Bool("indent", false, "Indent JSON output")

	// Batch replay
	batchFile = flag.String("batch", "", "Replay every line of this file instead of reading the console")
	workers   = flag.Int("workers", 0, "Number of worker threads (0 = auto-detect based on CPU cores)")
	keepGoing = flag.Bool("keepgoing", false, "Skip rejected moves in batch mode instead of stopping the line")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	verbosity = flag.Int("v", 1, "Verbosity: 0 silent, 1 summary, 2 every move")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	if err := applyNotationFlags(cfg); err != nil {
		return err
	}
	if err := applyOutputFlags(cfg); err != nil {
		return err
	}
	applyReplayFlags(cfg)

	cfg.Verbosity = *verbosity
	return nil
}

// applyNotationFlags configures the start position and move notation.
func applyNotationFlags(cfg *config.Config) error {
	notation, err := config.ParseNotation(*notationFlag)
	if err != nil {
		return err
	}
	cfg.Notation = notation
	cfg.StartFEN = *startFEN
	return nil
}

// applyOutputFlags configures board rendering.
func applyOutputFlags(cfg *config.Config) error {
	format, err := config.ParseOutputFormat(*outputFormat)
	if err != nil {
		return err
	}
	cfg.Output.Format = format
	cfg.Output.SquareSize = *squareSize
	cfg.Output.ShowCheck = !*noCheck
	cfg.Output.ShowSummary = !*noSummary
	cfg.Output.IndentJSON = *indentJSON
	return nil
}

// applyReplayFlags configures batch replay.
func applyReplayFlags(cfg *config.Config) {
	cfg.Replay.InputFile = *batchFile
	cfg.Replay.Workers = *workers
	cfg.Replay.StopAtFirstError = !*keepGoing
}

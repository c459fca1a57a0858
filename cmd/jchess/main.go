// jchess plays a game of chess on the console, or replays a file of
// move lines in batch.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/jchess-go/internal/config"
	"github.com/lgbarn/jchess-go/internal/engine"
	"github.com/lgbarn/jchess-go/internal/processing"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("jchess version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)

	if cfg.Replay.InputFile != "" {
		summary, err := runBatch(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if summary.Failed > 0 {
			os.Exit(2)
		}
		return
	}

	game, err := newGame(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := NewConsole(cfg, game).Run(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newGame starts the console game from cfg.StartFEN when it is set.
func newGame(cfg *config.Config) (*engine.Game, error) {
	if cfg.StartFEN == "" {
		return engine.NewGame(), nil
	}
	return engine.NewGameFromFEN(cfg.StartFEN)
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFilename = *logFile
	cfg.SetLog(file)
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFilename = *outputFile
	cfg.SetOutput(file)
}

// runBatch replays every line of cfg.Replay.InputFile and writes one
// result line per input line to cfg.OutputFile.
func runBatch(cfg *config.Config) (processing.Summary, error) {
	file, err := os.Open(cfg.Replay.InputFile)
	if err != nil {
		return processing.Summary{}, err
	}
	defer file.Close()
	return replayBatch(cfg, file, cfg.OutputFile)
}

func replayBatch(cfg *config.Config, r io.Reader, w io.Writer) (processing.Summary, error) {
	items, err := processing.ReadBatch(r)
	if err != nil {
		return processing.Summary{}, err
	}

	results := processing.NewReplayer(cfg).Run(items)
	summary, err := processing.WriteResults(w, results)
	if err != nil {
		return summary, err
	}
	cfg.Logf(1, "%d lines replayed, %d failed, %d plies applied\n",
		summary.Lines, summary.Failed, summary.Plies)
	return summary, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: jchess [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess on the console, or replay move lines with -batch.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nBatch lines (-batch):\n")
	fmt.Fprintf(os.Stderr, "  e4 e5 Nf3               moves from the start position\n")
	fmt.Fprintf(os.Stderr, "  <FEN> | e1g1 e8d8       moves from a FEN position\n")
	fmt.Fprintf(os.Stderr, "  # comment               ignored\n")
}

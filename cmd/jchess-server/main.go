// jchess-server serves chess games over HTTP and WebSocket.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lgbarn/jchess-go/internal/config"
	"github.com/lgbarn/jchess-go/internal/engine"
	"github.com/lgbarn/jchess-go/internal/server"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		defer file.Close()
		cfg.LogFilename = *logFile
		cfg.SetLog(file)
		log.SetOutput(file)
	}

	app := server.New(cfg, server.NewSessionStore(cfg.Server.MaxGames))
	log.Fatal(app.Listen(cfg.Server.ListenAddr))
}

// loadConfig builds and validates the configuration from the flags.
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.StartFEN != "" {
		if _, err := engine.NewBoardFromFEN(cfg.StartFEN); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: jchess-server [options]\n\n")
	fmt.Fprintf(os.Stderr, "Serve chess games over HTTP and WebSocket.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nRoutes:\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games                          create a game\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/:id                      game state and history\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/moves                make a move\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/:id/destinations/:square destinations of a piece\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/:id/board.svg            board diagram\n")
	fmt.Fprintf(os.Stderr, "  DELETE /api/games/:id                      end a game\n")
	fmt.Fprintf(os.Stderr, "  GET    /ws/games/:id                       live updates\n")
}

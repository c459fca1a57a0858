// Package config provides configuration for the jchess front ends.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/jchess-go/internal/errors"
)

// Notation selects how move strings typed by the user are resolved.
type Notation int

const (
	NotationAuto Notation = iota // UCI when the text looks like UCI, algebraic otherwise
	NotationSAN                  // Standard Algebraic Notation only
	NotationUCI                  // UCI long algebraic only (e2e4, e7e8q)
)

// String returns the flag spelling of the notation.
func (n Notation) String() string {
	switch n {
	case NotationSAN:
		return "san"
	case NotationUCI:
		return "uci"
	}
	return "auto"
}

// ParseNotation converts a flag value to a Notation.
func ParseNotation(s string) (Notation, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return NotationAuto, nil
	case "san", "algebraic":
		return NotationSAN, nil
	case "uci", "lalg":
		return NotationUCI, nil
	}
	return NotationAuto, fmt.Errorf("unknown notation %q: %w", s, errors.ErrInvalidConfig)
}

// Config holds all program configuration.
type Config struct {
	// Verbosity: 0=nothing, 1=summary, 2=running commentary
	Verbosity int

	// StartFEN is the position games start from (empty for the initial position).
	StartFEN string

	// Notation used to resolve typed moves.
	Notation Notation

	// Grouped settings
	Output *OutputConfig
	Replay *ReplayConfig
	Server *ServerConfig

	// File handling
	OutputFilename string
	LogFilename    string

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Notation:   NotationAuto,
		Output:     NewOutputConfig(),
		Replay:     NewReplayConfig(),
		Server:     NewServerConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// Validate checks every group of settings.
func (c *Config) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > 2 {
		return fmt.Errorf("verbosity %d out of range 0-2: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if c.Output != nil {
		if err := c.Output.Validate(); err != nil {
			return err
		}
	}
	if c.Replay != nil {
		if err := c.Replay.Validate(); err != nil {
			return err
		}
	}
	if c.Server != nil {
		if err := c.Server.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Logf writes a log line when the configured verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the log writer.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

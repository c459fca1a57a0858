package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/jchess-go/internal/errors"
)

// OutputFormat represents the board rendering formats.
type OutputFormat int

const (
	Text OutputFormat = iota // Console diagram
	SVG                      // SVG image
	JSON                     // Board snapshot as JSON
)

// String returns the flag spelling of the format.
func (f OutputFormat) String() string {
	switch f {
	case SVG:
		return "svg"
	case JSON:
		return "json"
	}
	return "text"
}

// ParseOutputFormat converts a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "", "text", "txt":
		return Text, nil
	case "svg":
		return SVG, nil
	case "json":
		return JSON, nil
	}
	return Text, fmt.Errorf("unknown output format %q: %w", s, errors.ErrInvalidConfig)
}

// OutputConfig holds settings related to board rendering.
type OutputConfig struct {
	// Format specifies the rendering format.
	Format OutputFormat

	// ShowCheck prints a "Check!" line when the side to move is in check.
	ShowCheck bool

	// ShowSummary prints the piece count and side to move under the diagram.
	ShowSummary bool

	// SquareSize is the edge of one square in SVG output, in pixels.
	SquareSize int

	// IndentJSON pretty-prints JSON output.
	IndentJSON bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:      Text,
		ShowCheck:   true,
		ShowSummary: true,
		SquareSize:  45,
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if o.SquareSize < 8 || o.SquareSize > 200 {
		return fmt.Errorf("square size %d out of range 8-200: %w", o.SquareSize, errors.ErrInvalidConfig)
	}
	return nil
}

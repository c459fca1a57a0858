// Package output renders boards as console diagrams, SVG images or JSON.
package output

import (
	"io"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/config"
	"github.com/lgbarn/jchess-go/internal/engine"
)

// Marks highlights a piece and the squares it can move to.
type Marks struct {
	Origin  chess.Position
	Targets []chess.Position
}

// MarksFor returns the marks for the piece on origin.
func MarksFor(board *chess.Board, origin chess.Position) (*Marks, error) {
	targets, err := engine.DestinationsFrom(board, origin)
	if err != nil {
		return nil, err
	}
	return &Marks{Origin: origin, Targets: targets}, nil
}

// isTarget reports whether pos is one of the marked destinations.
func (m *Marks) isTarget(pos chess.Position) bool {
	if m == nil {
		return false
	}
	for _, t := range m.Targets {
		if t == pos {
			return true
		}
	}
	return false
}

// isOrigin reports whether pos is the marked piece's square.
func (m *Marks) isOrigin(pos chess.Position) bool {
	return m != nil && m.Origin == pos
}

// BoardWriter is the interface for writing boards to output.
// Different implementations handle different formats (text, SVG, JSON).
type BoardWriter interface {
	// WriteBoard writes one board. marks may be nil.
	WriteBoard(board *chess.Board, marks *Marks) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewBoardWriter creates the writer selected by cfg.Output.Format.
func NewBoardWriter(w io.Writer, cfg *config.Config) BoardWriter {
	switch cfg.Output.Format {
	case config.SVG:
		return NewSVGWriter(w, cfg)
	case config.JSON:
		return NewJSONWriterSingle(w, cfg)
	default:
		return NewTextWriter(w, cfg)
	}
}

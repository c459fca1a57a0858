package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/config"
	"github.com/lgbarn/jchess-go/internal/engine"
)

const (
	emptySquare   = '.'
	quietTarget   = '_'
	captureTarget = 'x'
	fileFooter    = "     a b c d e f g h"
)

// TextWriter writes boards as console diagrams.
type TextWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteBoard writes the diagram, with marked destinations shown as '_'
// (empty square) or 'x' (capture).
func (tw *TextWriter) WriteBoard(board *chess.Board, marks *Marks) error {
	_, err := io.WriteString(tw.w, RenderText(board, marks, tw.cfg.Output))
	return err
}

// Flush is a no-op; the text writer writes immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// RenderText returns the diagram of board as a string.
func RenderText(board *chess.Board, marks *Marks, opts *config.OutputConfig) string {
	var sb strings.Builder

	sb.WriteString("\n")
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		fmt.Fprintf(&sb, " %d  ", rank+1)
		for file := 0; file < chess.BoardSize; file++ {
			sb.WriteByte(' ')
			sb.WriteByte(squareChar(board, marks, chess.NewPosition(file, rank)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(fileFooter)
	sb.WriteString("\n\n")

	if opts == nil || opts.ShowSummary {
		fmt.Fprintf(&sb, "Piece count: %d\n", board.PieceCount())
		fmt.Fprintf(&sb, "Playing side: %s\n", board.ToMove())
	}
	if marks != nil && len(marks.Targets) == 0 {
		sb.WriteString("No target positions for piece\n")
	}
	if (opts == nil || opts.ShowCheck) && engine.IsInCheck(board, board.ToMove()) {
		sb.WriteString("Check!\n")
	}
	return sb.String()
}

func squareChar(board *chess.Board, marks *Marks, pos chess.Position) byte {
	piece, occupied := board.PieceAt(pos)
	if marks.isTarget(pos) {
		if occupied {
			return captureTarget
		}
		return quietTarget
	}
	if !occupied {
		return emptySquare
	}
	return piece.Letter()
}

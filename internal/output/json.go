package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/config"
	"github.com/lgbarn/jchess-go/internal/engine"
)

// JSONBoard represents a board in JSON format.
type JSONBoard struct {
	FEN          string         `json:"fen"`
	Position     chess.Snapshot `json:"position"`
	Origin       string         `json:"origin,omitempty"`
	Destinations []string       `json:"destinations,omitempty"`
}

// JSONMove represents an applied move in JSON format.
type JSONMove struct {
	Ply       int    `json:"ply"`
	Move      string `json:"move"`
	UCI       string `json:"uci"`
	Text      string `json:"text,omitempty"`
	From      string `json:"from"`
	To        string `json:"to"`
	Piece     string `json:"piece"`
	Captured  string `json:"captured,omitempty"`
	Promotion string `json:"promotion,omitempty"`
	Castle    string `json:"castle,omitempty"`
	EnPassant bool   `json:"enPassant,omitempty"`
}

// JSONGame represents a game session in JSON format.
type JSONGame struct {
	StartFEN string     `json:"startFEN"`
	Moves    []JSONMove `json:"moves"`
	PlyCount int        `json:"plyCount"`
	Board    *JSONBoard `json:"board"`
}

// JSONOutput holds multiple boards for array output.
type JSONOutput struct {
	Boards []*JSONBoard `json:"boards"`
}

// BoardToJSON converts a board, and optional marks, to JSON format.
func BoardToJSON(board *chess.Board, marks *Marks) *JSONBoard {
	jb := &JSONBoard{
		FEN:      engine.BoardToFEN(board),
		Position: board.Snapshot(),
	}
	if marks != nil {
		jb.Origin = marks.Origin.String()
		jb.Destinations = SquareNames(marks.Targets)
	}
	return jb
}

// GameToJSON converts a game session to JSON format.
func GameToJSON(game *engine.Game) *JSONGame {
	history := game.History()
	jg := &JSONGame{
		StartFEN: game.StartFEN(),
		Moves:    make([]JSONMove, 0, len(history)),
		PlyCount: len(history),
		Board:    BoardToJSON(game.Board(), nil),
	}
	for i, m := range history {
		jg.Moves = append(jg.Moves, MoveToJSON(i+1, m))
	}
	return jg
}

// MoveToJSON converts one applied move to JSON format.
func MoveToJSON(ply int, m chess.Move) JSONMove {
	jm := JSONMove{
		Ply:       ply,
		Move:      m.String(),
		UCI:       m.UCI(),
		Text:      m.Text,
		From:      m.From.String(),
		To:        m.To.String(),
		Piece:     m.Piece.String(),
		EnPassant: m.EnPassant,
	}
	if m.IsCapture() {
		jm.Captured = m.Captured.String()
	}
	if m.IsPromotion() {
		jm.Promotion = m.Promotion.String()
	}
	if m.IsCastle() {
		jm.Castle = m.Castle.String()
	}
	return jm
}

// SquareNames converts positions to their algebraic names.
func SquareNames(positions []chess.Position) []string {
	names := make([]string, len(positions))
	for i, p := range positions {
		names[i] = p.String()
	}
	return names
}

// JSONWriter writes boards in JSON format.
// It buffers boards and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	cfg    *config.Config
	boards []*JSONBoard
	single bool // If true, write each board immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches boards and writes them as an array on Close().
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		boards: make([]*JSONBoard, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each board immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

// WriteBoard buffers a board for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteBoard(board *chess.Board, marks *Marks) error {
	jb := BoardToJSON(board, marks)
	if jw.single {
		return jw.encode(jb)
	}

	jw.boards = append(jw.boards, jb)
	return nil
}

// Flush writes all buffered boards as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.boards) == 0 {
		return nil
	}

	err := jw.encode(&JSONOutput{Boards: jw.boards})

	// Clear buffer after writing
	jw.boards = jw.boards[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

func (jw *JSONWriter) encode(v interface{}) error {
	enc := json.NewEncoder(jw.w)
	if jw.cfg.Output.IndentJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

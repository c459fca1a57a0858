package testutil

import (
	"testing"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/engine"
)

// MustBoard builds a board from FEN and calls t.Fatal if the FEN is invalid.
func MustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("failed to load FEN %q: %v", fen, err)
	}
	return board
}

// MustGame starts a game from FEN, or from the initial position when fen
// is empty, and calls t.Fatal if the FEN is invalid.
func MustGame(t *testing.T, fen string) *engine.Game {
	t.Helper()
	if fen == "" {
		return engine.NewGame()
	}
	g, err := engine.NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("failed to load FEN %q: %v", fen, err)
	}
	return g
}

// MustPlay applies each move in turn and calls t.Fatal on the first move
// that fails to resolve or is rejected.
func MustPlay(t *testing.T, g *engine.Game, moves ...string) {
	t.Helper()
	for i, text := range moves {
		outcome, err := g.Move(text)
		if err != nil {
			t.Fatalf("move %d %q: %v", i+1, text, err)
		}
		if !outcome.Applied {
			t.Fatalf("move %d %q rejected: %v", i+1, text, outcome.Rejection)
		}
	}
}

// Square is shorthand for chess.MustParsePosition.
func Square(text string) chess.Position {
	return chess.MustParsePosition(text)
}

// Squares parses each square name.
func Squares(texts ...string) []chess.Position {
	out := make([]chess.Position, len(texts))
	for i, text := range texts {
		out[i] = chess.MustParsePosition(text)
	}
	return out
}

package testutil

import (
	"fmt"
	"testing"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/engine"
	"github.com/lgbarn/jchess-go/internal/errors"
)

// Failing assertions cannot be observed without a fake *testing.T, so
// these tests exercise the passing paths and formatMessage directly.

func TestAssertEqual_Values(t *testing.T) {
	AssertEqual(t, chess.White.Opposite(), chess.Black)
	AssertEqual(t, Squares("e2", "e4"), []chess.Position{Square("e2"), Square("e4")})
	AssertEqual(t, MustBoard(t, engine.InitialFEN).Snapshot(), engine.NewInitialBoard().Snapshot())
	AssertEqual(t, nil, nil)
	AssertEqual(t, engine.InitialFEN, engine.InitialFEN, "fen of %s", "initial position")
}

func TestAssertErrors(t *testing.T) {
	board := MustBoard(t, engine.InitialFEN)
	_, err := engine.DestinationsFrom(board, Square("e4"))

	AssertError(t, err)
	AssertErrorIs(t, err, errors.ErrPieceNotFound)
	AssertErrorIs(t, fmt.Errorf("replay: %w", err), errors.ErrPieceNotFound, "wrapped once")
	AssertNoError(t, nil)

	_, err = engine.DestinationsFrom(board, Square("g1"))
	AssertNoError(t, err, "knight on %s", "g1")
}

func TestAssertStrings(t *testing.T) {
	fen := engine.InitialFEN
	AssertContains(t, fen, "KQkq")
	AssertContains(t, fen, "")
	AssertNotContains(t, fen, "e3")
}

func TestAssertBooleans(t *testing.T) {
	board := MustBoard(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	AssertTrue(t, board.PieceCount() == 3)
	AssertFalse(t, engine.IsInCheck(board, chess.Black))
}

func TestAssertNil(t *testing.T) {
	var board *chess.Board
	AssertNil(t, board)
	AssertNil(t, nil)

	piece, ok := MustBoard(t, engine.InitialFEN).PieceAt(Square("e1"))
	AssertTrue(t, ok)
	AssertNotNil(t, piece)
	AssertNotNil(t, Squares("a1"))
}

func TestIsNil(t *testing.T) {
	var board *chess.Board
	var moves []chess.Move
	tests := []struct {
		name string
		v    interface{}
		want bool
	}{
		{"untyped nil", nil, true},
		{"typed nil pointer", board, true},
		{"nil slice", moves, true},
		{"position", Square("e4"), false},
		{"empty slice", []chess.Move{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNil(tt.v); got != tt.want {
				t.Errorf("isNil(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"plain string", []interface{}{"after e4"}, "after e4"},
		{"stringer", []interface{}{chess.Black}, "Black"},
		{"format", []interface{}{"ply %d: %s", 3, "Nf3"}, "ply 3: Nf3"},
		{"non-string format", []interface{}{42, "ignored"}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

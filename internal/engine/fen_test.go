package engine_test

import (
	"testing"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/engine"
	"github.com/lgbarn/jchess-go/internal/errors"
	"github.com/lgbarn/jchess-go/internal/testutil"
)

func TestNewBoardFromFEN(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		checkFn func(*chess.Board) bool
	}{
		{
			name: "initial position",
			fen:  engine.InitialFEN,
			checkFn: func(b *chess.Board) bool {
				k, ok := b.PieceAt(testutil.Square("e1"))
				q, ok2 := b.PieceAt(testutil.Square("d8"))
				return ok && ok2 &&
					k.Type() == chess.King && k.Colour() == chess.White &&
					q.Type() == chess.Queen && q.Colour() == chess.Black &&
					b.PieceCount() == 32 &&
					b.ToMove() == chess.White &&
					b.CastlingRights(chess.White) == chess.BothSides &&
					b.CastlingRights(chess.Black) == chess.BothSides
			},
		},
		{
			name: "after 1.e4",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			checkFn: func(b *chess.Board) bool {
				ep, ok := b.EnPassant()
				return ok && ep == testutil.Square("e3") &&
					b.IsEmpty(testutil.Square("e2")) &&
					b.ToMove() == chess.Black
			},
		},
		{
			name: "black queenside right stays with black",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w q - 0 1",
			checkFn: func(b *chess.Board) bool {
				return b.CastlingRights(chess.White) == chess.NoCastling &&
					b.CastlingRights(chess.Black) == chess.Queenside
			},
		},
		{
			name: "clocks are optional",
			fen:  "4k3/8/8/8/8/8/8/4K3 w - -",
			checkFn: func(b *chess.Board) bool {
				return b.HalfmoveCount() == 0 && b.FullmoveNumber() == 1
			},
		},
		{
			name: "clocks are loaded",
			fen:  "4k3/8/8/8/8/8/8/4K3 b - - 12 40",
			checkFn: func(b *chess.Board) bool {
				return b.HalfmoveCount() == 12 && b.FullmoveNumber() == 40
			},
		},
		{
			name: "any side other than w is black",
			fen:  "4k3/8/8/8/8/8/8/4K3 x - - 0 1",
			checkFn: func(b *chess.Board) bool {
				return b.ToMove() == chess.Black
			},
		},
		{
			name: "check flag computed on import",
			fen:  "4k3/8/8/8/8/8/8/4R1K1 b - - 0 1",
			checkFn: func(b *chess.Board) bool {
				return engine.IsInCheck(b, chess.Black) && !engine.IsInCheck(b, chess.White)
			},
		},
		{
			name: "moved pawns inferred",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			checkFn: func(b *chess.Board) bool {
				e4, _ := b.PieceAt(testutil.Square("e4"))
				d2, _ := b.PieceAt(testutil.Square("d2"))
				return e4.HasMoved() && !d2.HasMoved()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := engine.NewBoardFromFEN(tt.fen)
			if err != nil {
				t.Fatalf("NewBoardFromFEN(%q) error = %v", tt.fen, err)
			}
			if !tt.checkFn(board) {
				t.Errorf("board from %q failed check", tt.fen)
			}
		})
	}
}

func TestNewBoardFromFEN_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		field string
	}{
		{"empty", "", ""},
		{"too few fields", "8/8/8/8/8/8/8/8 w", ""},
		{"too many fields", "8/8/8/8/8/8/8/8 w - - 0 1 extra", ""},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1", "placement"},
		{"rank too wide", "rnbqkbnrr/8/8/8/8/8/8/8 w - - 0 1", "placement"},
		{"rank too narrow", "7/8/8/8/8/8/8/8 w - - 0 1", "placement"},
		{"bad piece letter", "rnbqkbnx/8/8/8/8/8/8/8 w - - 0 1", "placement"},
		{"digit nine", "9/8/8/8/8/8/8/8 w - - 0 1", "placement"},
		{"bad castling", "8/8/8/8/8/8/8/8 w KX - 0 1", "castling"},
		{"bad en passant", "8/8/8/8/8/8/8/8 w - e9 0 1", "en passant"},
		{"occupied en passant", "4k3/8/8/8/3pP3/4N3/8/4K3 b - e3 0 1", "en passant"},
		{"en passant on mover's side", "4k3/8/8/8/4P3/8/3P4/4K3 w - e3 0 1", "en passant"},
		{"en passant wrong rank", "4k3/8/8/3pP3/8/8/8/4K3 b - e4 0 1", "en passant"},
		{"en passant without pawn", "4k3/8/8/8/3p4/8/8/4K3 b - e3 0 1", "en passant"},
		{"en passant behind own pawn", "4k3/8/8/8/3pp3/8/8/4K3 b - e3 0 1", "en passant"},
		{"seventeen black pieces", "pppppppp/pppppppp/pppppppp/pppppppp/pppppppp/8/8/4K2k w - - 0 1", "placement"},
		{"seventeen white pieces", "4k3/8/8/8/8/PPPPPPPP/PPPPPPPP/3QK3 w - - 0 1", "placement"},
		{"negative halfmove", "8/8/8/8/8/8/8/8 w - - -1 1", "halfmove clock"},
		{"text halfmove", "8/8/8/8/8/8/8/8 w - - x 1", "halfmove clock"},
		{"zero fullmove", "8/8/8/8/8/8/8/8 w - - 0 0", "fullmove number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := engine.NewBoardFromFEN(tt.fen)
			if board != nil {
				t.Error("board should be nil on error")
			}
			testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)

			var pe *errors.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			if pe.Field != tt.field {
				t.Errorf("Field = %q; want %q", pe.Field, tt.field)
			}
		})
	}
}

func TestNewBoardFromFEN_PieceLimit(t *testing.T) {
	// Sixteen per side is the most a legal game can reach.
	board := testutil.MustBoard(t, "4k3/ppppppp1/pppppppp/8/8/PPPPPPPP/PPPPPPP1/4K3 w - - 0 1")
	testutil.AssertEqual(t, board.PieceCount(), 32)

	_, err := engine.NewBoardFromFEN("4k3/ppppppp1/pppppppp/p7/8/PPPPPPPP/PPPPPPP1/4K3 w - - 0 1")
	var pe *errors.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a *ParseError", err)
	}
	testutil.AssertContains(t, pe.Error(), "at most 16 black pieces")
}

func TestBoardToFEN_RoundTrip(t *testing.T) {
	fens := []string{
		engine.InitialFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"r3k2r/8/8/8/8/8/8/R3K2R w Kq - 5 20",
		"8/8/8/8/8/8/8/8 b - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - 99 100",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			board := testutil.MustBoard(t, fen)
			testutil.AssertEqual(t, engine.BoardToFEN(board), fen)
		})
	}
}

func TestBoardToFEN_DefaultsClocks(t *testing.T) {
	board := testutil.MustBoard(t, "4k3/8/8/8/8/8/8/4K3 w - -")
	testutil.AssertEqual(t, engine.BoardToFEN(board), "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
}

func TestNewInitialBoard(t *testing.T) {
	board := engine.NewInitialBoard()
	testutil.AssertEqual(t, engine.BoardToFEN(board), engine.InitialFEN)
	testutil.AssertFalse(t, engine.IsInCheck(board, chess.White))
	testutil.AssertFalse(t, engine.IsInCheck(board, chess.Black))
}

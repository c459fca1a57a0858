package engine

import (
	"strings"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/errors"
)

// ResolveMove resolves a move string in either notation. Text shaped like
// a UCI move ("e2e4", "e7e8q") is resolved as UCI, everything else as
// algebraic notation.
func ResolveMove(board *chess.Board, text string) (chess.Move, error) {
	if IsUCI(text) {
		return ResolveUCI(board, text)
	}
	return ResolveAlgebraic(board, text)
}

// IsUCI reports whether text has the shape of a UCI move.
func IsUCI(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) != 4 && len(text) != 5 {
		return false
	}
	if !chess.IsFileLetter(text[0]) || !chess.IsRankDigit(text[1]) ||
		!chess.IsFileLetter(text[2]) || !chess.IsRankDigit(text[3]) {
		return false
	}
	return len(text) == 4 || strings.IndexByte("qrbn", text[4]) >= 0
}

// ResolveUCI resolves a long algebraic move such as "g1f3" or "e7e8q".
// The origin square must hold a piece; legality is left to ApplyMove.
func ResolveUCI(board *chess.Board, text string) (chess.Move, error) {
	s := strings.TrimSpace(text)
	if len(s) != 4 && len(s) != 5 {
		return chess.Move{}, unresolved(text)
	}
	from, err := chess.ParsePosition(s[0:2])
	if err != nil {
		return chess.Move{}, &errors.NotationError{Err: err, Notation: text}
	}
	to, err := chess.ParsePosition(s[2:4])
	if err != nil {
		return chess.Move{}, &errors.NotationError{Err: err, Notation: text}
	}

	move := chess.NewMove(from, to)
	move.Text = text
	if len(s) == 5 {
		kind, ok := chess.ParsePieceLetter(s[4])
		if !ok || !kind.CanPromoteTo() {
			return chess.Move{}, unresolved(text)
		}
		move.Promotion = kind
	}

	piece, ok := board.PieceAt(from)
	if !ok {
		return chess.Move{}, &errors.NotationError{Err: errors.ErrPieceNotFound, Notation: text}
	}
	move.Piece = piece.Type()
	return move, nil
}

// ResolveAlgebraic resolves a standard algebraic move such as "Nf3",
// "exd5", "Rad1", "e8=Q" or "O-O" for the side to move. The moving piece
// is the unique piece of the named type that matches the disambiguation
// hint and can reach the destination.
func ResolveAlgebraic(board *chess.Board, text string) (chess.Move, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimRight(s, "+#!?")
	s = strings.ReplaceAll(s, "x", "")

	if side := parseCastle(s); side != chess.NoCastling {
		return resolveCastle(board, side, text)
	}

	promotion := chess.NoPiece
	if n := len(s); n >= 2 && s[n-2] == '=' {
		kind, ok := chess.ParsePieceLetter(s[n-1])
		if !ok {
			return chess.Move{}, unresolved(text)
		}
		promotion = kind
		s = s[:n-2]
	}

	kind := chess.Pawn
	if len(s) > 0 && strings.IndexByte("KQRBN", s[0]) >= 0 {
		kind, _ = chess.ParsePieceLetter(s[0])
		s = s[1:]
	}

	if len(s) < 2 {
		return chess.Move{}, unresolved(text)
	}
	to, err := chess.ParsePosition(s[len(s)-2:])
	if err != nil {
		return chess.Move{}, &errors.NotationError{Err: err, Notation: text}
	}

	hint, ok := parseHint(s[:len(s)-2])
	if !ok {
		return chess.Move{}, unresolved(text)
	}

	var candidates []*chess.Piece
	for _, p := range board.PiecesOf(board.ToMove()) {
		if p.Type() != kind || !hint.Matches(p.Position()) {
			continue
		}
		if IsLegal(board, p, to) {
			candidates = append(candidates, p)
		}
	}

	switch len(candidates) {
	case 0:
		return chess.Move{}, unresolved(text)
	case 1:
	default:
		return chess.Move{}, &errors.NotationError{
			Err:        errors.ErrAmbiguousNotation,
			Notation:   text,
			Candidates: len(candidates),
		}
	}

	move := chess.NewMove(candidates[0].Position(), to)
	move.Piece = kind
	move.Promotion = promotion
	move.Text = text
	return move, nil
}

// parseCastle recognises O-O and O-O-O, written with letters or zeros.
func parseCastle(s string) chess.CastlingRights {
	switch s {
	case "O-O", "0-0":
		return chess.Kingside
	case "O-O-O", "0-0-0":
		return chess.Queenside
	}
	return chess.NoCastling
}

// resolveCastle builds the king move for a castling string.
func resolveCastle(board *chess.Board, side chess.CastlingRights, text string) (chess.Move, error) {
	king, ok := board.King(board.ToMove())
	if !ok {
		return chess.Move{}, unresolved(text)
	}
	from := king.Position()
	to := from.Offset(2*castleDirection(side), 0)
	if !to.InBounds() {
		return chess.Move{}, unresolved(text)
	}
	move := chess.NewMove(from, to)
	move.Piece = chess.King
	move.Text = text
	return move, nil
}

// parseHint converts the disambiguation characters between the piece
// letter and the destination into a partial position.
func parseHint(h string) (chess.Position, bool) {
	hint := chess.NoPosition
	switch len(h) {
	case 0:
	case 1:
		switch {
		case chess.IsFileLetter(h[0]):
			hint.File = int(h[0] - 'a')
		case chess.IsRankDigit(h[0]):
			hint.Rank = int(h[0] - '1')
		default:
			return hint, false
		}
	case 2:
		pos, err := chess.ParsePosition(h)
		if err != nil {
			return hint, false
		}
		hint = pos
	default:
		return hint, false
	}
	return hint, true
}

func unresolved(text string) error {
	return &errors.NotationError{Err: errors.ErrUnresolvedNotation, Notation: text}
}

package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/jchess-go/internal/chess"
)

// IsInCheck returns true if the given colour's king is flagged in check.
// The flag is recomputed by UpdateCheckFlags after every applied move.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king, ok := board.King(colour)
	return ok && king.InCheck()
}

// UpdateCheckFlags rescans the board and sets the check flag of every king.
func UpdateCheckFlags(board *chess.Board) {
	for _, p := range board.Pieces() {
		if p.Type() != chess.King {
			p.SetInCheck(false)
			continue
		}
		p.SetInCheck(IsSquareAttacked(board, p.Position(), p.Colour().Opposite()))
	}
}

// IsSquareAttacked returns true if any piece of byColour could capture on pos.
func IsSquareAttacked(board *chess.Board, pos chess.Position, byColour chess.Colour) bool {
	for _, p := range board.PiecesOf(byColour) {
		if slices.Contains(attackedSquares(board, p), pos) {
			return true
		}
	}
	return false
}

// attackedSquares returns the squares a piece attacks. Pawns attack
// diagonally whether or not a piece is there; kings never attack through
// castling.
func attackedSquares(board *chess.Board, p *chess.Piece) []chess.Position {
	switch p.Type() {
	case chess.Pawn:
		return pawnAttacks(p)
	case chess.King:
		return stepDestinations(board, p, allDirs)
	}
	return LegalDestinations(board, p)
}

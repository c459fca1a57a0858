package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/errors"
)

// LegalDestinations returns the squares the piece may move to.
// Destinations are pseudo-legal: they respect board edges, blocking and
// friendly occupancy, but a move may still leave the mover's own king
// in check. The order is stable for an unchanged board.
func LegalDestinations(board *chess.Board, piece *chess.Piece) []chess.Position {
	switch piece.Type() {
	case chess.King:
		return append(stepDestinations(board, piece, allDirs), castlingDestinations(board, piece)...)
	case chess.Knight:
		return stepDestinations(board, piece, knightOffsets)
	case chess.Rook:
		return rayDestinations(board, piece, straightDirs)
	case chess.Bishop:
		return rayDestinations(board, piece, diagonalDirs)
	case chess.Queen:
		return rayDestinations(board, piece, allDirs)
	case chess.Pawn:
		return pawnDestinations(board, piece)
	}
	return nil
}

// IsLegal reports whether dest is one of the piece's destinations.
func IsLegal(board *chess.Board, piece *chess.Piece, dest chess.Position) bool {
	return slices.Contains(LegalDestinations(board, piece), dest)
}

// DestinationsFrom returns the destinations of the piece standing on pos.
func DestinationsFrom(board *chess.Board, pos chess.Position) ([]chess.Position, error) {
	piece, ok := board.PieceAt(pos)
	if !ok {
		return nil, errors.Wrapf(errors.ErrPieceNotFound, "%v", pos)
	}
	return LegalDestinations(board, piece), nil
}

// AllMoves returns every pseudo-legal move of one colour, ordered by
// origin square. Promotions are not expanded.
func AllMoves(board *chess.Board, colour chess.Colour) []chess.Move {
	pieces := board.PiecesOf(colour)
	slices.SortFunc(pieces, func(a, b *chess.Piece) int {
		return a.Position().Index() - b.Position().Index()
	})

	var moves []chess.Move
	for _, p := range pieces {
		for _, dest := range LegalDestinations(board, p) {
			m := chess.NewMove(p.Position(), dest)
			m.Piece = p.Type()
			moves = append(moves, m)
		}
	}
	return moves
}

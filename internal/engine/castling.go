package engine

import "github.com/lgbarn/jchess-go/internal/chess"

// kingHomeFile is the e-file, where both kings start.
const kingHomeFile = 4

// castlingDestinations returns the squares an unmoved king can castle to.
// Each wing needs the matching right of the king's colour, an unmoved
// own rook on the corner and empty squares in between.
func castlingDestinations(board *chess.Board, king *chess.Piece) []chess.Position {
	if king.HasMoved() {
		return nil
	}
	colour := king.Colour()
	from := king.Position()
	if from != chess.NewPosition(kingHomeFile, chess.HomeRank(colour)) {
		return nil
	}

	var out []chess.Position
	rights := board.CastlingRights(colour)
	for _, side := range []chess.CastlingRights{chess.Kingside, chess.Queenside} {
		if !rights.Has(side) {
			continue
		}
		corner := rookCorner(colour, side)
		rook, ok := board.PieceAt(corner)
		if !ok || rook.Type() != chess.Rook || rook.Colour() != colour || rook.HasMoved() {
			continue
		}
		if !isPathClear(board, from, corner) {
			continue
		}
		out = append(out, from.Offset(2*castleDirection(side), 0))
	}
	return out
}

// rookCorner returns the corner square of the rook for one wing.
func rookCorner(colour chess.Colour, side chess.CastlingRights) chess.Position {
	if side == chess.Kingside {
		return chess.NewPosition(chess.BoardSize-1, chess.HomeRank(colour))
	}
	return chess.NewPosition(0, chess.HomeRank(colour))
}

// castleDirection returns +1 toward the h-file or -1 toward the a-file.
func castleDirection(side chess.CastlingRights) int {
	if side == chess.Kingside {
		return 1
	}
	return -1
}

// castleSide classifies a king move of two files.
func castleSide(from, to chess.Position) chess.CastlingRights {
	if from.Rank != to.Rank {
		return chess.NoCastling
	}
	switch to.File - from.File {
	case 2:
		return chess.Kingside
	case -2:
		return chess.Queenside
	}
	return chess.NoCastling
}

// cornerSide returns the wing whose rook starts on pos for colour.
func cornerSide(colour chess.Colour, pos chess.Position) chess.CastlingRights {
	switch pos {
	case rookCorner(colour, chess.Kingside):
		return chess.Kingside
	case rookCorner(colour, chess.Queenside):
		return chess.Queenside
	}
	return chess.NoCastling
}

// updateCastlingRights removes rights lost by a move: a king move loses
// both wings, a rook leaving or captured on its corner loses that wing.
func updateCastlingRights(board *chess.Board, mover chess.PieceType, colour chess.Colour, from, to chess.Position, captured chess.PieceType) {
	rights := board.CastlingRights(colour)
	switch mover {
	case chess.King:
		rights = chess.NoCastling
	case chess.Rook:
		rights = rights.Without(cornerSide(colour, from))
	}
	board.SetCastlingRights(colour, rights)

	if captured == chess.Rook {
		enemy := colour.Opposite()
		board.SetCastlingRights(enemy, board.CastlingRights(enemy).Without(cornerSide(enemy, to)))
	}
}

package engine

import "github.com/lgbarn/jchess-go/internal/chess"

// pawnDestinations returns the pawn's pushes and captures.
func pawnDestinations(board *chess.Board, pawn *chess.Piece) []chess.Position {
	var out []chess.Position
	colour := pawn.Colour()
	direction := chess.ColourOffset(colour)
	from := pawn.Position()

	one := from.Offset(0, direction)
	if one.InBounds() && board.IsEmpty(one) {
		out = append(out, one)
		two := from.Offset(0, 2*direction)
		if from.Rank == chess.PawnRank(colour) && !pawn.HasMoved() && board.IsEmpty(two) {
			out = append(out, two)
		}
	}

	ep, hasEP := board.EnPassant()
	for _, df := range []int{-1, 1} {
		diag := from.Offset(df, direction)
		if !diag.InBounds() {
			continue
		}
		if isEnemy(board, diag, colour) {
			out = append(out, diag)
			continue
		}
		if hasEP && diag == ep && enPassantCapturable(board, ep, colour) {
			out = append(out, diag)
		}
	}
	return out
}

// pawnAttacks returns the two diagonal squares a pawn attacks.
func pawnAttacks(pawn *chess.Piece) []chess.Position {
	var out []chess.Position
	direction := chess.ColourOffset(pawn.Colour())
	for _, df := range []int{-1, 1} {
		if pos := pawn.Position().Offset(df, direction); pos.InBounds() {
			out = append(out, pos)
		}
	}
	return out
}

// enPassantRank returns the rank on which a pawn of the given colour
// may capture en passant: the square skipped by an enemy double step.
func enPassantRank(colour chess.Colour) int {
	return chess.PromotionRank(colour) - 2*chess.ColourOffset(colour)
}

// enPassantCapturable reports whether a pawn of the given colour may
// capture en passant on ep: the square is empty, on the right rank, and
// an enemy pawn stands behind it.
func enPassantCapturable(board *chess.Board, ep chess.Position, colour chess.Colour) bool {
	if ep.Rank != enPassantRank(colour) || !board.IsEmpty(ep) {
		return false
	}
	victim, ok := board.PieceAt(enPassantVictim(ep, colour))
	return ok && victim.Type() == chess.Pawn && victim.Colour() != colour
}

// isDoubleStep reports whether a pawn move covers two ranks.
func isDoubleStep(from, to chess.Position) bool {
	return from.File == to.File && distance(from.Rank, to.Rank) == 2
}

// skippedSquare returns the square between the two ends of a double step.
func skippedSquare(from, to chess.Position) chess.Position {
	return chess.NewPosition(from.File, (from.Rank+to.Rank)/2)
}

// enPassantVictim returns the square of the pawn captured en passant by
// a pawn of the given colour landing on to.
func enPassantVictim(to chess.Position, colour chess.Colour) chess.Position {
	return to.Offset(0, -chess.ColourOffset(colour))
}

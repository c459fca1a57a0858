package engine

import "github.com/lgbarn/jchess-go/internal/chess"

// Direction sets, as (file, rank) deltas.
var (
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	allDirs       = append(append([][2]int{}, straightDirs...), diagonalDirs...)
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// rayDestinations walks outward from the piece along each direction.
// A ray includes the first enemy square it meets and stops before a
// friendly one.
func rayDestinations(board *chess.Board, piece *chess.Piece, dirs [][2]int) []chess.Position {
	var out []chess.Position
	from := piece.Position()
	for _, dir := range dirs {
		pos := from.Offset(dir[0], dir[1])
		for pos.InBounds() {
			other, occupied := board.PieceAt(pos)
			if occupied {
				if other.Colour() != piece.Colour() {
					out = append(out, pos)
				}
				break
			}
			out = append(out, pos)
			pos = pos.Offset(dir[0], dir[1])
		}
	}
	return out
}

// stepDestinations tries each fixed offset from the piece once.
func stepDestinations(board *chess.Board, piece *chess.Piece, offsets [][2]int) []chess.Position {
	var out []chess.Position
	from := piece.Position()
	for _, off := range offsets {
		pos := from.Offset(off[0], off[1])
		if !pos.InBounds() || isFriendly(board, pos, piece.Colour()) {
			continue
		}
		out = append(out, pos)
	}
	return out
}

// isPathClear checks that every square strictly between from and to is
// empty. The two squares must share a rank, file or diagonal.
func isPathClear(board *chess.Board, from, to chess.Position) bool {
	df := step(from.File, to.File)
	dr := step(from.Rank, to.Rank)

	pos := from.Offset(df, dr)
	for pos != to {
		if !pos.InBounds() || !board.IsEmpty(pos) {
			return false
		}
		pos = pos.Offset(df, dr)
	}
	return true
}

// isFriendly reports whether pos holds a piece of the given colour.
func isFriendly(board *chess.Board, pos chess.Position, colour chess.Colour) bool {
	p, ok := board.PieceAt(pos)
	return ok && p.Colour() == colour
}

// isEnemy reports whether pos holds a piece of the other colour.
func isEnemy(board *chess.Board, pos chess.Position, colour chess.Colour) bool {
	p, ok := board.PieceAt(pos)
	return ok && p.Colour() != colour
}

// step returns the unit step from a towards b along one axis.
func step(a, b int) int {
	switch {
	case b > a:
		return 1
	case b < a:
		return -1
	}
	return 0
}

// distance returns |a-b|.
func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// Package chess provides the board state model: colours, piece types,
// positions, pieces, the board aggregate and move values.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Colours lists both colours in the order White, Black.
var Colours = [2]Colour{White, Black}

// PieceType represents the kind of a chess piece.
type PieceType int

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece type (uppercase).
func (p PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// ColouredLetter returns the FEN letter of a piece: uppercase for White,
// lowercase for Black.
func (p PieceType) ColouredLetter(c Colour) byte {
	l := p.Letter()
	if c == Black && l >= 'A' && l <= 'Z' {
		return l + ('a' - 'A')
	}
	return l
}

// ParsePieceLetter converts a piece letter in either case to a piece type.
func ParsePieceLetter(b byte) (PieceType, bool) {
	switch b {
	case 'P', 'p':
		return Pawn, true
	case 'N', 'n':
		return Knight, true
	case 'B', 'b':
		return Bishop, true
	case 'R', 'r':
		return Rook, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	}
	return NoPiece, false
}

// CanPromoteTo reports whether a pawn may be promoted to p.
func (p PieceType) CanPromoteTo() bool {
	return p == Queen || p == Rook || p == Bishop || p == Knight
}

// CastlingRights is the set of castling options still held by one side.
type CastlingRights uint8

const (
	NoCastling CastlingRights = 0
	Kingside   CastlingRights = 1 << 0
	Queenside  CastlingRights = 1 << 1
	BothSides                 = Kingside | Queenside
)

// Has reports whether all rights in r are held.
func (c CastlingRights) Has(r CastlingRights) bool {
	return r != NoCastling && c&r == r
}

// With returns c with r added.
func (c CastlingRights) With(r CastlingRights) CastlingRights {
	return c | r
}

// Without returns c with r removed.
func (c CastlingRights) Without(r CastlingRights) CastlingRights {
	return c &^ r
}

// String returns None, Kingside, Queenside or Both.
func (c CastlingRights) String() string {
	switch c & BothSides {
	case Kingside:
		return "Kingside"
	case Queenside:
		return "Queenside"
	case BothSides:
		return "Both"
	}
	return "None"
}

// Constants for board dimensions.
const (
	BoardSize = 8
	MaxPieces = 32
)

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// HomeRank returns the rank index of a colour's back rank.
func HomeRank(colour Colour) int {
	if colour == White {
		return 0
	}
	return BoardSize - 1
}

// PawnRank returns the rank index on which a colour's pawns start.
func PawnRank(colour Colour) int {
	return HomeRank(colour) + ColourOffset(colour)
}

// PromotionRank returns the rank index on which a colour's pawns promote.
func PromotionRank(colour Colour) int {
	return HomeRank(colour.Opposite())
}

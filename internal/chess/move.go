package chess

import "strings"

// Move represents a single move from one square to another. The
// annotations (Castle, EnPassant, Captured, Promotion) are filled in
// while the move is applied; a caller may preset Promotion.
// A Move holds no piece pointers, so it never aliases a board.
type Move struct {
	// Origin and destination squares.
	From Position
	To   Position

	// The type of the moving piece.
	Piece PieceType

	// The piece promoted to (NoPiece if not a promotion).
	Promotion PieceType

	// Kingside or Queenside for castling moves, NoCastling otherwise.
	Castle CastlingRights

	// Whether the move captured en passant.
	EnPassant bool

	// The piece captured (NoPiece if no capture).
	Captured PieceType

	// The text the move was resolved from, if any.
	Text string
}

// NewMove creates a move between two squares with no annotations.
func NewMove(from, to Position) Move {
	return Move{From: from, To: to}
}

// IsCapture returns true if this move captured a piece.
func (m Move) IsCapture() bool {
	return m.Captured != NoPiece || m.EnPassant
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPiece
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	return m.Castle != NoCastling
}

// UCI returns the move in long algebraic form, e.g. "e7e8q".
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}

// String returns a readable form such as "Ng1-f3", "e5xd6 e.p." or "O-O".
func (m Move) String() string {
	switch m.Castle {
	case Kingside:
		return "O-O"
	case Queenside:
		return "O-O-O"
	}
	var sb strings.Builder
	if m.Piece != NoPiece && m.Piece != Pawn {
		sb.WriteByte(m.Piece.Letter())
	}
	sb.WriteString(m.From.String())
	if m.IsCapture() {
		sb.WriteByte('x')
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(m.To.String())
	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(m.Promotion.Letter())
	}
	if m.EnPassant {
		sb.WriteString(" e.p.")
	}
	return sb.String()
}

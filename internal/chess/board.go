package chess

import (
	"github.com/lgbarn/jchess-go/internal/errors"
)

// Board represents a chess board with all state needed for the game.
// It owns its pieces; no two pieces ever share a square.
type Board struct {
	// The pieces on the board, in insertion order.
	pieces []*Piece

	// Who has the next move.
	toMove Colour

	// Castling rights, indexed by Colour.
	castling [2]CastlingRights

	// The square a pawn skipped on its last double step, or NoPosition.
	enPassant Position

	// Halfmoves played since the position was set up.
	halfmoves int

	// The current move number, advanced after every Black move.
	fullmove int
}

// NewBoard creates a new empty board with White to move.
func NewBoard() *Board {
	return &Board{
		pieces:    make([]*Piece, 0, MaxPieces),
		toMove:    White,
		enPassant: NoPosition,
		fullmove:  1,
	}
}

// PieceAt returns the piece standing on pos.
func (b *Board) PieceAt(pos Position) (*Piece, bool) {
	for _, p := range b.pieces {
		if p.pos == pos {
			return p, true
		}
	}
	return nil, false
}

// IsEmpty reports whether no piece stands on pos.
func (b *Board) IsEmpty(pos Position) bool {
	_, ok := b.PieceAt(pos)
	return !ok
}

// Add places a piece on the board.
func (b *Board) Add(p *Piece) error {
	if !p.pos.InBounds() {
		return errors.Wrapf(errors.ErrPieceOutOfBounds, "adding %v", p)
	}
	if _, ok := b.PieceAt(p.pos); ok {
		return errors.Wrapf(errors.ErrSquareOccupied, "adding %v", p)
	}
	b.pieces = append(b.pieces, p)
	return nil
}

// Place creates a piece and adds it to the board.
func (b *Board) Place(kind PieceType, colour Colour, pos Position) (*Piece, error) {
	p, err := NewPiece(kind, colour, pos)
	if err != nil {
		return nil, err
	}
	if err := b.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Remove takes the piece on pos off the board and returns it.
func (b *Board) Remove(pos Position) (*Piece, error) {
	for i, p := range b.pieces {
		if p.pos == pos {
			b.pieces = append(b.pieces[:i], b.pieces[i+1:]...)
			return p, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrPieceNotFound, "removing from %v", pos)
}

// Relocate moves the piece on from to the empty square to.
func (b *Board) Relocate(from, to Position) error {
	if !to.InBounds() {
		return errors.Wrapf(errors.ErrPieceOutOfBounds, "relocating to %v", to)
	}
	if _, ok := b.PieceAt(to); ok {
		return errors.Wrapf(errors.ErrSquareOccupied, "relocating to %v", to)
	}
	p, err := b.Remove(from)
	if err != nil {
		return err
	}
	p.pos = to
	return b.Add(p)
}

// Pieces returns all pieces on the board.
func (b *Board) Pieces() []*Piece {
	out := make([]*Piece, len(b.pieces))
	copy(out, b.pieces)
	return out
}

// PiecesOf returns the pieces of one colour.
func (b *Board) PiecesOf(colour Colour) []*Piece {
	var out []*Piece
	for _, p := range b.pieces {
		if p.colour == colour {
			out = append(out, p)
		}
	}
	return out
}

// King returns the king of the given colour.
func (b *Board) King(colour Colour) (*Piece, bool) {
	for _, p := range b.pieces {
		if p.kind == King && p.colour == colour {
			return p, true
		}
	}
	return nil, false
}

// PieceCount returns the number of pieces on the board.
func (b *Board) PieceCount() int {
	return len(b.pieces)
}

// ToMove returns the side to move.
func (b *Board) ToMove() Colour { return b.toMove }

// SetToMove sets the side to move.
func (b *Board) SetToMove(c Colour) { b.toMove = c }

// CastlingRights returns the castling rights held by colour.
func (b *Board) CastlingRights(c Colour) CastlingRights { return b.castling[c] }

// SetCastlingRights replaces the castling rights held by colour.
func (b *Board) SetCastlingRights(c Colour, r CastlingRights) { b.castling[c] = r & BothSides }

// EnPassant returns the en-passant target square, if any.
func (b *Board) EnPassant() (Position, bool) {
	return b.enPassant, b.enPassant.InBounds()
}

// SetEnPassant sets the en-passant target square.
func (b *Board) SetEnPassant(pos Position) { b.enPassant = pos }

// ClearEnPassant removes the en-passant target square.
func (b *Board) ClearEnPassant() { b.enPassant = NoPosition }

// HalfmoveCount returns the number of halfmoves played.
func (b *Board) HalfmoveCount() int { return b.halfmoves }

// SetHalfmoveCount sets the halfmove counter.
func (b *Board) SetHalfmoveCount(n int) { b.halfmoves = n }

// FullmoveNumber returns the current move number.
func (b *Board) FullmoveNumber() int { return b.fullmove }

// SetFullmoveNumber sets the move number.
func (b *Board) SetFullmoveNumber(n int) { b.fullmove = n }

// Copy creates a deep copy of the board. Every piece is reconstructed,
// so the copy can be mutated without affecting the original.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	newBoard.pieces = make([]*Piece, len(b.pieces), max(len(b.pieces), MaxPieces))
	for i, p := range b.pieces {
		newBoard.pieces[i] = p.clone()
	}
	return newBoard
}

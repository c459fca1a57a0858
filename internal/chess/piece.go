package chess

import (
	"github.com/lgbarn/jchess-go/internal/errors"
)

// Piece is a piece on the board. Its colour is fixed at construction;
// its type changes only on promotion.
type Piece struct {
	pos      Position
	kind     PieceType
	colour   Colour
	hasMoved bool
	inCheck  bool
}

// NewPiece creates a piece of the given type and colour at pos.
func NewPiece(kind PieceType, colour Colour, pos Position) (*Piece, error) {
	if !pos.InBounds() {
		return nil, errors.Wrapf(errors.ErrPieceOutOfBounds, "%s at %v", kind, pos)
	}
	return &Piece{pos: pos, kind: kind, colour: colour}, nil
}

// Position returns the square the piece stands on.
func (p *Piece) Position() Position { return p.pos }

// SetPosition moves the piece to pos without touching any board.
// Use Board.Relocate for pieces that belong to a board.
func (p *Piece) SetPosition(pos Position) error {
	if !pos.InBounds() {
		return errors.Wrapf(errors.ErrPieceOutOfBounds, "%s to %v", p.kind, pos)
	}
	p.pos = pos
	return nil
}

// Type returns the piece type.
func (p *Piece) Type() PieceType { return p.kind }

// SetType changes the piece type (promotion).
func (p *Piece) SetType(kind PieceType) { p.kind = kind }

// Colour returns the piece colour.
func (p *Piece) Colour() Colour { return p.colour }

// HasMoved reports whether the piece has moved since it was placed.
func (p *Piece) HasMoved() bool { return p.hasMoved }

// SetHasMoved sets the has-moved flag.
func (p *Piece) SetHasMoved(moved bool) { p.hasMoved = moved }

// InCheck reports the check flag. Only kings ever carry it.
func (p *Piece) InCheck() bool { return p.inCheck }

// SetInCheck sets the check flag.
func (p *Piece) SetInCheck(check bool) { p.inCheck = check }

// Letter returns the FEN letter of the piece.
func (p *Piece) Letter() byte {
	return p.kind.ColouredLetter(p.colour)
}

// clone returns an independent copy of the piece.
func (p *Piece) clone() *Piece {
	c := *p
	return &c
}

// String returns e.g. "White Knight g1".
func (p *Piece) String() string {
	return p.colour.String() + " " + p.kind.String() + " " + p.pos.String()
}

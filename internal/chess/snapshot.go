package chess

import (
	"golang.org/x/exp/slices"
)

// PieceInfo is the read-only view of one piece.
type PieceInfo struct {
	Square   string `json:"square"`
	Type     string `json:"type"`
	Colour   string `json:"colour"`
	Letter   string `json:"letter"`
	HasMoved bool   `json:"hasMoved"`
}

// Snapshot is a value copy of everything a renderer needs from a board.
// Two snapshots of the same position compare equal.
type Snapshot struct {
	Pieces         []PieceInfo `json:"pieces"`
	ToMove         string      `json:"toMove"`
	WhiteCastling  string      `json:"whiteCastling"`
	BlackCastling  string      `json:"blackCastling"`
	EnPassant      string      `json:"enPassant"`
	HalfmoveCount  int         `json:"halfmoveCount"`
	FullmoveNumber int         `json:"fullmoveNumber"`
	WhiteInCheck   bool        `json:"whiteInCheck"`
	BlackInCheck   bool        `json:"blackInCheck"`
}

// Snapshot captures the board state. Pieces are ordered a1, b1 ... h8.
func (b *Board) Snapshot() Snapshot {
	pieces := make([]*Piece, len(b.pieces))
	copy(pieces, b.pieces)
	slices.SortFunc(pieces, func(x, y *Piece) int {
		return x.pos.Index() - y.pos.Index()
	})

	s := Snapshot{
		Pieces:         make([]PieceInfo, 0, len(pieces)),
		ToMove:         b.toMove.String(),
		WhiteCastling:  b.castling[White].String(),
		BlackCastling:  b.castling[Black].String(),
		EnPassant:      b.enPassant.String(),
		HalfmoveCount:  b.halfmoves,
		FullmoveNumber: b.fullmove,
	}
	if !b.enPassant.InBounds() {
		s.EnPassant = "-"
	}
	for _, p := range pieces {
		s.Pieces = append(s.Pieces, PieceInfo{
			Square:   p.pos.String(),
			Type:     p.kind.String(),
			Colour:   p.colour.String(),
			Letter:   string(p.Letter()),
			HasMoved: p.hasMoved,
		})
		if p.kind == King && p.inCheck {
			if p.colour == White {
				s.WhiteInCheck = true
			} else {
				s.BlackInCheck = true
			}
		}
	}
	return s
}

// Package engine provides chess move generation, validation and
// application, check detection and the notation resolvers.
package engine

import (
	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/errors"
)

// Rejection says why a move was not applied.
type Rejection int

const (
	NotRejected Rejection = iota
	WrongSide
	Unreachable
	FriendlyOccupied
	BadPromotion
)

// String returns a short description of the rejection.
func (r Rejection) String() string {
	switch r {
	case WrongSide:
		return "piece does not belong to the side to move"
	case Unreachable:
		return "destination is not reachable"
	case FriendlyOccupied:
		return "destination holds a friendly piece"
	case BadPromotion:
		return "invalid promotion"
	}
	return "none"
}

// Outcome is the result of ApplyMove. When Applied is false the board
// is unchanged and Rejection says why.
type Outcome struct {
	Applied   bool
	Rejection Rejection
	Move      chess.Move
}

// Err returns nil for an applied move and an error wrapping
// ErrIllegalMove for a rejected one.
func (o Outcome) Err() error {
	if o.Applied {
		return nil
	}
	return errors.Wrapf(errors.ErrIllegalMove, "%s: %s", o.Move.UCI(), o.Rejection)
}

// movePlan is a fully validated move, ready to be executed.
type movePlan struct {
	piece    *chess.Piece
	move     chess.Move
	capture  chess.Position
	rookFrom chess.Position
	rookTo   chess.Position
}

// ApplyMove validates a move and, if it is legal, applies it to the board.
// A missing piece on move.From is a hard error. Illegal moves are
// reported through the Outcome and leave the board untouched.
func ApplyMove(board *chess.Board, move chess.Move) (Outcome, error) {
	plan, rejection, err := planMove(board, move)
	if err != nil {
		return Outcome{Move: move}, err
	}
	if rejection != NotRejected {
		return Outcome{Rejection: rejection, Move: plan.move}, nil
	}
	if err := executeMove(board, plan); err != nil {
		return Outcome{Move: plan.move}, err
	}
	return Outcome{Applied: true, Move: plan.move}, nil
}

// planMove performs every check before any mutation and works out the
// side effects of the move.
func planMove(board *chess.Board, move chess.Move) (movePlan, Rejection, error) {
	plan := movePlan{move: move, capture: chess.NoPosition, rookFrom: chess.NoPosition, rookTo: chess.NoPosition}

	piece, ok := board.PieceAt(move.From)
	if !ok {
		return plan, NotRejected, errors.Wrapf(errors.ErrPieceNotFound, "%v", move.From)
	}
	plan.piece = piece
	plan.move.Piece = piece.Type()
	colour := piece.Colour()

	if colour != board.ToMove() {
		return plan, WrongSide, nil
	}
	if isFriendly(board, move.To, colour) {
		return plan, FriendlyOccupied, nil
	}
	if !IsLegal(board, piece, move.To) {
		return plan, Unreachable, nil
	}

	if target, ok := board.PieceAt(move.To); ok {
		plan.capture = move.To
		plan.move.Captured = target.Type()
	}

	switch piece.Type() {
	case chess.King:
		if side := castleSide(move.From, move.To); side != chess.NoCastling {
			plan.move.Castle = side
			plan.rookFrom = rookCorner(colour, side)
			plan.rookTo = move.From.Offset(castleDirection(side), 0)
		}
	case chess.Pawn:
		ep, hasEP := board.EnPassant()
		if hasEP && move.To == ep && move.From.File != move.To.File && enPassantCapturable(board, ep, colour) {
			plan.capture = enPassantVictim(move.To, colour)
			plan.move.EnPassant = true
			plan.move.Captured = chess.Pawn
		}
		if move.To.Rank == chess.PromotionRank(colour) && move.Promotion == chess.NoPiece {
			plan.move.Promotion = chess.Queen
		}
	}

	if plan.move.Promotion != chess.NoPiece {
		if piece.Type() != chess.Pawn || move.To.Rank != chess.PromotionRank(colour) || !plan.move.Promotion.CanPromoteTo() {
			return plan, BadPromotion, nil
		}
	}

	return plan, NotRejected, nil
}

// executeMove mutates the board for a validated plan.
func executeMove(board *chess.Board, plan movePlan) error {
	piece := plan.piece
	colour := piece.Colour()
	move := plan.move
	epBefore, hadEP := board.EnPassant()

	// Ordinary capture.
	if plan.capture.IsSet() && !move.EnPassant {
		if _, err := board.Remove(plan.capture); err != nil {
			return err
		}
	}

	// Castling takes the corner rook over the king.
	if move.IsCastle() {
		rook, _ := board.PieceAt(plan.rookFrom)
		if err := board.Relocate(plan.rookFrom, plan.rookTo); err != nil {
			return err
		}
		rook.SetHasMoved(true)
	}

	// En-passant target: only a double step leaves one behind.
	if piece.Type() == chess.Pawn && isDoubleStep(move.From, move.To) {
		board.SetEnPassant(skippedSquare(move.From, move.To))
	} else {
		board.ClearEnPassant()
	}

	if move.EnPassant && hadEP && move.To == epBefore {
		if _, err := board.Remove(plan.capture); err != nil {
			return err
		}
	}

	if err := board.Relocate(move.From, move.To); err != nil {
		return err
	}
	piece.SetHasMoved(true)
	if move.IsPromotion() {
		piece.SetType(move.Promotion)
	}

	updateCastlingRights(board, move.Piece, colour, move.From, move.To, move.Captured)

	board.SetToMove(colour.Opposite())
	board.SetHalfmoveCount(board.HalfmoveCount() + 1)
	if colour == chess.Black {
		board.SetFullmoveNumber(board.FullmoveNumber() + 1)
	}

	UpdateCheckFlags(board)
	return nil
}

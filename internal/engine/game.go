package engine

import (
	"github.com/lgbarn/jchess-go/internal/chess"
)

// Game is one game session. It owns exactly one board and the list of
// moves applied to it. A Game is not safe for concurrent use.
type Game struct {
	board   *chess.Board
	start   string
	history []chess.Move
}

// NewGame starts a game from the standard initial position.
func NewGame() *Game {
	return &Game{board: NewInitialBoard(), start: InitialFEN}
}

// NewGameFromFEN starts a game from a FEN position.
func NewGameFromFEN(fen string) (*Game, error) {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{board: board, start: BoardToFEN(board)}, nil
}

// Board returns the game's board. Callers must not mutate it directly.
func (g *Game) Board() *chess.Board {
	return g.board
}

// Apply moves the piece on from to to. promotion may be chess.NoPiece.
func (g *Game) Apply(from, to chess.Position, promotion chess.PieceType) (Outcome, error) {
	move := chess.NewMove(from, to)
	move.Promotion = promotion
	return g.ApplyMove(move)
}

// ApplyMove applies a resolved move and records it when it is applied.
func (g *Game) ApplyMove(move chess.Move) (Outcome, error) {
	outcome, err := ApplyMove(g.board, move)
	if err != nil {
		return outcome, err
	}
	if outcome.Applied {
		g.history = append(g.history, outcome.Move)
	}
	return outcome, nil
}

// MoveAlgebraic resolves and applies a move in algebraic notation.
func (g *Game) MoveAlgebraic(text string) (Outcome, error) {
	move, err := ResolveAlgebraic(g.board, text)
	if err != nil {
		return Outcome{}, err
	}
	return g.ApplyMove(move)
}

// MoveUCI resolves and applies a move in UCI notation.
func (g *Game) MoveUCI(text string) (Outcome, error) {
	move, err := ResolveUCI(g.board, text)
	if err != nil {
		return Outcome{}, err
	}
	return g.ApplyMove(move)
}

// Move resolves and applies a move in either notation.
func (g *Game) Move(text string) (Outcome, error) {
	move, err := ResolveMove(g.board, text)
	if err != nil {
		return Outcome{}, err
	}
	return g.ApplyMove(move)
}

// Destinations returns the destinations of the piece on pos.
func (g *Game) Destinations(pos chess.Position) ([]chess.Position, error) {
	return DestinationsFrom(g.board, pos)
}

// InCheck reports whether colour's king is in check.
func (g *Game) InCheck(colour chess.Colour) bool {
	return IsInCheck(g.board, colour)
}

// History returns the applied moves in order.
func (g *Game) History() []chess.Move {
	out := make([]chess.Move, len(g.history))
	copy(out, g.history)
	return out
}

// StartFEN returns the position the game started from.
func (g *Game) StartFEN() string {
	return g.start
}

// FEN returns the current position as FEN.
func (g *Game) FEN() string {
	return BoardToFEN(g.board)
}

// Snapshot returns a value copy of the current position.
func (g *Game) Snapshot() chess.Snapshot {
	return g.board.Snapshot()
}

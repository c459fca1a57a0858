package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoardFromFEN creates a board from a FEN string. The placement,
// side, castling and en-passant fields are required; missing clocks
// default to 0 and 1.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, &errors.ParseError{
			Err:      errors.ErrInvalidFEN,
			Input:    fen,
			Expected: "4 to 6 fields",
			Got:      strconv.Itoa(len(parts)),
		}
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, withInput(err, fen)
	}
	parseSideToMove(board, parts[1])
	if err := parseCastlingRights(board, parts[2]); err != nil {
		return nil, withInput(err, fen)
	}
	if err := parseEnPassant(board, parts[3]); err != nil {
		return nil, withInput(err, fen)
	}
	if err := parseClocks(board, parts[4:]); err != nil {
		return nil, withInput(err, fen)
	}

	markMovedPieces(board)
	UpdateCheckFlags(board)
	return board, nil
}

func withInput(err error, fen string) error {
	var pe *errors.ParseError
	if errors.As(err, &pe) {
		pe.Input = fen
	}
	return err
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return &errors.ParseError{
			Err:      errors.ErrInvalidFEN,
			Field:    "placement",
			Expected: "8 ranks",
			Got:      strconv.Itoa(len(ranks)),
		}
	}

	column := 0
	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for j := 0; j < len(row); j++ {
			column++
			c := row[j]
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			default:
				kind, ok := chess.ParsePieceLetter(c)
				if !ok {
					return &errors.ParseError{
						Err:      errors.ErrInvalidFEN,
						Field:    "placement",
						Column:   column,
						Expected: "piece letter or digit",
						Got:      strconv.Quote(string(c)),
					}
				}
				if file >= chess.BoardSize {
					return rankWidthError(rank, column)
				}
				colour := chess.White
				if c >= 'a' && c <= 'z' {
					colour = chess.Black
				}
				if err := placePiece(board, kind, colour, chess.NewPosition(file, rank), column); err != nil {
					return err
				}
				file++
			}
			if file > chess.BoardSize {
				return rankWidthError(rank, column)
			}
		}
		if file != chess.BoardSize {
			return rankWidthError(rank, column)
		}
		column++ // the '/' separator
	}
	return nil
}

// placePiece adds one piece from the placement field, refusing a 17th
// piece of either colour.
func placePiece(board *chess.Board, kind chess.PieceType, colour chess.Colour, pos chess.Position, column int) error {
	if len(board.PiecesOf(colour)) >= chess.MaxPieces/2 {
		return &errors.ParseError{
			Err:      errors.ErrInvalidFEN,
			Field:    "placement",
			Column:   column,
			Expected: fmt.Sprintf("at most %d %s pieces", chess.MaxPieces/2, strings.ToLower(colour.String())),
		}
	}
	if _, err := board.Place(kind, colour, pos); err != nil {
		return &errors.ParseError{
			Err:    fmt.Errorf("%w: %w", errors.ErrInvalidFEN, err),
			Field:  "placement",
			Column: column,
		}
	}
	return nil
}

func rankWidthError(rank, column int) error {
	return &errors.ParseError{
		Err:      errors.ErrInvalidFEN,
		Field:    "placement",
		Column:   column,
		Expected: fmt.Sprintf("8 files on rank %d", rank+1),
	}
}

// parseSideToMove parses the side to move field. Anything but "w" is Black.
func parseSideToMove(board *chess.Board, side string) {
	if side == "w" {
		board.SetToMove(chess.White)
	} else {
		board.SetToMove(chess.Black)
	}
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *chess.Board, castling string) error {
	var white, black chess.CastlingRights
	if castling != "-" {
		for i := 0; i < len(castling); i++ {
			switch castling[i] {
			case 'K':
				white = white.With(chess.Kingside)
			case 'Q':
				white = white.With(chess.Queenside)
			case 'k':
				black = black.With(chess.Kingside)
			case 'q':
				black = black.With(chess.Queenside)
			default:
				return &errors.ParseError{
					Err:      errors.ErrInvalidFEN,
					Field:    "castling",
					Column:   i + 1,
					Expected: "one of KQkq or -",
					Got:      strconv.Quote(string(castling[i])),
				}
			}
		}
	}
	board.SetCastlingRights(chess.White, white)
	board.SetCastlingRights(chess.Black, black)
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(board *chess.Board, square string) error {
	if square == "-" {
		board.ClearEnPassant()
		return nil
	}
	pos, err := chess.ParsePosition(square)
	if err != nil {
		return &errors.ParseError{
			Err:      errors.ErrInvalidFEN,
			Field:    "en passant",
			Expected: "square or -",
			Got:      strconv.Quote(square),
		}
	}
	if !enPassantCapturable(board, pos, board.ToMove()) {
		return &errors.ParseError{
			Err:      errors.ErrInvalidFEN,
			Field:    "en passant",
			Expected: "empty square behind a pawn that just moved two squares",
			Got:      strconv.Quote(square),
		}
	}
	board.SetEnPassant(pos)
	return nil
}

// parseClocks parses the optional halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, clocks []string) error {
	if len(clocks) >= 1 {
		n, err := strconv.Atoi(clocks[0])
		if err != nil || n < 0 {
			return &errors.ParseError{
				Err:      errors.ErrInvalidFEN,
				Field:    "halfmove clock",
				Expected: "non-negative integer",
				Got:      strconv.Quote(clocks[0]),
			}
		}
		board.SetHalfmoveCount(n)
	}
	if len(clocks) >= 2 {
		n, err := strconv.Atoi(clocks[1])
		if err != nil || n < 1 {
			return &errors.ParseError{
				Err:      errors.ErrInvalidFEN,
				Field:    "fullmove number",
				Expected: "positive integer",
				Got:      strconv.Quote(clocks[1]),
			}
		}
		board.SetFullmoveNumber(n)
	}
	return nil
}

// markMovedPieces infers has-moved flags that FEN does not record: pawns
// off their starting rank, kings off their home square and rooks whose
// castling right is gone.
func markMovedPieces(board *chess.Board) {
	for _, p := range board.Pieces() {
		colour := p.Colour()
		switch p.Type() {
		case chess.Pawn:
			p.SetHasMoved(p.Position().Rank != chess.PawnRank(colour))
		case chess.King:
			p.SetHasMoved(p.Position() != chess.NewPosition(kingHomeFile, chess.HomeRank(colour)))
		case chess.Rook:
			side := cornerSide(colour, p.Position())
			p.SetHasMoved(side == chess.NoCastling || !board.CastlingRights(colour).Has(side))
		}
	}
}

// BoardToFEN converts a board to a FEN string.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	writeEnPassant(&sb, board)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", board.HalfmoveCount(), board.FullmoveNumber())

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece, ok := board.PieceAt(chess.NewPosition(file, rank))
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.ToMove() == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	white := board.CastlingRights(chess.White)
	black := board.CastlingRights(chess.Black)
	if white == chess.NoCastling && black == chess.NoCastling {
		sb.WriteByte('-')
		return
	}
	if white.Has(chess.Kingside) {
		sb.WriteByte('K')
	}
	if white.Has(chess.Queenside) {
		sb.WriteByte('Q')
	}
	if black.Has(chess.Kingside) {
		sb.WriteByte('k')
	}
	if black.Has(chess.Queenside) {
		sb.WriteByte('q')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, board *chess.Board) {
	if ep, ok := board.EnPassant(); ok {
		sb.WriteString(ep.String())
	} else {
		sb.WriteByte('-')
	}
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board, _ := NewBoardFromFEN(InitialFEN)
	return board
}

package chess

import (
	"github.com/lgbarn/jchess-go/internal/errors"
)

// Position is a square on the board. File 0..7 maps to a..h and
// Rank 0..7 maps to 1..8. A coordinate of -1 means "unset"; only
// partially resolved notation hints carry unset coordinates.
type Position struct {
	File int
	Rank int
}

// NoPosition is the fully unset position.
var NoPosition = Position{File: -1, Rank: -1}

// NewPosition returns the position at file, rank.
func NewPosition(file, rank int) Position {
	return Position{File: file, Rank: rank}
}

// ParsePosition converts algebraic square text such as "e4".
func ParsePosition(text string) (Position, error) {
	if len(text) != 2 || !IsFileLetter(text[0]) || !IsRankDigit(text[1]) {
		return NoPosition, errors.Wrapf(errors.ErrInvalidSquare, "%q", text)
	}
	return Position{File: int(text[0] - 'a'), Rank: int(text[1] - '1')}, nil
}

// MustParsePosition is like ParsePosition but panics on bad input.
// It is intended for constants and tests.
func MustParsePosition(text string) Position {
	p, err := ParsePosition(text)
	if err != nil {
		panic(err)
	}
	return p
}

// IsFileLetter reports whether b is one of a..h.
func IsFileLetter(b byte) bool {
	return b >= 'a' && b <= 'h'
}

// IsRankDigit reports whether b is one of 1..8.
func IsRankDigit(b byte) bool {
	return b >= '1' && b <= '8'
}

// String returns the algebraic text of the position. Unset coordinates
// are omitted, and NoPosition renders as "-".
func (p Position) String() string {
	buf := make([]byte, 0, 2)
	if p.File >= 0 && p.File < BoardSize {
		buf = append(buf, byte('a'+p.File))
	}
	if p.Rank >= 0 && p.Rank < BoardSize {
		buf = append(buf, byte('1'+p.Rank))
	}
	if len(buf) == 0 {
		return "-"
	}
	return string(buf)
}

// InBounds reports whether both coordinates are on the board.
func (p Position) InBounds() bool {
	return p.File >= 0 && p.File < BoardSize && p.Rank >= 0 && p.Rank < BoardSize
}

// IsSet reports whether the position differs from NoPosition.
func (p Position) IsSet() bool {
	return p != NoPosition
}

// Offset returns the position shifted by df files and dr ranks.
// The result may be off the board.
func (p Position) Offset(df, dr int) Position {
	return Position{File: p.File + df, Rank: p.Rank + dr}
}

// Matches reports whether q agrees with every coordinate set in p.
func (p Position) Matches(q Position) bool {
	if p.File >= 0 && p.File != q.File {
		return false
	}
	if p.Rank >= 0 && p.Rank != q.Rank {
		return false
	}
	return true
}

// Index returns the square number a1=0, b1=1 ... h8=63.
func (p Position) Index() int {
	return p.Rank*BoardSize + p.File
}

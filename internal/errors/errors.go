// Package errors provides sentinel errors and error types for the jchess rules engine.
// Hard failures are reported with the sentinels below, usually wrapped in one of the
// structured types so that callers keep the context while still being able to use
// errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrPieceNotFound indicates that a move or query referenced an empty square.
	ErrPieceNotFound = errors.New("there is no piece at the specified position")

	// ErrPieceOutOfBounds indicates an attempt to place a piece outside the board.
	ErrPieceOutOfBounds = errors.New("a piece was placed outside of the play area")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that violates the movement rules.
	// The engine reports it as a rejected outcome, never as a hard failure.
	ErrIllegalMove = errors.New("illegal move")

	// ErrAmbiguousNotation indicates a move string that matches more than one piece.
	ErrAmbiguousNotation = errors.New("ambiguous move notation")

	// ErrUnresolvedNotation indicates a move string that matches no piece or cannot be parsed.
	ErrUnresolvedNotation = errors.New("unresolved move notation")

	// ErrSquareOccupied indicates an attempt to add a piece to an occupied square.
	ErrSquareOccupied = errors.New("square already occupied")

	// ErrInvalidSquare indicates square text that is not a board coordinate.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGameNotFound indicates an unknown game session id.
	ErrGameNotFound = errors.New("game not found")

	// ErrSessionLimit indicates the server holds as many games as it allows.
	ErrSessionLimit = errors.New("session limit reached")
)

// MoveError wraps errors with move context: the ply at which the failure
// happened and the move text that caused it. It supports unwrapping via
// errors.Is() and errors.As().
type MoveError struct {
	Err      error  // The underlying error
	Line     int    // 1-based input line (0 if not applicable)
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}
	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")
	switch {
	case context == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", context, e.Err)
	case context == "":
		return "move error"
	}
	return context
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a FEN parsing error with the offending field and
// the position inside that field.
type ParseError struct {
	Err      error  // The underlying error
	Input    string // The full input record
	Field    string // Name of the field that failed (e.g. "placement")
	Column   int    // 1-based column inside the field (0 if unknown)
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Field != "" {
		loc := e.Field
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotationError reports a move string the resolver could not turn into a move.
type NotationError struct {
	Err        error  // ErrAmbiguousNotation, ErrUnresolvedNotation or ErrInvalidSquare
	Notation   string // The move text as supplied by the caller
	Candidates int    // Number of matching pieces (meaningful for ambiguity)
}

func (e *NotationError) Error() string {
	if e.Candidates > 1 {
		return fmt.Sprintf("%q: %v (%d candidates)", e.Notation, e.Err, e.Candidates)
	}
	return fmt.Sprintf("%q: %v", e.Notation, e.Err)
}

// Unwrap returns the underlying error.
func (e *NotationError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsHard reports whether err is one of the hard failures that a front end
// should surface to the user rather than treat as a rejected move.
func IsHard(err error) bool {
	for _, sentinel := range []error{
		ErrPieceNotFound,
		ErrPieceOutOfBounds,
		ErrInvalidFEN,
		ErrAmbiguousNotation,
		ErrUnresolvedNotation,
		ErrInvalidSquare,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// Is reports whether any error in err's chain matches target.
// It lets packages importing this one as "errors" keep using errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

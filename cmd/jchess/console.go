// console.go - Interactive move loop
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/config"
	"github.com/lgbarn/jchess-go/internal/engine"
	"github.com/lgbarn/jchess-go/internal/errors"
	"github.com/lgbarn/jchess-go/internal/output"
	"github.com/lgbarn/jchess-go/internal/processing"
)

const (
	noPieceMessage = "There is no piece at the specified position"
	illegalMessage = "illegal move"
)

const helpText = `Enter a move in algebraic (Nf3, exd5, O-O, e8=Q) or UCI (g1f3, e7e8q) notation.
Commands:
  moves <square>  show the destinations of the piece on square
  board           show the board
  fen             show the position as FEN
  help            show this text
  quit            leave
`

// Console plays one game from lines of text.
type Console struct {
	cfg    *config.Config
	game   *engine.Game
	out    io.Writer
	writer output.BoardWriter
	Prompt string
}

// NewConsole creates a console over game writing to cfg.OutputFile.
func NewConsole(cfg *config.Config, game *engine.Game) *Console {
	return &Console{
		cfg:    cfg,
		game:   game,
		out:    cfg.OutputFile,
		writer: output.NewBoardWriter(cfg.OutputFile, cfg),
		Prompt: "> ",
	}
}

// Run reads commands and moves from r until quit or end of input.
func (c *Console) Run(r io.Reader) error {
	if err := c.showBoard(nil); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(c.out, c.Prompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quit, err := c.Execute(line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs one line and reports whether the console should stop.
// Only failures to write output are returned as errors.
func (c *Console) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true, nil
	case "help":
		_, err := io.WriteString(c.out, helpText)
		return false, err
	case "board":
		return false, c.showBoard(nil)
	case "fen":
		_, err := fmt.Fprintln(c.out, c.game.FEN())
		return false, err
	case "moves":
		if len(fields) != 2 {
			_, err := fmt.Fprintln(c.out, "usage: moves <square>")
			return false, err
		}
		return false, c.showMoves(fields[1])
	}
	return false, c.move(line)
}

func (c *Console) showBoard(marks *output.Marks) error {
	if err := c.writer.WriteBoard(c.game.Board(), marks); err != nil {
		return err
	}
	return c.writer.Flush()
}

func (c *Console) showMoves(square string) error {
	pos, err := chess.ParsePosition(square)
	if err != nil {
		return c.report(err)
	}
	marks, err := output.MarksFor(c.game.Board(), pos)
	if err != nil {
		return c.report(err)
	}
	return c.showBoard(marks)
}

func (c *Console) move(text string) error {
	move, err := processing.Resolve(c.game.Board(), text, c.cfg.Notation)
	if err != nil {
		return c.report(err)
	}
	outcome, err := c.game.ApplyMove(move)
	if err != nil {
		return c.report(err)
	}
	if !outcome.Applied {
		c.cfg.Logf(2, "%s rejected: %s\n", text, outcome.Rejection)
		_, err := fmt.Fprintln(c.out, illegalMessage)
		return err
	}

	c.cfg.Logf(2, "%d. %s\n", len(c.game.History()), outcome.Move)
	return c.showBoard(nil)
}

// report prints a failure that leaves the game unchanged.
func (c *Console) report(err error) error {
	msg := err.Error()
	if errors.Is(err, errors.ErrPieceNotFound) {
		msg = noPieceMessage
	}
	_, werr := fmt.Fprintln(c.out, msg)
	return werr
}

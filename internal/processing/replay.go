// Package processing provides batch replay of move lists: parsing the
// batch format, replaying each line on its own board, and reporting the
// results in input order.
package processing

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"runtime"
	"strings"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/config"
	"github.com/lgbarn/jchess-go/internal/engine"
	"github.com/lgbarn/jchess-go/internal/errors"
	"github.com/lgbarn/jchess-go/internal/worker"
)

// fenSeparator splits an optional starting FEN from the moves.
const fenSeparator = "|"

var (
	// moveNumberRe matches "12." or "12..." with an optional move glued on.
	moveNumberRe = regexp.MustCompile(`^\d+\.+`)

	gameResults = map[string]bool{"1-0": true, "0-1": true, "1/2-1/2": true, "*": true}
)

// ParseLine parses one batch line of the form "[FEN |] move move ...".
// Move numbers and game results are skipped. Blank lines and lines
// starting with '#' return ok=false.
func ParseLine(text string, line int) (item worker.WorkItem, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "#") {
		return item, false
	}

	item.Line = line
	if fen, moves, found := strings.Cut(text, fenSeparator); found {
		item.FEN = strings.TrimSpace(fen)
		text = moves
	}
	for _, token := range strings.Fields(text) {
		token = moveNumberRe.ReplaceAllString(token, "")
		if token == "" || gameResults[token] {
			continue
		}
		item.Moves = append(item.Moves, token)
	}
	return item, true
}

// ReadBatch reads every replayable line from r. Items are indexed in
// the order they appear.
func ReadBatch(r io.Reader) ([]worker.WorkItem, error) {
	var items []worker.WorkItem
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		item, ok := ParseLine(scanner.Text(), line)
		if !ok {
			continue
		}
		item.Index = len(items)
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return items, errors.Wrapf(err, "reading batch line %d", line+1)
	}
	return items, nil
}

// Replayer replays work items according to the configuration.
type Replayer struct {
	cfg *config.Config
}

// NewReplayer creates a replayer.
func NewReplayer(cfg *config.Config) *Replayer {
	return &Replayer{cfg: cfg}
}

// Replay replays one item on a freshly constructed board.
func (r *Replayer) Replay(item worker.WorkItem) worker.ProcessResult {
	result := worker.ProcessResult{Index: item.Index, Line: item.Line}

	game, err := r.newGame(item.FEN)
	if err != nil {
		result.Err = &errors.MoveError{Err: err, Line: item.Line}
		return result
	}

	for i, text := range item.Moves {
		if err := r.play(game, text); err != nil {
			if result.Err == nil {
				result.Err = &errors.MoveError{Err: err, Line: item.Line, PlyNum: i + 1, MoveText: text}
			}
			if r.cfg.Replay.StopAtFirstError {
				break
			}
			result.Skipped = append(result.Skipped, text)
		}
	}

	result.Plies = len(game.History())
	result.FinalFEN = game.FEN()
	r.cfg.Logf(2, "line %d: %d plies applied\n", item.Line, result.Plies)
	return result
}

func (r *Replayer) newGame(fen string) (*engine.Game, error) {
	if fen == "" {
		fen = r.cfg.StartFEN
	}
	if fen == "" {
		return engine.NewGame(), nil
	}
	return engine.NewGameFromFEN(fen)
}

// play resolves and applies one move. A rejected move is returned as an
// error wrapping ErrIllegalMove.
func (r *Replayer) play(game *engine.Game, text string) error {
	move, err := Resolve(game.Board(), text, r.cfg.Notation)
	if err != nil {
		return err
	}
	outcome, err := game.ApplyMove(move)
	if err != nil {
		return err
	}
	return outcome.Err()
}

// Resolve resolves move text using the given notation.
func Resolve(board *chess.Board, text string, notation config.Notation) (chess.Move, error) {
	switch notation {
	case config.NotationSAN:
		return engine.ResolveAlgebraic(board, text)
	case config.NotationUCI:
		return engine.ResolveUCI(board, text)
	}
	return engine.ResolveMove(board, text)
}

// Run replays every item on the worker pool and returns the results in
// input order.
func (r *Replayer) Run(items []worker.WorkItem) []worker.ProcessResult {
	workers := r.cfg.Replay.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	pool := worker.NewPool(workers, r.cfg.Replay.BufferSize, r.Replay)
	r.cfg.Logf(2, "replaying %d lines on %d workers\n", len(items), pool.NumWorkers())
	return pool.Run(items)
}

// Summary counts the results of a batch.
type Summary struct {
	Lines  int
	Failed int
	Plies  int
}

// WriteResults writes one line per result and returns the totals.
//
//	line 1: ok, 4 plies, fen <FEN>
//	line 2: failed at ply 3 "Nf6": <reason>, 2 plies, fen <FEN>
func WriteResults(w io.Writer, results []worker.ProcessResult) (Summary, error) {
	var s Summary
	bw := bufio.NewWriter(w)
	for _, res := range results {
		s.Lines++
		s.Plies += res.Plies
		if res.OK() {
			fmt.Fprintf(bw, "line %d: ok, %d plies, fen %s\n", res.Line, res.Plies, res.FinalFEN)
			continue
		}
		s.Failed++
		fmt.Fprintf(bw, "line %d: failed%s: %v", res.Line, failurePoint(res.Err), failureReason(res.Err))
		if res.FinalFEN != "" {
			fmt.Fprintf(bw, ", %d plies, fen %s", res.Plies, res.FinalFEN)
		}
		bw.WriteString("\n")
	}
	return s, bw.Flush()
}

func failurePoint(err error) string {
	var moveErr *errors.MoveError
	if errors.As(err, &moveErr) && moveErr.PlyNum > 0 {
		return fmt.Sprintf(" at ply %d %q", moveErr.PlyNum, moveErr.MoveText)
	}
	return ""
}

func failureReason(err error) error {
	var moveErr *errors.MoveError
	if errors.As(err, &moveErr) && moveErr.Err != nil {
		return moveErr.Err
	}
	return err
}

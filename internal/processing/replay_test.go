package processing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/jchess-go/internal/config"
	"github.com/lgbarn/jchess-go/internal/engine"
	"github.com/lgbarn/jchess-go/internal/errors"
	"github.com/lgbarn/jchess-go/internal/testutil"
	"github.com/lgbarn/jchess-go/internal/worker"
)

const castleFEN = "4k3/8/8/8/8/8/8/4K2R w K - 0 1"

func quietConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Verbosity = 0
	return cfg
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantOK  bool
		wantFEN string
		want    []string
	}{
		{name: "blank", input: "   ", wantOK: false},
		{name: "comment", input: "# opening lines", wantOK: false},
		{name: "plain moves", input: "e4 e5 Nf3", wantOK: true, want: []string{"e4", "e5", "Nf3"}},
		{name: "move numbers and result", input: "1. e4 e5 2.Nf3 2...Nc6 1-0", wantOK: true, want: []string{"e4", "e5", "Nf3", "Nc6"}},
		{name: "uci", input: "e2e4 e7e5", wantOK: true, want: []string{"e2e4", "e7e5"}},
		{name: "fen prefix", input: castleFEN + " | O-O", wantOK: true, wantFEN: castleFEN, want: []string{"O-O"}},
		{name: "fen only", input: castleFEN + " |", wantOK: true, wantFEN: castleFEN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := ParseLine(tt.input, 7)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, 7, item.Line)
			assert.Equal(t, tt.wantFEN, item.FEN)
			assert.Equal(t, tt.want, item.Moves)
		})
	}
}

func TestReadBatch(t *testing.T) {
	input := strings.Join([]string{
		"# sample batch",
		"e4 e5",
		"",
		castleFEN + " | O-O",
		"d4 d5 c4",
	}, "\n")

	items, err := ReadBatch(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, []int{0, 1, 2}, []int{items[0].Index, items[1].Index, items[2].Index})
	assert.Equal(t, []int{2, 4, 5}, []int{items[0].Line, items[1].Line, items[2].Line})
	assert.Equal(t, castleFEN, items[1].FEN)
}

func TestReplay_Success(t *testing.T) {
	item, ok := ParseLine("1. e4 e5 2. Nf3 Nc6 3. Bb5", 1)
	require.True(t, ok)

	res := NewReplayer(quietConfig()).Replay(item)
	require.True(t, res.OK(), "unexpected error: %v", res.Err)

	g := testutil.MustGame(t, "")
	testutil.MustPlay(t, g, "e4", "e5", "Nf3", "Nc6", "Bb5")
	assert.Equal(t, 5, res.Plies)
	assert.Equal(t, g.FEN(), res.FinalFEN)
}

func TestReplay_FromFEN(t *testing.T) {
	item, _ := ParseLine(castleFEN+" | O-O Kd8", 1)

	res := NewReplayer(quietConfig()).Replay(item)
	require.True(t, res.OK(), "unexpected error: %v", res.Err)
	assert.Equal(t, 2, res.Plies)
	assert.True(t, strings.HasPrefix(res.FinalFEN, "3k4/8/8/8/8/8/8/5RK1 w - -"), res.FinalFEN)
}

func TestReplay_StartFENFromConfig(t *testing.T) {
	cfg := quietConfig()
	cfg.StartFEN = castleFEN
	item, _ := ParseLine("O-O", 1)

	res := NewReplayer(cfg).Replay(item)
	require.True(t, res.OK(), "unexpected error: %v", res.Err)
	assert.Equal(t, 1, res.Plies)
}

func TestReplay_Failures(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		notation  config.Notation
		stop      bool
		wantErr   error
		wantPly   int
		wantMove  string
		wantPlies int
		skipped   []string
	}{
		{
			name: "rejected move stops replay", line: "e4 e5 e1e3 Nf3",
			stop: true, wantErr: errors.ErrIllegalMove, wantPly: 3, wantMove: "e1e3", wantPlies: 2,
		},
		{
			name: "rejected move skipped", line: "e4 e5 e1e3 Nf3",
			stop: false, wantErr: errors.ErrIllegalMove, wantPly: 3, wantMove: "e1e3", wantPlies: 3,
			skipped: []string{"e1e3"},
		},
		{
			name: "unresolved notation", line: "e4 Nf5",
			stop: true, wantErr: errors.ErrUnresolvedNotation, wantPly: 2, wantMove: "Nf5", wantPlies: 1,
		},
		{
			name: "empty origin", line: "e2e4 e2e3",
			stop: true, wantErr: errors.ErrPieceNotFound, wantPly: 2, wantMove: "e2e3", wantPlies: 1,
		},
		{
			name: "algebraic in uci mode", line: "e4", notation: config.NotationUCI,
			stop: true, wantErr: errors.ErrUnresolvedNotation, wantPly: 1, wantMove: "e4", wantPlies: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := quietConfig()
			cfg.Notation = tt.notation
			cfg.Replay.StopAtFirstError = tt.stop
			item, _ := ParseLine(tt.line, 4)

			res := NewReplayer(cfg).Replay(item)
			require.False(t, res.OK())
			assert.True(t, errors.Is(res.Err, tt.wantErr), "error = %v, want %v", res.Err, tt.wantErr)

			var moveErr *errors.MoveError
			require.True(t, errors.As(res.Err, &moveErr))
			assert.Equal(t, 4, moveErr.Line)
			assert.Equal(t, tt.wantPly, moveErr.PlyNum)
			assert.Equal(t, tt.wantMove, moveErr.MoveText)
			assert.Equal(t, tt.wantPlies, res.Plies)
			assert.Equal(t, tt.skipped, res.Skipped)
			assert.NotEmpty(t, res.FinalFEN)
		})
	}
}

func TestReplay_InvalidFEN(t *testing.T) {
	item, _ := ParseLine("not a fen | e4", 9)

	res := NewReplayer(quietConfig()).Replay(item)
	require.False(t, res.OK())
	assert.True(t, errors.Is(res.Err, errors.ErrInvalidFEN), "error = %v", res.Err)
	assert.Empty(t, res.FinalFEN)
	assert.Zero(t, res.Plies)
}

// TestRun_OrderAndIndependence replays the same lines on several workers
// and checks every result matches a sequential replay.
func TestRun_OrderAndIndependence(t *testing.T) {
	lines := []string{
		"e4 e5 Nf3 Nc6",
		"d4 d5 c4 e6 Nc3",
		castleFEN + " | O-O",
		"e4 d5 exd5 Qxd5",
		"e4 e5 e1e3",
		"Nf3 Nf6 g3 g6 Bg2 Bg7 O-O O-O",
	}
	var items []worker.WorkItem
	for i, l := range lines {
		item, ok := ParseLine(l, i+1)
		require.True(t, ok)
		item.Index = i
		items = append(items, item)
	}

	cfg := quietConfig()
	cfg.Replay.Workers = 4
	r := NewReplayer(cfg)
	results := r.Run(items)
	require.Len(t, results, len(lines))

	for i, res := range results {
		assert.Equal(t, i, res.Index)
		assert.Equal(t, i+1, res.Line)
		want := r.Replay(items[i])
		assert.Equal(t, want.FinalFEN, res.FinalFEN, "line %d", i+1)
		assert.Equal(t, want.Plies, res.Plies, "line %d", i+1)
	}
	assert.False(t, results[4].OK())
	assert.NotEqual(t, engine.InitialFEN, results[0].FinalFEN)
}

func TestWriteResults(t *testing.T) {
	items := []worker.WorkItem{}
	for i, l := range []string{"e4 e5", "e4 e5 e1e3"} {
		item, _ := ParseLine(l, i+1)
		item.Index = i
		items = append(items, item)
	}
	cfg := quietConfig()
	cfg.Replay.Workers = 2
	results := NewReplayer(cfg).Run(items)

	var buf bytes.Buffer
	summary, err := WriteResults(&buf, results)
	require.NoError(t, err)
	assert.Equal(t, Summary{Lines: 2, Failed: 1, Plies: 4}, summary)

	out := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, out, 2)
	assert.True(t, strings.HasPrefix(out[0], "line 1: ok, 2 plies, fen rnbqkbnr/pppp1ppp/"), out[0])
	assert.Contains(t, out[1], `line 2: failed at ply 3 "e1e3": `)
	assert.Contains(t, out[1], "illegal move")
	assert.Contains(t, out[1], ", 2 plies, fen ")
}

func TestReplay_LogsAtVerbosity(t *testing.T) {
	var log bytes.Buffer
	cfg := config.NewConfig()
	cfg.Verbosity = 2
	cfg.SetLog(&log)

	item, _ := ParseLine("e4", 3)
	NewReplayer(cfg).Replay(item)
	assert.Equal(t, "line 3: 1 plies applied\n", log.String())
}

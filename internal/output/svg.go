package output

import (
	"bufio"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/lgbarn/jchess-go/internal/chess"
	"github.com/lgbarn/jchess-go/internal/config"
)

// Board colours.
const (
	lightSquare = "fill:#f0d9b5"
	darkSquare  = "fill:#b58863"
	originStyle = "fill:none;stroke:#1e64c8;stroke-width:3"
	targetStyle = "fill:#1e64c8;fill-opacity:0.45"
	checkStyle  = "fill:#e03c3c;fill-opacity:0.6"
	labelStyle  = "font-family:sans-serif;fill:#404040;text-anchor:middle"
)

var glyphs = map[chess.Colour]map[chess.PieceType]string{
	chess.White: {
		chess.King: "♔", chess.Queen: "♕", chess.Rook: "♖",
		chess.Bishop: "♗", chess.Knight: "♘", chess.Pawn: "♙",
	},
	chess.Black: {
		chess.King: "♚", chess.Queen: "♛", chess.Rook: "♜",
		chess.Bishop: "♝", chess.Knight: "♞", chess.Pawn: "♟",
	},
}

// SVGWriter writes boards as SVG images, White at the bottom.
type SVGWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewSVGWriter creates a new SVG writer.
func NewSVGWriter(w io.Writer, cfg *config.Config) *SVGWriter {
	return &SVGWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteBoard writes one complete SVG document.
func (sw *SVGWriter) WriteBoard(board *chess.Board, marks *Marks) error {
	bw := bufio.NewWriter(sw.w)
	RenderSVG(bw, board, marks, sw.cfg.Output.SquareSize)
	return bw.Flush()
}

// Flush is a no-op; each board is flushed as it is written.
func (sw *SVGWriter) Flush() error {
	return nil
}

// Close closes the SVG writer.
func (sw *SVGWriter) Close() error {
	return nil
}

// RenderSVG draws board onto w with squares of the given size in pixels.
func RenderSVG(w io.Writer, board *chess.Board, marks *Marks, size int) {
	margin := size / 2
	canvas := svg.New(w)
	canvas.Start(margin+chess.BoardSize*size, margin+chess.BoardSize*size)

	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			pos := chess.NewPosition(file, rank)
			x, y := margin+file*size, (chess.BoardSize-1-rank)*size
			drawSquare(canvas, board, marks, pos, x, y, size)
		}
	}
	drawLabels(canvas, margin, size)
	canvas.End()
}

func drawSquare(canvas *svg.SVG, board *chess.Board, marks *Marks, pos chess.Position, x, y, size int) {
	style := lightSquare
	if (pos.File+pos.Rank)%2 == 0 {
		style = darkSquare
	}
	canvas.Rect(x, y, size, size, style)

	piece, occupied := board.PieceAt(pos)
	if occupied && piece.Type() == chess.King && piece.InCheck() {
		canvas.Rect(x, y, size, size, checkStyle)
	}
	if marks.isOrigin(pos) {
		canvas.Rect(x+1, y+1, size-2, size-2, originStyle)
	}
	if occupied {
		canvas.Text(x+size/2, y+size*4/5, glyphs[piece.Colour()][piece.Type()],
			fmt.Sprintf("font-size:%dpx;text-anchor:middle", size*4/5))
	}
	if marks.isTarget(pos) {
		canvas.Circle(x+size/2, y+size/2, size/6, targetStyle)
	}
}

func drawLabels(canvas *svg.SVG, margin, size int) {
	font := fmt.Sprintf("%s;font-size:%dpx", labelStyle, margin*2/3)
	for i := 0; i < chess.BoardSize; i++ {
		file := string(rune('a' + i))
		rank := fmt.Sprint(chess.BoardSize - i)
		canvas.Text(margin+i*size+size/2, chess.BoardSize*size+margin*3/4, file, font)
		canvas.Text(margin/2, i*size+size/2+margin/4, rank, font)
	}
}

package draw

import (
	"io"

	"github.com/mattn/go-runewidth"
)

// Max render resolution in terminal cells. Larger terminals get a centered,
// bordered render area.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 80
)

// Terminal is a Surface that writes ANSI escape sequences to an io.Writer,
// either a local raw-mode terminal or an SSH session.
type Terminal struct {
	canvas         *Canvas
	out            *ChunkWriter
	sizeFunc       TermSizeFunc
	pointerVisible bool
}

// Compile-time check that Terminal implements Surface.
var _ Surface = (*Terminal)(nil)

// NewTerminal creates a terminal surface with the given logical resolution.
func NewTerminal(w io.Writer, sizeFunc TermSizeFunc, logicalWidth, logicalHeight float64) *Terminal {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}

	termWidth, termHeight, _ := sizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := NewScaledCanvas(renderWidth, renderHeight, logicalWidth, logicalHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Terminal{
		canvas:   canvas,
		out:      NewChunkWriter(w),
		sizeFunc: sizeFunc,
	}
}

// Open switches to the alternate screen, hides the cursor and enables pointer reporting.
func (t *Terminal) Open() error {
	t.out.WriteString(seqAltScreenOn + seqHideCursor + seqClearScreen)
	t.SetPointerVisible(true)
	return t.out.Flush()
}

// Close restores the terminal to its normal state.
func (t *Terminal) Close() error {
	t.out.WriteString(seqMouseOff + seqResetGraphics + seqClearScreen + seqShowCursor + seqAltScreenOff)
	return t.out.Flush()
}

// Bounds returns the logical resolution.
func (t *Terminal) Bounds() (float64, float64) {
	return t.canvas.LogicalWidth(), t.canvas.LogicalHeight()
}

// Fill paints the whole surface and drops text from the previous frame.
func (t *Terminal) Fill(c Color) {
	t.canvas.Clear(c)
}

// FillRect paints an axis-aligned rectangle.
func (t *Terminal) FillRect(x, y, w, h float64, c Color) {
	t.canvas.FillRect(x, y, w, h, c)
}

// FillPolygon paints a filled polygon.
func (t *Terminal) FillPolygon(points []Point, c Color) {
	t.canvas.FillPolygon(points, c)
}

// DrawText writes text anchored at a logical position.
func (t *Terminal) DrawText(x, y float64, text string, align Align, fg, bg Color) {
	drawAlignedText(t.canvas, x, y, text, align, fg, bg)
}

// SetPointerVisible enables or disables mouse reporting.
func (t *Terminal) SetPointerVisible(visible bool) {
	t.pointerVisible = visible
	if visible {
		t.out.WriteString(seqMouseOn)
	} else {
		t.out.WriteString(seqMouseOff)
	}
}

// PointerVisible reports whether mouse reporting is enabled.
func (t *Terminal) PointerVisible() bool {
	return t.pointerVisible
}

// ToLogical converts a 0-based terminal cell to logical coordinates.
func (t *Terminal) ToLogical(col, row int) (float64, float64) {
	return t.canvas.CellToLogical(col, row)
}

// Present handles terminal resize and writes the changed cells.
func (t *Terminal) Present() error {
	t.updateSize()

	if t.canvas.NeedsRedraw() {
		t.out.WriteString(seqResetGraphics + seqClearScreen)
		if err := t.canvas.RenderBorder(t.out); err != nil {
			return err
		}
	}
	if err := t.canvas.Render(t.out); err != nil {
		return err
	}
	return t.out.Flush()
}

// updateSize clamps the terminal to the max render resolution and recenters the canvas.
func (t *Terminal) updateSize() {
	termWidth, termHeight, err := t.sizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	t.canvas.Resize(renderWidth, renderHeight)
	t.canvas.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, MaxTermWidth)
	renderHeight = min(termHeight, MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// drawAlignedText places text on the canvas text layer relative to a logical anchor.
func drawAlignedText(canvas *Canvas, x, y float64, text string, align Align, fg, bg Color) {
	col, row := canvas.LogicalToCell(x, y)
	width := runewidth.StringWidth(text)
	switch align {
	case AlignCenter:
		col -= width / 2
	case AlignRight:
		col -= width
	}
	canvas.DrawText(col, row, text, fg, bg)
}

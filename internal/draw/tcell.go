package draw

import (
	"github.com/gdamore/tcell/v2"
)

// TcellSurface is a Surface backed by a tcell screen. Pixels are composed on
// a Canvas and copied cell by cell; tcell handles diffing and terminfo.
type TcellSurface struct {
	screen tcell.Screen
	canvas *Canvas
}

// Compile-time check that TcellSurface implements Surface.
var _ Surface = (*TcellSurface)(nil)

// NewTcellSurface creates a surface on an initialized tcell screen.
func NewTcellSurface(screen tcell.Screen, logicalWidth, logicalHeight float64) *TcellSurface {
	width, height := screen.Size()
	return &TcellSurface{
		screen: screen,
		canvas: NewScaledCanvas(width, height, logicalWidth, logicalHeight),
	}
}

// Bounds returns the logical resolution.
func (s *TcellSurface) Bounds() (float64, float64) {
	return s.canvas.LogicalWidth(), s.canvas.LogicalHeight()
}

// Fill paints the whole surface and drops text from the previous frame.
func (s *TcellSurface) Fill(c Color) {
	s.canvas.Clear(c)
}

// FillRect paints an axis-aligned rectangle.
func (s *TcellSurface) FillRect(x, y, w, h float64, c Color) {
	s.canvas.FillRect(x, y, w, h, c)
}

// FillPolygon paints a filled polygon.
func (s *TcellSurface) FillPolygon(points []Point, c Color) {
	s.canvas.FillPolygon(points, c)
}

// DrawText writes text anchored at a logical position.
func (s *TcellSurface) DrawText(x, y float64, text string, align Align, fg, bg Color) {
	drawAlignedText(s.canvas, x, y, text, align, fg, bg)
}

// SetPointerVisible enables or disables mouse events.
func (s *TcellSurface) SetPointerVisible(visible bool) {
	if visible {
		s.screen.EnableMouse()
	} else {
		s.screen.DisableMouse()
	}
}

// ToLogical converts a 0-based screen cell to logical coordinates.
func (s *TcellSurface) ToLogical(col, row int) (float64, float64) {
	return s.canvas.CellToLogical(col, row)
}

// Present copies the composed canvas to the screen and shows it.
func (s *TcellSurface) Present() error {
	width, height := s.screen.Size()
	if width != s.canvas.TerminalWidth() || height != s.canvas.TerminalHeight() {
		s.canvas.Resize(width, height)
		s.screen.Clear()
	}

	s.canvas.Cells(func(col, row int, ch rune, fg, bg Color) {
		style := tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
		s.screen.SetContent(col, row, ch, nil, style)
	})
	s.screen.Show()
	return nil
}

func tcellColor(c Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

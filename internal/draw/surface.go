// Package draw provides terminal render surfaces for the game.
package draw

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseColor parses a hex color such as "#e6e6e6".
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Align controls horizontal text placement relative to the anchor point.
type Align int

const (
	AlignLeft   Align = iota // Text starts at the anchor
	AlignCenter              // Text is centered on the anchor
	AlignRight               // Text ends at the anchor
)

// Surface is a render target addressed in logical coordinates.
// Bounds are fixed for the lifetime of the surface; the backing terminal
// may be resized, in which case the surface rescales.
type Surface interface {
	// Bounds returns the logical width and height.
	Bounds() (width, height float64)

	// Fill paints the whole surface with c.
	Fill(c Color)

	// FillRect paints an axis-aligned rectangle.
	FillRect(x, y, w, h float64, c Color)

	// FillPolygon paints a filled polygon.
	FillPolygon(points []Point, c Color)

	// DrawText writes text anchored at a logical position.
	DrawText(x, y float64, text string, align Align, fg, bg Color)

	// SetPointerVisible toggles pointer (mouse) reporting.
	SetPointerVisible(visible bool)

	// ToLogical converts a 0-based terminal cell to logical coordinates.
	ToLogical(col, row int) (x, y float64)

	// Present flushes the frame to the device.
	Present() error
}

package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Button is a labelled rectangle centered on the screen.
type Button struct {
	Rect      physics.Rect
	Label     string
	Color     draw.Color
	TextColor draw.Color
}

// NewButton creates a button of the given size centered on (cx, cy).
func NewButton(label string, cx, cy, width, height float64, color, textColor draw.Color) *Button {
	return &Button{
		Rect:      physics.Centered(cx, cy, width, height),
		Label:     label,
		Color:     color,
		TextColor: textColor,
	}
}

// Contains reports whether the logical point lies on the button.
func (b *Button) Contains(x, y float64) bool {
	return b.Rect.Contains(x, y)
}

// Draw paints the button and its centered label.
func (b *Button) Draw(ctx DrawContext) {
	r := b.Rect
	ctx.Surface.FillRect(r.X, r.Y, r.W, r.H, b.Color)
	ctx.Surface.DrawText(r.CenterX(), r.CenterY(), b.Label, draw.AlignCenter, b.TextColor, b.Color)
}

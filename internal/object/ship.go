package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Ship is the player-controlled cannon at the bottom of the screen.
type Ship struct {
	X, Y float64 // Top-left corner
	W, H float64

	// Movement intent, set by key down and cleared by key up.
	MovingLeft  bool
	MovingRight bool
}

// NewShip creates a ship centered at the bottom of the screen with no movement intent.
func NewShip(s *config.Settings) *Ship {
	ship := &Ship{W: s.ShipWidth, H: s.ShipHeight}
	ship.Center(s.ScreenWidth, s.ScreenHeight)
	return ship
}

// Center places the ship at the bottom center of the screen.
func (sh *Ship) Center(screenWidth, screenHeight float64) {
	sh.X = (screenWidth - sh.W) / 2
	sh.Y = screenHeight - sh.H
}

// Bounds returns the ship's collision box.
func (sh *Ship) Bounds() physics.Rect {
	return physics.Rect{X: sh.X, Y: sh.Y, W: sh.W, H: sh.H}
}

// Update moves the ship according to its intent flags, keeping it on screen.
func (sh *Ship) Update(ctx UpdateContext) bool {
	s := ctx.Settings
	if sh.MovingRight && sh.X+sh.W < s.ScreenWidth {
		sh.X += s.ShipSpeed
	}
	if sh.MovingLeft && sh.X > 0 {
		sh.X -= s.ShipSpeed
	}
	sh.X = max(0, min(sh.X, s.ScreenWidth-sh.W))
	return false
}

// Draw renders the ship as a hull with a cannon on top.
func (sh *Ship) Draw(ctx DrawContext) {
	c := ctx.Settings.ShipColor
	cannonH := sh.H / 2

	// Cannon
	ctx.Surface.FillRect(sh.X+sh.W/2-0.5, sh.Y, 1, cannonH, c)

	// Hull: trapezoid widening toward the bottom
	hull := []draw.Point{
		{X: sh.X + 1, Y: sh.Y + cannonH},
		{X: sh.X + sh.W - 1, Y: sh.Y + cannonH},
		{X: sh.X + sh.W, Y: sh.Y + sh.H},
		{X: sh.X, Y: sh.Y + sh.H},
	}
	ctx.Surface.FillPolygon(hull, c)
	ctx.Surface.FillRect(sh.X, sh.Y+sh.H-1, sh.W, 1, c)
}

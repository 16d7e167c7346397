package object

import "github.com/tomz197/invaders/internal/physics"

// Enemy is one member of the invading fleet.
type Enemy struct {
	destroyable
	X, Y float64 // Top-left corner
	W, H float64
}

// NewEnemy creates an enemy with its top-left corner at (x, y).
func NewEnemy(x, y, width, height float64) *Enemy {
	return &Enemy{X: x, Y: y, W: width, H: height}
}

// Bounds returns the enemy's collision box.
func (e *Enemy) Bounds() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

// Update marches the enemy sideways in the current fleet direction.
func (e *Enemy) Update(ctx UpdateContext) bool {
	e.X += ctx.Settings.EnemySpeed * float64(ctx.Settings.FleetDirection)
	return e.destroyed
}

// AtEdge reports whether the next step in direction would leave the screen.
func (e *Enemy) AtEdge(screenWidth, speed float64, direction int) bool {
	if direction > 0 {
		return e.X+e.W+speed > screenWidth
	}
	return e.X-speed < 0
}

// Drop moves the enemy down by dist.
func (e *Enemy) Drop(dist float64) {
	e.Y += dist
}

// Draw renders the enemy as a body with two eyes and legs.
func (e *Enemy) Draw(ctx DrawContext) {
	s := ctx.Settings
	bodyH := e.H * 3 / 4
	eye := e.W / 6

	ctx.Surface.FillRect(e.X, e.Y, e.W, bodyH, s.EnemyColor)
	ctx.Surface.FillRect(e.X+eye, e.Y+bodyH/3, eye, bodyH/3, s.BgColor)
	ctx.Surface.FillRect(e.X+e.W-2*eye, e.Y+bodyH/3, eye, bodyH/3, s.BgColor)

	legY := e.Y + bodyH
	legH := e.H - bodyH
	ctx.Surface.FillRect(e.X, legY, eye, legH, s.EnemyColor)
	ctx.Surface.FillRect(e.X+e.W-eye, legY, eye, legH, s.EnemyColor)
}

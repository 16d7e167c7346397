package object

import "github.com/tomz197/invaders/internal/physics"

// Projectile is a bullet fired upward by the ship.
type Projectile struct {
	destroyable
	X, Y  float64 // Top-left corner
	W, H  float64
	Speed float64 // Upward speed per frame, fixed at fire time
}

// NewProjectile creates a projectile at the ship's top center.
func NewProjectile(ship *Ship, width, height, speed float64) *Projectile {
	return &Projectile{
		X:     ship.X + ship.W/2 - width/2,
		Y:     ship.Y,
		W:     width,
		H:     height,
		Speed: speed,
	}
}

// Bounds returns the projectile's collision box.
func (p *Projectile) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Update moves the projectile up. It is removed once its bottom leaves the screen.
func (p *Projectile) Update(_ UpdateContext) bool {
	p.Y -= p.Speed
	return p.destroyed || p.Y+p.H <= 0
}

// Draw renders the projectile.
func (p *Projectile) Draw(ctx DrawContext) {
	ctx.Surface.FillRect(p.X, p.Y, p.W, p.H, ctx.Settings.BulletColor)
}

// Package config centralizes all tunable game parameters.
package config

import "time"

// View resolution - the playfield in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical playfield width
	ViewHeight = 80  // Logical playfield height (in sub-pixels, so 40 terminal rows)
)

// Frame pacing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// LifeLossPause is how long the simulation freezes after the ship is lost.
const LifeLossPause = 500 * time.Millisecond

// PauseFrames converts LifeLossPause to a frame count for the given frame time.
func PauseFrames(frameTime time.Duration) int {
	if frameTime <= 0 {
		return 0
	}
	return int(LifeLossPause / frameTime)
}

// Key names for environment overrides.
const (
	EnvBgColor        = "INVADERS_BG_COLOR"
	EnvSpeedupScale   = "INVADERS_SPEEDUP_SCALE"
	EnvShipLimit      = "INVADERS_SHIP_LIMIT"
	EnvBulletsAllowed = "INVADERS_BULLETS_ALLOWED"
)

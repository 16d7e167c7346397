package config

import (
	"fmt"
	"math"

	env "github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
)

// maxPoints caps the per-enemy award so repeated scaling cannot overflow.
const maxPoints = 1 << 40

// Base holds the values fixed for the lifetime of the process.
type Base struct {
	ScreenWidth  float64
	ScreenHeight float64

	BgColor         draw.Color
	ShipColor       draw.Color
	BulletColor     draw.Color
	EnemyColor      draw.Color
	TextColor       draw.Color
	ButtonColor     draw.Color
	ButtonTextColor draw.Color

	ShipWidth  float64
	ShipHeight float64
	ShipLimit  int

	BulletWidth    float64
	BulletHeight   float64
	BulletsAllowed int

	EnemyWidth     float64
	EnemyHeight    float64
	FleetDropSpeed float64

	ButtonWidth  float64
	ButtonHeight float64

	SpeedupScale float64 // Multiplier applied to speeds on every fleet clear
	ScoreScale   float64 // Multiplier applied to points on every fleet clear

	InitialShipSpeed   float64 // Starting values of the dynamic settings
	InitialBulletSpeed float64
	InitialEnemySpeed  float64
	InitialEnemyPoints int
}

// Dynamic holds the difficulty values that change during a game.
type Dynamic struct {
	ShipSpeed      float64
	BulletSpeed    float64
	EnemySpeed     float64
	FleetDirection int // 1 moves the fleet right, -1 left
	EnemyPoints    int
}

// Settings combines the fixed and the per-game values.
type Settings struct {
	Base
	Dynamic
}

// Default returns the stock settings for the logical playfield.
func Default() *Settings {
	s := &Settings{
		Base: Base{
			ScreenWidth:  ViewWidth,
			ScreenHeight: ViewHeight,

			BgColor:         draw.RGB(230, 230, 230),
			ShipColor:       draw.RGB(40, 70, 160),
			BulletColor:     draw.RGB(60, 60, 60),
			EnemyColor:      draw.RGB(60, 140, 60),
			TextColor:       draw.RGB(30, 30, 30),
			ButtonColor:     draw.RGB(0, 255, 0),
			ButtonTextColor: draw.RGB(255, 255, 255),

			ShipWidth:  7,
			ShipHeight: 4,
			ShipLimit:  3,

			BulletWidth:    1,
			BulletHeight:   3,
			BulletsAllowed: 3,

			EnemyWidth:     6,
			EnemyHeight:    4,
			FleetDropSpeed: 1,

			ButtonWidth:  24,
			ButtonHeight: 8,

			SpeedupScale: 1.1,
			ScoreScale:   1.5,

			InitialShipSpeed:   0.8,
			InitialBulletSpeed: 1.2,
			InitialEnemySpeed:  0.2,
			InitialEnemyPoints: 50,
		},
	}
	s.ResetDynamic()
	return s
}

// FromEnv returns the default settings with environment overrides applied.
func FromEnv() (*Settings, error) {
	s := Default()

	if hex := env.GetEnv(EnvBgColor, ""); hex != "" {
		c, err := draw.ParseColor(hex)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvBgColor, err)
		}
		s.BgColor = c
	}

	if scale := env.GetEnvFloat(EnvSpeedupScale, s.SpeedupScale); scale >= 1 {
		s.SpeedupScale = scale
	}
	if limit := env.GetEnvInt(EnvShipLimit, s.ShipLimit); limit >= 0 {
		s.ShipLimit = limit
	}
	if allowed := env.GetEnvInt(EnvBulletsAllowed, s.BulletsAllowed); allowed >= 0 {
		s.BulletsAllowed = allowed
	}

	s.ResetDynamic()
	return s, nil
}

// ResetDynamic restores the per-game values to their starting state.
func (s *Settings) ResetDynamic() {
	s.Dynamic = Dynamic{
		ShipSpeed:      s.InitialShipSpeed,
		BulletSpeed:    s.InitialBulletSpeed,
		EnemySpeed:     s.InitialEnemySpeed,
		FleetDirection: 1,
		EnemyPoints:    s.InitialEnemyPoints,
	}
}

// IncreaseSpeed raises the difficulty after a cleared fleet.
// Points are truncated to an integer after scaling.
func (s *Settings) IncreaseSpeed() {
	s.ShipSpeed *= s.SpeedupScale
	s.BulletSpeed *= s.SpeedupScale
	s.EnemySpeed *= s.SpeedupScale

	points := math.Floor(float64(s.EnemyPoints) * s.ScoreScale)
	if points > maxPoints {
		points = maxPoints
	}
	s.EnemyPoints = int(points)
}

package loop

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/highscore"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// Stats tracks the player's progress.
type Stats struct {
	ShipsLeft int
	Score     int
	Level     int
	HighScore int
	Active    bool // Simulation runs only while active
}

// reset prepares the stats for a new game. The high score is kept.
func (s *Stats) reset(shipLimit int) {
	s.ShipsLeft = shipLimit
	s.Score = 0
	s.Level = 1
}

// Game holds the complete session state. It is owned by a single goroutine.
type Game struct {
	Settings    *config.Settings
	Stats       Stats
	Ship        *object.Ship
	Projectiles object.Group[*object.Projectile]
	Enemies     object.Group[*object.Enemy]
	PlayButton  *object.Button

	store       highscore.Store
	logger      *log.Logger
	pauseFrames int // Frames the simulation freezes after a lost ship
	paused      int // Frames left in the current pause
}

// NewGame creates an idle game with a fleet on screen and the stored high score loaded.
func NewGame(settings *config.Settings, store highscore.Store, logger *log.Logger, frameTime time.Duration) *Game {
	g := &Game{
		Settings:    settings,
		Ship:        object.NewShip(settings),
		store:       store,
		logger:      logger,
		pauseFrames: config.PauseFrames(frameTime),
	}
	g.PlayButton = object.NewButton("Play",
		settings.ScreenWidth/2, settings.ScreenHeight/2,
		settings.ButtonWidth, settings.ButtonHeight,
		settings.ButtonColor, settings.ButtonTextColor)

	g.Stats.reset(settings.ShipLimit)
	g.Stats.HighScore = g.loadHighScore()
	g.CreateFleet()
	return g
}

func (g *Game) loadHighScore() int {
	score, err := g.store.Load()
	if err != nil {
		if !errors.Is(err, highscore.ErrNotFound) {
			g.logger.Error("load high score", "err", err)
		}
		return 0
	}
	return max(score, 0)
}

// Start begins a new game. It is a no-op while a game is active.
func (g *Game) Start() bool {
	if g.Stats.Active {
		return false
	}

	g.Settings.ResetDynamic()
	g.Stats.reset(g.Settings.ShipLimit)
	g.Stats.Active = true

	g.Enemies.Clear()
	g.Projectiles.Clear()
	g.CreateFleet()
	g.centerShip()
	g.paused = 0

	g.logger.Info("game started", "ships", g.Stats.ShipsLeft, "enemies", g.Enemies.Len())
	return true
}

// HandleClick starts a new game if the logical point is on the Play button while idle.
func (g *Game) HandleClick(x, y float64) bool {
	if g.Stats.Active || !g.PlayButton.Contains(x, y) {
		return false
	}
	return g.Start()
}

// FireProjectile launches a projectile unless the live projectile cap is reached.
func (g *Game) FireProjectile() bool {
	if !g.Stats.Active || g.Paused() {
		return false
	}
	if g.Projectiles.Len() >= g.Settings.BulletsAllowed {
		return false
	}
	s := g.Settings
	g.Projectiles.Add(object.NewProjectile(g.Ship, s.BulletWidth, s.BulletHeight, s.BulletSpeed))
	return true
}

// CreateFleet fills the enemy group from the fleet layout.
func (g *Game) CreateFleet() {
	s := g.Settings
	for _, p := range object.LayoutFleet(s.ScreenWidth, s.ScreenHeight, s.EnemyWidth, s.EnemyHeight, g.Ship.H) {
		g.Enemies.Add(object.NewEnemy(p.X, p.Y, s.EnemyWidth, s.EnemyHeight))
	}
}

// Paused reports whether the simulation is frozen after a lost ship.
func (g *Game) Paused() bool {
	return g.paused > 0
}

// PointerVisible reports whether the pointer should be shown.
func (g *Game) PointerVisible() bool {
	return !g.Stats.Active
}

// Step advances the simulation by one frame.
func (g *Game) Step() {
	if !g.Stats.Active {
		return
	}
	if g.paused > 0 {
		g.paused--
		return
	}

	ctx := object.UpdateContext{Settings: g.Settings}
	g.Ship.Update(ctx)
	g.Projectiles.Update(ctx)

	g.checkFleetEdges()
	g.Enemies.Update(ctx)
	if g.checkShipCollision() || g.checkFloorBreach() {
		g.shipHit()
		return
	}

	g.resolveProjectileHits()
}

// shipHit handles a lost ship: respawn while ships remain, otherwise end the game.
func (g *Game) shipHit() {
	if g.Stats.ShipsLeft > 0 {
		g.Stats.ShipsLeft--

		g.Enemies.Clear()
		g.Projectiles.Clear()
		g.CreateFleet()
		g.centerShip()
		g.paused = g.pauseFrames

		g.logger.Info("ship lost", "ships_left", g.Stats.ShipsLeft, "level", g.Stats.Level)
		return
	}

	g.Stats.Active = false
	g.logger.Info("game over", "score", g.Stats.Score, "level", g.Stats.Level, "high_score", g.Stats.HighScore)
}

// centerShip moves the ship back to the bottom center. Movement intent is kept
// so a key held across a respawn keeps steering.
func (g *Game) centerShip() {
	g.Ship.Center(g.Settings.ScreenWidth, g.Settings.ScreenHeight)
}

// addScore adds points and records a new high score immediately.
func (g *Game) addScore(points int) {
	g.Stats.Score += points
	if g.Stats.Score > g.Stats.HighScore {
		g.Stats.HighScore = g.Stats.Score
		g.saveHighScore()
	}
}

func (g *Game) saveHighScore() {
	if err := g.store.Save(g.Stats.HighScore); err != nil {
		g.logger.Error("save high score", "score", g.Stats.HighScore, "err", err)
	}
}

// Close persists the high score.
func (g *Game) Close() {
	g.saveHighScore()
}

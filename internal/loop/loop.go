// Package loop provides the main game loop and state management.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/highscore"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// Options configures a Loop. Feed and Surface are required.
type Options struct {
	Feed      input.Feed
	Surface   draw.Surface
	Store     highscore.Store  // Defaults to an in-memory store
	Logger    *log.Logger      // Defaults to a discarding logger
	Settings  *config.Settings // Defaults to config.Default()
	FrameTime time.Duration    // Defaults to config.TargetFrameTime
}

// Loop runs one game: Input → Update → Draw at a fixed frame rate.
type Loop struct {
	feed      input.Feed
	surface   draw.Surface
	logger    *log.Logger
	frameTime time.Duration
	game      *Game

	running        bool
	pointerVisible bool
}

// New creates a loop. The surface bounds are read once and become the screen size.
func New(opts Options) *Loop {
	if opts.Store == nil {
		opts.Store = &highscore.MemoryStore{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Settings == nil {
		opts.Settings = config.Default()
	}
	if opts.FrameTime <= 0 {
		opts.FrameTime = config.TargetFrameTime
	}

	opts.Settings.ScreenWidth, opts.Settings.ScreenHeight = opts.Surface.Bounds()

	l := &Loop{
		feed:      opts.Feed,
		surface:   opts.Surface,
		logger:    opts.Logger,
		frameTime: opts.FrameTime,
		game:      NewGame(opts.Settings, opts.Store, opts.Logger, opts.FrameTime),
		running:   true,
	}
	l.pointerVisible = l.game.PointerVisible()
	l.surface.SetPointerVisible(l.pointerVisible)
	return l
}

// Game returns the session state.
func (l *Loop) Game() *Game {
	return l.game
}

// Running reports whether the loop has not been asked to quit.
func (l *Loop) Running() bool {
	return l.running
}

// Run drives frames until quit, ctx cancellation or a render failure.
// The high score is saved on the way out.
func (l *Loop) Run(ctx context.Context) error {
	defer l.game.Close()

	for l.running {
		if ctx.Err() != nil {
			l.logger.Debug("loop cancelled", "err", ctx.Err())
			return nil
		}
		frameStart := time.Now()

		if err := l.Tick(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < l.frameTime {
			select {
			case <-ctx.Done():
			case <-time.After(l.frameTime - elapsed):
			}
		}
	}
	return nil
}

// Tick runs a single frame.
func (l *Loop) Tick() error {
	// ===== INPUT PHASE =====
	l.processInput()
	if !l.running {
		return nil
	}

	// ===== UPDATE PHASE =====
	l.game.Step()
	if visible := l.game.PointerVisible(); visible != l.pointerVisible {
		l.pointerVisible = visible
		l.surface.SetPointerVisible(visible)
	}

	// ===== DRAW PHASE =====
	return l.drawFrame()
}

// processInput drains the feed. While paused after a lost ship only quit
// and key releases are acted on.
func (l *Loop) processInput() {
	g := l.game
	for _, ev := range l.feed.Poll() {
		switch ev.Kind {
		case input.EventQuit:
			l.running = false
			return

		case input.EventButtonPress:
			if g.Paused() {
				continue
			}
			x, y := l.surface.ToLogical(ev.Col, ev.Row)
			g.HandleClick(x, y)

		case input.EventKeyDown:
			if ev.Code == input.KeyQuit {
				l.running = false
				return
			}
			if g.Paused() {
				continue
			}
			switch ev.Code {
			case input.KeyLeft:
				g.Ship.MovingLeft = true
			case input.KeyRight:
				g.Ship.MovingRight = true
			case input.KeyFire:
				g.FireProjectile()
			case input.KeyStart:
				g.Start()
			}

		case input.EventKeyUp:
			switch ev.Code {
			case input.KeyLeft:
				g.Ship.MovingLeft = false
			case input.KeyRight:
				g.Ship.MovingRight = false
			}
		}
	}
}

// drawFrame paints the whole scene and presents it.
func (l *Loop) drawFrame() error {
	g := l.game
	s := g.Settings
	ctx := object.DrawContext{Surface: l.surface, Settings: s}

	l.surface.Fill(s.BgColor)
	g.Ship.Draw(ctx)
	g.Projectiles.Draw(ctx)
	g.Enemies.Draw(ctx)
	g.drawScoreboard(ctx)

	if !g.Stats.Active {
		g.PlayButton.Draw(ctx)
		r := g.PlayButton.Rect
		l.surface.DrawText(r.CenterX(), r.Bottom()+3, startHint, draw.AlignCenter, s.TextColor, s.BgColor)
	}

	return l.surface.Present()
}

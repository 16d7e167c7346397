package loop

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/highscore"
	"github.com/tomz197/invaders/internal/input"
)

func TestLoop_NewUsesSurfaceBoundsOnce(t *testing.T) {
	surface := newFakeSurface()
	surface.width, surface.height = 200, 100
	l := newTestLoop(t, &scriptedFeed{}, surface, nil, nil)

	for range 3 {
		if err := l.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}

	s := l.Game().Settings
	if s.ScreenWidth != 200 || s.ScreenHeight != 100 {
		t.Errorf("expected 200x100 screen, got %vx%v", s.ScreenWidth, s.ScreenHeight)
	}
	if surface.boundsCalls != 1 {
		t.Errorf("expected bounds queried once, got %d", surface.boundsCalls)
	}
}

func TestLoop_QuitStopsBeforeDrawing(t *testing.T) {
	feed := &scriptedFeed{}
	feed.push(input.Event{Kind: input.EventQuit})
	surface := newFakeSurface()
	l := newTestLoop(t, feed, surface, nil, nil)

	if err := l.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if l.Running() {
		t.Error("loop should stop on quit")
	}
	if surface.presents != 0 {
		t.Errorf("expected no frame after quit, got %d", surface.presents)
	}
}

func TestLoop_ClickStartsGameAndHidesPointer(t *testing.T) {
	feed := &scriptedFeed{}
	surface := newFakeSurface()
	l := newTestLoop(t, feed, surface, nil, nil)

	// Cell (60,19) maps to the center of the Play button.
	feed.push(input.Event{Kind: input.EventButtonPress, Col: 60, Row: 19})
	if err := l.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if !l.Game().Stats.Active {
		t.Fatal("click on Play should start the game")
	}
	want := []bool{true, false}
	if len(surface.pointer) != 2 || surface.pointer[0] != want[0] || surface.pointer[1] != want[1] {
		t.Errorf("expected pointer shown then hidden, got %v", surface.pointer)
	}
}

func TestLoop_ClickOutsideButtonIgnored(t *testing.T) {
	feed := &scriptedFeed{}
	l := newTestLoop(t, feed, newFakeSurface(), nil, nil)

	feed.push(input.Event{Kind: input.EventButtonPress, Col: 2, Row: 2})
	if err := l.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if l.Game().Stats.Active {
		t.Error("click outside the button should not start")
	}
}

func TestLoop_KeyboardStartAndMove(t *testing.T) {
	feed := &scriptedFeed{}
	l := newTestLoop(t, feed, newFakeSurface(), nil, nil)
	g := l.Game()

	feed.push(keyDown(input.KeyStart))
	l.Tick()
	if !g.Stats.Active {
		t.Fatal("start key should start the game")
	}

	x := g.Ship.X
	feed.push(keyDown(input.KeyRight))
	l.Tick()
	if want := x + g.Settings.ShipSpeed; g.Ship.X != want {
		t.Errorf("expected ship at %v, got %v", want, g.Ship.X)
	}

	feed.push(keyUp(input.KeyRight))
	x = g.Ship.X
	l.Tick()
	if g.Ship.X != x {
		t.Errorf("ship should stop after key up, moved to %v", g.Ship.X)
	}

	feed.push(keyDown(input.KeyFire))
	l.Tick()
	if g.Projectiles.Len() != 1 {
		t.Errorf("expected one projectile, got %d", g.Projectiles.Len())
	}
}

func TestLoop_DrawsButtonOnlyWhenIdle(t *testing.T) {
	feed := &scriptedFeed{}
	surface := newFakeSurface()
	l := newTestLoop(t, feed, surface, nil, nil)

	l.Tick()
	if !surface.drew("Play") || !surface.drew(startHint) {
		t.Errorf("idle frame should show the button and hint, got %v", surface.texts)
	}
	if !surface.drew("High 0") || !surface.drew("Level 1") {
		t.Errorf("idle frame should show the scoreboard, got %v", surface.texts)
	}

	feed.push(keyDown(input.KeyStart))
	l.Tick()
	if surface.drew("Play") {
		t.Error("active frame should not show the button")
	}
	// Ship plus one icon per remaining ship.
	if surface.polygons != 1+3 {
		t.Errorf("expected 4 ship polygons, got %d", surface.polygons)
	}
}

func TestLoop_PausedIgnoresCommandsButHonorsReleaseAndQuit(t *testing.T) {
	feed := &scriptedFeed{}
	l := newTestLoop(t, feed, newFakeSurface(), nil, nil)
	g := l.Game()
	g.Start()
	g.shipHit()

	g.Ship.MovingLeft = true
	feed.push(keyDown(input.KeyFire), keyDown(input.KeyRight), keyUp(input.KeyLeft))
	l.Tick()

	if g.Projectiles.Len() != 0 || g.Ship.MovingRight {
		t.Error("commands should be ignored while paused")
	}
	if g.Ship.MovingLeft {
		t.Error("key release should apply while paused")
	}

	feed.push(keyDown(input.KeyQuit))
	l.Tick()
	if l.Running() {
		t.Error("quit should apply while paused")
	}
}

func TestLoop_HeldKeySteersAfterRespawn(t *testing.T) {
	feed := &scriptedFeed{}
	l := newTestLoop(t, feed, newFakeSurface(), nil, nil)
	g := l.Game()
	g.Start()

	// Key-repeat produces no further KeyDown, so the single press must carry over.
	feed.push(keyDown(input.KeyRight))
	l.Tick()
	g.shipHit()

	for i := 0; g.Paused(); i++ {
		if i > 1000 {
			t.Fatal("pause never ended")
		}
		l.Tick()
	}
	start := g.Ship.X
	for range 5 {
		l.Tick()
	}

	if !g.Ship.MovingRight {
		t.Fatal("expected movement intent to survive the respawn")
	}
	if g.Ship.X <= start {
		t.Errorf("expected ship to keep moving right, x %v -> %v", start, g.Ship.X)
	}

	feed.push(keyUp(input.KeyRight))
	l.Tick()
	if g.Ship.MovingRight {
		t.Error("expected release to stop the ship")
	}
}

func TestLoop_RunReturnsOnQuitAndSaves(t *testing.T) {
	feed := &scriptedFeed{}
	feed.push()
	feed.push(input.Event{Kind: input.EventQuit})
	surface := newFakeSurface()
	store := &highscore.MemoryStore{}

	l := New(Options{Feed: feed, Surface: surface, Store: store, FrameTime: time.Millisecond})
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if surface.presents != 1 {
		t.Errorf("expected one frame before quit, got %d", surface.presents)
	}
	if _, err := store.Load(); err != nil {
		t.Errorf("expected high score saved on exit, got %v", err)
	}
}

func TestLoop_RunHonorsContext(t *testing.T) {
	var logs bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(Options{
		Feed:    &scriptedFeed{},
		Surface: newFakeSurface(),
		Logger:  log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel}),
	})
	if err := l.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !bytes.Contains(logs.Bytes(), []byte("loop cancelled")) {
		t.Errorf("expected cancellation to be logged, got %q", logs.String())
	}
}

func TestLoop_RunReturnsPresentError(t *testing.T) {
	surface := newFakeSurface()
	surface.presentErr = io.ErrClosedPipe

	l := newTestLoop(t, &scriptedFeed{}, surface, nil, nil)
	if err := l.Run(context.Background()); !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("expected present error, got %v", err)
	}
}

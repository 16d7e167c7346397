package loop

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/highscore"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
)

func newTestGame(t *testing.T, store highscore.Store) *Game {
	t.Helper()
	if store == nil {
		store = &highscore.MemoryStore{}
	}
	return NewGame(config.Default(), store, log.New(io.Discard), config.TargetFrameTime)
}

// failingStore fails every operation.
type failingStore struct {
	saves int
}

func (f *failingStore) Load() (int, error) { return 0, errors.New("disk unavailable") }
func (f *failingStore) Save(int) error {
	f.saves++
	return errors.New("disk unavailable")
}

// scriptedFeed returns one batch of events per Poll.
type scriptedFeed struct {
	batches [][]input.Event
}

func (f *scriptedFeed) push(events ...input.Event) {
	f.batches = append(f.batches, events)
}

func (f *scriptedFeed) Poll() []input.Event {
	if len(f.batches) == 0 {
		return nil
	}
	next := f.batches[0]
	f.batches = f.batches[1:]
	return next
}

// fakeSurface records what a frame drew. Cells are 1 logical unit wide and 2 tall.
type fakeSurface struct {
	width, height float64
	boundsCalls   int
	texts         []string
	polygons      int
	presents      int
	pointer       []bool
	presentErr    error
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{width: config.ViewWidth, height: config.ViewHeight}
}

func (f *fakeSurface) Bounds() (float64, float64) {
	f.boundsCalls++
	return f.width, f.height
}

func (f *fakeSurface) Fill(draw.Color) {
	f.texts = f.texts[:0]
	f.polygons = 0
}

func (f *fakeSurface) FillRect(_, _, _, _ float64, _ draw.Color) {}
func (f *fakeSurface) FillPolygon(_ []draw.Point, _ draw.Color)  { f.polygons++ }
func (f *fakeSurface) SetPointerVisible(v bool)                  { f.pointer = append(f.pointer, v) }
func (f *fakeSurface) ToLogical(col, row int) (float64, float64) {
	return float64(col) + 0.5, float64(row*2) + 1
}

func (f *fakeSurface) DrawText(_, _ float64, text string, _ draw.Align, _, _ draw.Color) {
	f.texts = append(f.texts, text)
}

func (f *fakeSurface) Present() error {
	f.presents++
	return f.presentErr
}

func (f *fakeSurface) drew(text string) bool {
	for _, t := range f.texts {
		if t == text {
			return true
		}
	}
	return false
}

func newTestLoop(t *testing.T, feed input.Feed, surface *fakeSurface, store highscore.Store, logs *bytes.Buffer) *Loop {
	t.Helper()
	var w io.Writer = io.Discard
	if logs != nil {
		w = logs
	}
	return New(Options{
		Feed:    feed,
		Surface: surface,
		Store:   store,
		Logger:  log.New(w),
	})
}

func keyDown(c input.Code) input.Event { return input.Event{Kind: input.EventKeyDown, Code: c} }
func keyUp(c input.Code) input.Event   { return input.Event{Kind: input.EventKeyUp, Code: c} }

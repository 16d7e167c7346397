package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestTcellFeed_Keys(t *testing.T) {
	ch := make(chan tcell.Event, 16)
	clock := newFakeClock()
	feed := newTcellFeed(ch, clock.Now)

	ch <- tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)
	ch <- tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)
	ch <- tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	ch <- tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	expectEvents(t, feed.Poll(), keyDown(KeyLeft), keyDown(KeyFire), keyDown(KeyStart))

	clock.Advance(keyHoldDuration)
	expectEvents(t, feed.Poll(), keyUp(KeyLeft))

	ch <- tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	expectEvents(t, feed.Poll(), Event{Kind: EventQuit})
}

func TestTcellFeed_MousePressEdge(t *testing.T) {
	ch := make(chan tcell.Event, 16)
	feed := newTcellFeed(ch, newFakeClock().Now)

	ch <- tcell.NewEventMouse(5, 6, tcell.Button1, tcell.ModNone)
	ch <- tcell.NewEventMouse(6, 6, tcell.Button1, tcell.ModNone) // drag
	ch <- tcell.NewEventMouse(6, 6, tcell.ButtonNone, tcell.ModNone)
	ch <- tcell.NewEventMouse(7, 8, tcell.Button2, tcell.ModNone)
	ch <- tcell.NewEventMouse(1, 2, tcell.Button1, tcell.ModNone)
	expectEvents(t, feed.Poll(), press(5, 6), press(1, 2))
}

func TestTcellFeed_SimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(80, 24)

	feed := NewTcellFeed(screen)
	screen.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)

	deadline := time.Now().Add(2 * time.Second)
	var got []Event
	for time.Now().Before(deadline) && len(got) == 0 {
		got = feed.Poll()
		time.Sleep(time.Millisecond)
	}
	if len(got) == 0 || got[0] != keyDown(KeyRight) {
		t.Fatalf("expected right key down, got %v", got)
	}

	screen.Fini()
	for time.Now().Before(deadline) {
		for _, ev := range feed.Poll() {
			if ev.Kind == EventQuit {
				return
			}
		}
		time.Sleep(time.Millisecond)
	}
	t.Error("expected quit after screen finalized")
}

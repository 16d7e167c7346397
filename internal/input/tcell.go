package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// TcellFeed reads events from a tcell screen.
type TcellFeed struct {
	ch      <-chan tcell.Event
	now     func() time.Time
	tracker keyTracker
	buttons tcell.ButtonMask // Buttons held in the last mouse event
	closed  bool
}

// Compile-time check that TcellFeed implements Feed.
var _ Feed = (*TcellFeed)(nil)

// NewTcellFeed spawns a goroutine that polls the screen until it is finalized.
func NewTcellFeed(screen tcell.Screen) *TcellFeed {
	ch := make(chan tcell.Event, 128)
	go func() {
		defer close(ch)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			ch <- ev
		}
	}()
	return newTcellFeed(ch, time.Now)
}

func newTcellFeed(ch <-chan tcell.Event, now func() time.Time) *TcellFeed {
	return &TcellFeed{
		ch:      ch,
		now:     now,
		tracker: keyTracker{hold: keyHoldDuration},
	}
}

// Poll drains all queued screen events (non-blocking).
func (f *TcellFeed) Poll() []Event {
	var events []Event
	now := f.now()

	for !f.closed {
		select {
		case ev, ok := <-f.ch:
			if !ok {
				f.closed = true
				continue
			}
			events = f.handle(events, ev, now)
			continue
		default:
		}
		break
	}

	events = f.tracker.expire(events, now)
	if f.closed {
		events = append(events, Event{Kind: EventQuit})
	}
	return events
}

func (f *TcellFeed) handle(events []Event, ev tcell.Event, now time.Time) []Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return append(events, Event{Kind: EventQuit})
		case tcell.KeyLeft:
			return f.tracker.press(events, KeyLeft, now)
		case tcell.KeyRight:
			return f.tracker.press(events, KeyRight, now)
		case tcell.KeyEnter:
			return f.tracker.press(events, KeyStart, now)
		case tcell.KeyRune:
			return f.tracker.press(events, codeForRune(ev.Rune()), now)
		}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && f.buttons&tcell.Button1 == 0
		f.buttons = buttons
		if pressed {
			col, row := ev.Position()
			return append(events, Event{Kind: EventButtonPress, Col: col, Row: row})
		}
	}
	return events
}

package input

import (
	"io"
	"strconv"
	"time"
	"unicode/utf8"
)

// maxSequence bounds how far a partial escape sequence is buffered.
const maxSequence = 32

// ByteFeed parses raw terminal bytes from a reader, such as a raw-mode
// stdin or an SSH session.
type ByteFeed struct {
	ch      <-chan []byte
	now     func() time.Time
	tracker keyTracker
	pending []byte
	closed  bool
}

// Compile-time check that ByteFeed implements Feed.
var _ Feed = (*ByteFeed)(nil)

// NewByteFeed spawns a goroutine that reads from r until it fails.
func NewByteFeed(r io.Reader) *ByteFeed {
	ch := make(chan []byte, 128)
	go func() {
		defer close(ch)
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				data := make([]byte, n)
				copy(data, buf[:n])
				ch <- data
			}
			if err != nil {
				return
			}
		}
	}()
	return newByteFeed(ch, time.Now)
}

func newByteFeed(ch <-chan []byte, now func() time.Time) *ByteFeed {
	return &ByteFeed{
		ch:      ch,
		now:     now,
		tracker: keyTracker{hold: keyHoldDuration},
	}
}

// Poll drains all available bytes (non-blocking) and parses them into events.
// A read error or EOF produces EventQuit on every following call.
func (f *ByteFeed) Poll() []Event {
	var events []Event
	now := f.now()

	data := f.pending
	received := false
	for !f.closed {
		select {
		case b, ok := <-f.ch:
			if !ok {
				f.closed = true
				continue
			}
			data = append(data, b...)
			received = true
			continue
		default:
		}
		break
	}

	// A partial sequence that did not grow since the last poll was a lone ESC
	// or garbage; drop it.
	if !received && len(f.pending) > 0 {
		data = nil
	}

	events, f.pending = f.parse(events, data, now)
	events = f.tracker.expire(events, now)

	if f.closed {
		events = append(events, Event{Kind: EventQuit})
	}
	return events
}

// parse consumes complete keys and sequences from data. It returns the
// unconsumed tail of an incomplete sequence.
func (f *ByteFeed) parse(events []Event, data []byte, now time.Time) ([]Event, []byte) {
	i := 0
	for i < len(data) {
		b := data[i]
		switch {
		case b == 0x03: // Ctrl-C
			events = append(events, Event{Kind: EventQuit})
			i++

		case b == 0x1b:
			n, ev, ok := parseEscape(data[i:])
			if !ok {
				return events, append([]byte(nil), data[i:]...)
			}
			switch ev.Kind {
			case EventButtonPress:
				events = append(events, ev)
			case EventKeyDown:
				events = f.tracker.press(events, ev.Code, now)
			}
			i += n

		case b < utf8.RuneSelf:
			events = f.tracker.press(events, codeForRune(rune(b)), now)
			i++

		default:
			if !utf8.FullRune(data[i:]) {
				return events, append([]byte(nil), data[i:]...)
			}
			_, size := utf8.DecodeRune(data[i:])
			i += size
		}
	}
	return events, nil
}

// parseEscape parses one sequence starting with ESC. It returns the number of
// bytes consumed and the decoded event (zero Kind for ignored sequences), or
// ok=false if the sequence is incomplete.
func parseEscape(data []byte) (n int, ev Event, ok bool) {
	if len(data) < 2 {
		return 0, Event{}, false
	}

	switch data[1] {
	case 'O': // SS3: application cursor keys
		if len(data) < 3 {
			return 0, Event{}, false
		}
		return 3, arrowEvent(data[2]), true

	case '[':
		if len(data) < 3 {
			return 0, Event{}, false
		}
		if data[2] == '<' {
			return parseSGRMouse(data)
		}
		// CSI: parameters then a final byte in 0x40-0x7e
		for j := 2; j < len(data) && j < maxSequence; j++ {
			if data[j] >= 0x40 && data[j] <= 0x7e {
				if j == 2 {
					return 3, arrowEvent(data[2]), true
				}
				return j + 1, Event{}, true
			}
		}
		if len(data) < maxSequence {
			return 0, Event{}, false
		}
		return 1, Event{}, true
	}

	// ESC followed by a plain key (Alt+key): drop the ESC.
	return 1, Event{}, true
}

func arrowEvent(b byte) Event {
	switch b {
	case 'C':
		return Event{Kind: EventKeyDown, Code: KeyRight}
	case 'D':
		return Event{Kind: EventKeyDown, Code: KeyLeft}
	}
	return Event{}
}

// parseSGRMouse parses ESC [ < Btn ; X ; Y M/m.
// Only presses of the primary button produce an event.
func parseSGRMouse(data []byte) (int, Event, bool) {
	end := 3
	for end < len(data) && end < maxSequence && data[end] != 'M' && data[end] != 'm' {
		end++
	}
	if end >= len(data) {
		if len(data) < maxSequence {
			return 0, Event{}, false
		}
		return 1, Event{}, true
	}
	if end >= maxSequence {
		return 1, Event{}, true
	}

	btn, x, y, valid := parseSGRParams(data[3:end])
	if !valid || data[end] != 'M' {
		return end + 1, Event{}, true
	}

	// Bits 0-1: button (0=left), bit 5: motion, bit 6: scroll
	if btn&0x03 != 0 || btn&32 != 0 || btn&64 != 0 {
		return end + 1, Event{}, true
	}
	return end + 1, Event{Kind: EventButtonPress, Col: x - 1, Row: y - 1}, true
}

func parseSGRParams(params []byte) (btn, x, y int, ok bool) {
	var fields [3]int
	field := 0
	start := 0
	for j := 0; j <= len(params); j++ {
		if j < len(params) && params[j] != ';' {
			continue
		}
		if field >= len(fields) {
			return 0, 0, 0, false
		}
		n, err := strconv.Atoi(string(params[start:j]))
		if err != nil {
			return 0, 0, 0, false
		}
		fields[field] = n
		field++
		start = j + 1
	}
	if field != len(fields) {
		return 0, 0, 0, false
	}
	return fields[0], fields[1], fields[2], true
}

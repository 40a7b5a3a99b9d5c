package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/diegok/efipong/internal/input"
)

// DefaultKeyBuffer is how many key presses the Keyboard holds between ticks.
const DefaultKeyBuffer = 64

// EventSource is the blocking half of a tcell screen.
type EventSource interface {
	PollEvent() tcell.Event
}

// Keyboard turns blocking tcell events into a non-blocking input.Poller.
// A reader goroutine feeds a bounded channel; presses beyond its capacity
// are dropped.
type Keyboard struct {
	events chan input.Event
	done   chan struct{}
}

// NewKeyboard starts reading src. The reader stops when src returns nil,
// which tcell does once the screen is finalized.
func NewKeyboard(src EventSource, buffer int) *Keyboard {
	if buffer <= 0 {
		buffer = DefaultKeyBuffer
	}
	k := &Keyboard{
		events: make(chan input.Event, buffer),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(k.done)
		for {
			ev := src.PollEvent()
			if ev == nil {
				return
			}
			key, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}
			in, ok := Translate(key)
			if !ok {
				continue
			}
			select {
			case k.events <- in:
			default:
			}
		}
	}()

	return k
}

// PollEvent returns the next pending key without blocking.
func (k *Keyboard) PollEvent() (input.Event, bool) {
	select {
	case ev := <-k.events:
		return ev, true
	default:
		return input.Event{}, false
	}
}

// Done is closed once the reader goroutine has exited.
func (k *Keyboard) Done() <-chan struct{} {
	return k.done
}

// Translate converts a tcell key into the game's input event. Keys the game
// has no use for report false.
func Translate(ev *tcell.EventKey) (input.Event, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.Special(input.KeyUp), true
	case tcell.KeyDown:
		return input.Special(input.KeyDown), true
	case tcell.KeyEnter:
		return input.Char(input.CharEnter), true
	case tcell.KeyEscape:
		return input.Char(input.CharEscape), true
	case tcell.KeyCtrlC:
		return input.Char(input.CharCtrlC), true
	case tcell.KeyRune:
		return input.Char(ev.Rune()), true
	}
	return input.Event{}, false
}
